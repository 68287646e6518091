package model

// Doctor mirrors the backend's doctor resource. The portal never owns its
// lifecycle; rows are transient copies scoped to the view that fetched them.
type Doctor struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Department      string `json:"department"`
	YearsExperience int    `json:"years_experience"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	PhotoURL        string `json:"photo_url,omitempty"`
}

type CreateDoctorRequest struct {
	Name            string `json:"name" validate:"required"`
	Department      string `json:"department" validate:"required"`
	YearsExperience int    `json:"years_experience" validate:"gte=0"`
	Phone           string `json:"phone" validate:"required,phone"`
	Email           string `json:"email" validate:"required,email"`
	PhotoURL        string `json:"photo_url"`
}
