// Package session holds the signed-in identity as an explicit immutable
// value. Login builds it, Logout discards it; there is no package-level
// current-user singleton for controllers to reach into.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Session is an immutable snapshot of the signed-in user. Controllers
// receive it by value; a zero Session means signed out.
type Session struct {
	Token    string
	UserID   string
	Role     Role
	Name     string
	Email    string
	IssuedAt time.Time
}

func (s Session) SignedIn() bool {
	return s.Token != ""
}

type claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Login authenticates against the backend and derives the session from the
// returned token's claims. The claims are read without signature checking:
// the backend verifies every call itself, the portal only needs display
// identity.
func Login(ctx context.Context, client *apiclient.Client, email, password string) (Session, error) {
	token, err := client.Auth.Login(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	return FromToken(token)
}

// FromToken builds a session from an existing backend token.
func FromToken(token string) (Session, error) {
	var cl claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &cl); err != nil {
		return Session{}, fmt.Errorf("failed to parse session token: %w", err)
	}

	s := Session{
		Token:  token,
		UserID: cl.UserID,
		Role:   Role(cl.Role),
		Name:   cl.Name,
		Email:  cl.Email,
	}
	if cl.IssuedAt != nil {
		s.IssuedAt = cl.IssuedAt.Time
	}
	if s.UserID == "" && cl.Subject != "" {
		s.UserID = cl.Subject
	}
	return s, nil
}

// Logout tears the session down on both sides. The local session is gone
// no matter what the backend said.
func Logout(ctx context.Context, client *apiclient.Client, s Session) error {
	if !s.SignedIn() {
		return nil
	}
	return client.Auth.Logout(ctx)
}
