package handler

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewWarningResponse reports a benign outcome, like an update that carried
// no changes.
func NewWarningResponse(message string) *Response {
	return &Response{
		Status:  "warning",
		Message: message,
	}
}
