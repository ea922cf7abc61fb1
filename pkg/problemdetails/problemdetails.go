// Package problemdetails builds RFC 7807 error payloads for the HTTP API.
package problemdetails

import "fmt"

const (
	TypeInvalidRequest  = "invalid-request"
	TypeValidationError = "validation-error"
	TypeUnauthorized    = "unauthorized"
	TypeInternalError   = "internal-error"
)

type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func New(status int, problemType, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   fmt.Sprintf("https://clicktrack.dev/problems/%s", problemType),
		Title:  title,
		Status: status,
		Detail: detail,
	}
}
