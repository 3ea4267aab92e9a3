package dto

import "errors"

// Sentinel errors surfaced across service boundaries.
var (
	ErrNoReport          = errors.New("no report available")
	ErrCollaboratorEmpty = errors.New("scoring collaborator returned an empty response")
)

// ErrorResponse is the JSON error body returned by every endpoint.
// The Error field alone satisfies the {error: string} submission contract.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
