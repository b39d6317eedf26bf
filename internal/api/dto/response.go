package dto

import apperrors "github.com/spec-kit/helpdesk-service/pkg/util"

// Envelope is the body of every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// OK wraps a successful payload.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail renders a domain error.
func Fail(err *apperrors.DomainError) Envelope {
	details := err.Details
	if details == nil {
		details = []string{}
	}
	return Envelope{Error: &ErrorBody{Code: err.Code, Message: err.Message, Details: details}}
}
