// Package httpx provides helper functions for creating HTTP responses.
package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/reliefhub/reliefhub-backend/internal/apperr"
)

// JSON creates a JSON HTTP response with the given status code and value.
func JSON(status int, v any) (events.APIGatewayV2HTTPResponse, error) {
	b, _ := json.Marshal(v)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(b),
	}, nil
}

// Error creates a JSON HTTP error response with the given status code and message.
func Error(status int, msg string) (events.APIGatewayV2HTTPResponse, error) {
	return JSON(status, map[string]string{"error": msg})
}

// errorBody is the wire shape of a failed call. Errors is present only for
// validation failures.
type errorBody struct {
	Error  string             `json:"error"`
	Errors []apperr.FieldError `json:"errors,omitempty"`
}

// FromError maps a taxonomy error to the matching HTTP response. Internal
// causes are logged and kept opaque to the caller.
func FromError(err error) (events.APIGatewayV2HTTPResponse, error) {
	var e *apperr.Error
	status := http.StatusInternalServerError
	body := errorBody{Error: "internal error"}

	switch apperr.KindOf(err) {
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindValidation:
		status = http.StatusBadRequest
		body.Errors = apperr.FieldsOf(err)
	case apperr.KindConflict, apperr.KindInvalidTransition:
		status = http.StatusConflict
	default:
		log.Printf("internal failure: %v", err)
		return JSON(status, body)
	}

	if errors.As(err, &e) {
		body.Error = e.Message
	} else {
		body.Error = err.Error()
	}
	return JSON(status, body)
}
