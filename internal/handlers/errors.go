package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/conference-registration-api/internal/registration"
)

// APIError is the error envelope every endpoint returns: a client-facing
// message plus, outside production, the underlying error text.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *APIError) GetStatus() int {
	return e.Status
}

// MsgInvalidRequest answers bodies and parameters that fail schema
// validation before reaching a handler.
const MsgInvalidRequest = "requête invalide"

// UseErrorEnvelope makes huma's built-in errors (validation, 404, ...) use
// APIError. Schema validation failures are reported as 400 like every other
// bad input. exposeDetail controls whether details reach the client.
func UseErrorEnvelope(exposeDetail bool) {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
			msg = MsgInvalidRequest
		}
		e := &APIError{Status: status, Message: msg}
		if exposeDetail && len(errs) > 0 {
			details := make([]string, 0, len(errs))
			for _, err := range errs {
				if err != nil {
					details = append(details, err.Error())
				}
			}
			e.Detail = strings.Join(details, "; ")
		}
		return e
	}
}

func serverError(msg string, err error, exposeDetail bool) *APIError {
	e := &APIError{Status: http.StatusInternalServerError, Message: msg}
	if exposeDetail && err != nil {
		e.Detail = err.Error()
	}
	return e
}

// registrationError maps workflow failures onto HTTP statuses: bad input and
// conflicts are 400, an unknown conference is 404, anything else is 500.
func registrationError(err error, exposeDetail bool) *APIError {
	var rerr *registration.Error
	if !errors.As(err, &rerr) {
		return serverError(registration.MsgServerFailure, err, exposeDetail)
	}

	switch rerr.Kind {
	case registration.KindValidation, registration.KindConflict:
		return &APIError{Status: http.StatusBadRequest, Message: rerr.Message}
	case registration.KindNotFound:
		return &APIError{Status: http.StatusNotFound, Message: rerr.Message}
	default:
		return serverError(rerr.Message, rerr.Err, exposeDetail)
	}
}
