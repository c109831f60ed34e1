package handlers

import (
	"context"

	"github.com/gdg-garage/conference-registration-api/internal/registration"
)

type Registerer interface {
	Register(ctx context.Context, in registration.Input) (*registration.Result, error)
}

type RegistrationHandler struct {
	service      Registerer
	exposeDetail bool
}

func NewRegistrationHandler(service Registerer, exposeDetail bool) *RegistrationHandler {
	return &RegistrationHandler{service: service, exposeDetail: exposeDetail}
}

// Fields are optional at the schema level so the workflow reports missing
// values with its own messages. Unknown form fields are ignored.
type RegistrationRequest struct {
	Body struct {
		_            struct{} `json:"-" additionalProperties:"true"`
		Nom          string   `json:"nom" required:"false" doc:"Last name"`
		Prenom       string   `json:"prenom" required:"false" doc:"First name"`
		Telephone    string   `json:"telephone" required:"false" doc:"Phone number, 10 digits"`
		Email        string   `json:"email" required:"false" doc:"Email address, unique across registrants"`
		ConferenceID string   `json:"conferenceId" required:"false" doc:"Conference identifier"`
		Motivation   string   `json:"motivation,omitempty" required:"false" doc:"Optional motivation text"`
	}
}

type RegistrationResponse struct {
	Body struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		Notified bool   `json:"notified" doc:"Whether the confirmation email was delivered"`
	}
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegistrationRequest) (*RegistrationResponse, error) {
	result, err := h.service.Register(ctx, registration.Input{
		Nom:          input.Body.Nom,
		Prenom:       input.Body.Prenom,
		Telephone:    input.Body.Telephone,
		Email:        input.Body.Email,
		ConferenceID: input.Body.ConferenceID,
		Motivation:   input.Body.Motivation,
	})
	if err != nil {
		return nil, registrationError(err, h.exposeDetail)
	}

	res := &RegistrationResponse{}
	res.Body.Success = true
	res.Body.Message = result.Message
	res.Body.Notified = result.Notified
	return res, nil
}
