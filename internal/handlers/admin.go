package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gdg-garage/conference-registration-api/internal/auth"
	"github.com/gdg-garage/conference-registration-api/internal/credential"
	"github.com/gdg-garage/conference-registration-api/internal/directory"
	"github.com/gdg-garage/conference-registration-api/internal/models"
)

type AdminHandler struct {
	directory    *directory.Service
	authHandler  *auth.AuthHandler
	exposeDetail bool
}

func NewAdminHandler(dir *directory.Service, authHandler *auth.AuthHandler, exposeDetail bool) *AdminHandler {
	return &AdminHandler{directory: dir, authHandler: authHandler, exposeDetail: exposeDetail}
}

type ListParticipantsRequest struct {
	auth.AuthInput
	Date string `query:"date" doc:"Only participants of conferences on this day (YYYY-MM-DD)"`
	Sort string `query:"sort" enum:"createdAt,nom" doc:"createdAt (newest first, default) or nom"`
}

type ListParticipantsOutput struct {
	Body []models.Registrant
}

func (h *AdminHandler) HandleParticipants(ctx context.Context, input *ListParticipantsRequest) (*ListParticipantsOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	registrants, err := h.directory.ListRegistrants(ctx, directory.Filter{Date: input.Date, SortBy: input.Sort})
	if errors.Is(err, directory.ErrInvalidFilter) {
		return nil, &APIError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	if err != nil {
		return nil, serverError("Erreur lors de la récupération des participants", err, h.exposeDetail)
	}
	if registrants == nil {
		registrants = []models.Registrant{}
	}
	return &ListParticipantsOutput{Body: registrants}, nil
}

type CheckinRequest struct {
	auth.AuthInput
	Body struct {
		Payload string `json:"payload,omitempty" required:"false" doc:"Decoded QR code text"`
		Image   string `json:"image,omitempty" required:"false" doc:"QR code image as a data URL"`
	}
}

type CheckinOutput struct {
	Body struct {
		Valid       bool               `json:"valid"`
		Message     string             `json:"message"`
		Participant *models.Registrant `json:"participant,omitempty"`
	}
}

// HandleCheckin resolves a scanned credential at the venue entrance.
func (h *AdminHandler) HandleCheckin(ctx context.Context, input *CheckinRequest) (*CheckinOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	payload := input.Body.Payload
	if payload == "" && input.Body.Image != "" {
		decoded, err := credential.DecodeDataURL(input.Body.Image)
		if err != nil {
			return nil, &APIError{Status: http.StatusBadRequest, Message: "QR code illisible"}
		}
		payload = decoded
	}
	if payload == "" {
		return nil, &APIError{Status: http.StatusBadRequest, Message: "payload ou image requis"}
	}

	out := &CheckinOutput{}
	registrant, err := h.directory.Verify(ctx, payload)
	if errors.Is(err, directory.ErrUnknownCredential) {
		out.Body.Message = "QR code inconnu"
		return out, nil
	}
	if err != nil {
		return nil, serverError("Erreur serveur", err, h.exposeDetail)
	}

	registrant.QRCode = ""
	out.Body.Valid = true
	out.Body.Message = "Participant inscrit"
	out.Body.Participant = &registrant
	return out, nil
}
