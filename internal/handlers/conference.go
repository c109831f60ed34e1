package handlers

import (
	"context"
	"time"

	"github.com/gdg-garage/conference-registration-api/internal/directory"
)

type ConferenceHandler struct {
	directory    *directory.Service
	exposeDetail bool
}

func NewConferenceHandler(dir *directory.Service, exposeDetail bool) *ConferenceHandler {
	return &ConferenceHandler{directory: dir, exposeDetail: exposeDetail}
}

type ConferenceResponse struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Titre    string    `json:"titre"`
	Capacite int       `json:"capacite,omitempty"`
}

type ListConferencesOutput struct {
	Body []ConferenceResponse
}

func (h *ConferenceHandler) HandleList(ctx context.Context, _ *struct{}) (*ListConferencesOutput, error) {
	conferences, err := h.directory.ListConferences(ctx)
	if err != nil {
		return nil, serverError("Erreur serveur", err, h.exposeDetail)
	}

	body := make([]ConferenceResponse, 0, len(conferences))
	for _, c := range conferences {
		body = append(body, ConferenceResponse{
			ID:       c.ID,
			Date:     c.Date,
			Titre:    c.Titre,
			Capacite: c.Capacite,
		})
	}
	return &ListConferencesOutput{Body: body}, nil
}

type ListDatesOutput struct {
	Body []string
}

func (h *ConferenceHandler) HandleDates(ctx context.Context, _ *struct{}) (*ListDatesOutput, error) {
	dates, err := h.directory.ListConferenceDates(ctx)
	if err != nil {
		return nil, serverError("Erreur serveur", err, h.exposeDetail)
	}
	return &ListDatesOutput{Body: dates}, nil
}
