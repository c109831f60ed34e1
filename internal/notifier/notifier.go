package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/gdg-garage/conference-registration-api/internal/models"
)

// ErrDisabled is returned by senders that have no outbound channel configured.
var ErrDisabled = errors.New("notification channel not configured")

// Confirmation is everything the attendee-facing message needs.
type Confirmation struct {
	To              string
	Nom             string
	Prenom          string
	ConferenceTitle string
	ConferenceDate  time.Time
	Motivation      string
	QRCode          []byte // PNG
}

// ConfirmationSender delivers the confirmation to the registrant.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, c Confirmation) error
}

// Notifier tells organizers about new registrations.
type Notifier interface {
	NotifyRegistration(ctx context.Context, registrant models.Registrant, conference models.Conference) error
}

type disabledSender struct{}

// Disabled returns a ConfirmationSender that always fails with ErrDisabled.
func Disabled() ConfirmationSender {
	return disabledSender{}
}

func (disabledSender) SendConfirmation(context.Context, Confirmation) error {
	return ErrDisabled
}
