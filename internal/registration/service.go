// Package registration runs the conference sign-up workflow: validate the
// form, check the conference and the email, persist the registrant with its
// QR credential, then send the confirmation.
//
// Persistence is the durability boundary. Once the row is written the
// registration succeeds even if no notification goes out; Result.Notified
// tells the caller which case happened.
package registration

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdg-garage/conference-registration-api/internal/credential"
	"github.com/gdg-garage/conference-registration-api/internal/metrics"
	"github.com/gdg-garage/conference-registration-api/internal/models"
	"github.com/gdg-garage/conference-registration-api/internal/notifier"
	"github.com/gdg-garage/conference-registration-api/internal/store"
)

const notifyTimeout = 30 * time.Second

// Store is the persistence the workflow needs.
type Store interface {
	FindConference(ctx context.Context, id string) (models.Conference, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CountRegistrants(ctx context.Context, conferenceID string) (int64, error)
	CreateRegistrant(ctx context.Context, r *models.Registrant, capacity int) error
}

type CredentialGenerator interface {
	Generate(fields ...string) (credential.Credential, error)
}

// Input is the registration form. Motivation is optional.
type Input struct {
	Nom          string
	Prenom       string
	Telephone    string
	Email        string
	ConferenceID string
	Motivation   string
}

type Result struct {
	Registrant models.Registrant
	Conference models.Conference
	Notified   bool
	Message    string
}

type Service struct {
	store        Store
	credentials  CredentialGenerator
	mailer       notifier.ConfirmationSender
	organizers   notifier.Notifier
	metrics      *metrics.Metrics
	logger       *slog.Logger
	enforcePhone bool
	now          func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithOrganizerNotifier posts every successful registration to organizers.
func WithOrganizerNotifier(n notifier.Notifier) Option {
	return func(s *Service) { s.organizers = n }
}

// WithPhoneCheck toggles the 10-digit phone rule. It is on by default.
func WithPhoneCheck(enforce bool) Option {
	return func(s *Service) { s.enforcePhone = enforce }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(st Store, credentials CredentialGenerator, mailer notifier.ConfirmationSender, opts ...Option) *Service {
	s := &Service{
		store:        st,
		credentials:  credentials,
		mailer:       mailer,
		logger:       slog.Default(),
		enforcePhone: true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mailer == nil {
		s.mailer = notifier.Disabled()
	}
	return s
}

// Register validates and records a registration. Every returned error is a
// *Error; see its Kind for the failure category.
func (s *Service) Register(ctx context.Context, raw Input) (*Result, error) {
	start := s.now()
	defer s.metrics.ObserveRegistration(start)

	res, err := s.register(ctx, raw.Normalize())
	s.metrics.IncrementRegistration(outcome(err))
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) register(ctx context.Context, in Input) (*Result, error) {
	if verr := in.Validate(s.enforcePhone); verr != nil {
		return nil, verr
	}

	conf, err := s.store.FindConference(ctx, in.ConferenceID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundError(MsgConferenceNotFound)
	}
	if err != nil {
		return nil, s.dependencyFailure(ctx, "conference lookup failed", err)
	}

	// Advisory: the unique index is the real guard, this gives a clean message
	// without attempting the insert.
	exists, err := s.store.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, s.dependencyFailure(ctx, "duplicate check failed", err)
	}
	if exists {
		return nil, conflictError(MsgAlreadyRegistered)
	}

	if conf.Capacite > 0 {
		count, err := s.store.CountRegistrants(ctx, conf.ID)
		if err != nil {
			return nil, s.dependencyFailure(ctx, "capacity check failed", err)
		}
		if count >= int64(conf.Capacite) {
			return nil, conflictError(MsgConferenceFull)
		}
	}

	cred, err := s.credentials.Generate(CredentialFields(in, conf)...)
	if err != nil {
		return nil, s.dependencyFailure(ctx, "credential generation failed", err)
	}

	registrant := models.Registrant{
		Nom:          in.Nom,
		Prenom:       in.Prenom,
		Telephone:    in.Telephone,
		Email:        in.Email,
		ConferenceID: conf.ID,
		Motivation:   in.Motivation,
		Credential:   cred.Payload,
		QRCode:       cred.DataURL(),
		CreatedAt:    s.now(),
	}

	switch err := s.store.CreateRegistrant(ctx, &registrant, conf.Capacite); {
	case errors.Is(err, store.ErrDuplicate):
		return nil, conflictError(MsgAlreadyRegistered)
	case errors.Is(err, store.ErrCapacityReached):
		return nil, conflictError(MsgConferenceFull)
	case err != nil:
		return nil, s.dependencyFailure(ctx, "persisting registrant failed", err)
	}
	registrant.Conference = conf

	s.logger.InfoContext(ctx, "registrant created",
		"registrant_id", registrant.ID,
		"conference_id", conf.ID,
	)

	notified := s.notify(ctx, registrant, conf, cred)

	msg := MsgRegisteredNotified
	if !notified {
		msg = MsgRegisteredNoEmail
	}
	return &Result{
		Registrant: registrant,
		Conference: conf,
		Notified:   notified,
		Message:    msg,
	}, nil
}

// CredentialFields lists the identity encoded in a registrant's QR code.
func CredentialFields(in Input, conf models.Conference) []string {
	return []string{
		in.Nom + " " + in.Prenom,
		in.Telephone,
		in.Email,
		conf.Titre,
	}
}

// notify sends the confirmation and the organizer message. Failures are
// logged and counted; they never undo the registration.
func (s *Service) notify(ctx context.Context, r models.Registrant, conf models.Conference, cred credential.Credential) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	err := s.mailer.SendConfirmation(ctx, notifier.Confirmation{
		To:              r.Email,
		Nom:             r.Nom,
		Prenom:          r.Prenom,
		ConferenceTitle: conf.Titre,
		ConferenceDate:  conf.Date,
		Motivation:      r.Motivation,
		QRCode:          cred.PNG,
	})
	disabled := errors.Is(err, notifier.ErrDisabled)
	s.metrics.IncrementNotification("email", err, disabled)
	switch {
	case disabled:
		s.logger.DebugContext(ctx, "confirmation skipped, mail is disabled", "registrant_id", r.ID)
	case err != nil:
		s.logger.WarnContext(ctx, "confirmation not delivered",
			"registrant_id", r.ID,
			"error", err,
		)
	}

	if s.organizers != nil {
		oerr := s.organizers.NotifyRegistration(ctx, r, conf)
		s.metrics.IncrementNotification("organizers", oerr, false)
		if oerr != nil {
			s.logger.WarnContext(ctx, "organizer notification failed", "error", oerr)
		}
	}

	return err == nil
}

func (s *Service) dependencyFailure(ctx context.Context, msg string, err error) *Error {
	s.logger.ErrorContext(ctx, msg, "error", err)
	return dependencyError(MsgServerFailure, err)
}

func outcome(err error) string {
	var rerr *Error
	if !errors.As(err, &rerr) {
		if err == nil {
			return metrics.OutcomeSuccess
		}
		return metrics.OutcomeFailure
	}
	switch rerr.Kind {
	case KindValidation:
		return metrics.OutcomeValidation
	case KindNotFound:
		return metrics.OutcomeNotFound
	case KindConflict:
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeFailure
	}
}
