// Package directory answers the read-only queries of the admin view: who
// registered, for which conference, and on which dates conferences run.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/gdg-garage/conference-registration-api/internal/cache"
	"github.com/gdg-garage/conference-registration-api/internal/metrics"
	"github.com/gdg-garage/conference-registration-api/internal/models"
	"github.com/gdg-garage/conference-registration-api/internal/store"
	"golang.org/x/sync/singleflight"
)

const conferencesKey = "conferences"

var (
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrUnknownCredential = errors.New("unknown credential")
)

type Store interface {
	ListConferences(ctx context.Context) ([]models.Conference, error)
	ListRegistrants(ctx context.Context, order store.Order) ([]models.Registrant, error)
	FindRegistrantByCredential(ctx context.Context, payload string) (models.Registrant, error)
}

// Filter narrows a registrant listing. Date is an ISO date (2025-04-14)
// matched exactly against the conference date; empty means all.
type Filter struct {
	Date   string
	SortBy string // "nom" or "createdAt" (default)
}

func (f Filter) Validate() error {
	if f.Date != "" {
		if _, err := time.Parse(time.DateOnly, f.Date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidFilter)
		}
	}
	switch f.SortBy {
	case "", "createdAt", "nom":
	default:
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidFilter, f.SortBy)
	}
	return nil
}

type Service struct {
	store   Store
	cache   cache.Cache[[]models.Conference]
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(st Store, c cache.Cache[[]models.Conference], ttl time.Duration, m *metrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, cache: c, ttl: ttl, metrics: m, logger: logger}
}

// ListConferences returns all conferences ordered by date. Conferences are
// seeded out of band, so results are cached for the configured TTL.
func (s *Service) ListConferences(ctx context.Context) ([]models.Conference, error) {
	if s.cache != nil {
		if conferences, ok := s.cache.Get(ctx, conferencesKey); ok {
			s.metrics.IncrementCacheLookup(true)
			return conferences, nil
		}
		s.metrics.IncrementCacheLookup(false)
	}

	// The load is shared by every caller waiting on the key, so it must not
	// die with the first caller's request.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(conferencesKey, func() (any, error) {
		conferences, err := s.store.ListConferences(loadCtx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(loadCtx, conferencesKey, conferences, s.ttl)
		}
		return conferences, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list conferences", "error", err)
		return nil, err
	}
	return v.([]models.Conference), nil
}

// ListConferenceDates returns the distinct conference dates, ascending.
func (s *Service) ListConferenceDates(ctx context.Context) ([]string, error) {
	conferences, err := s.ListConferences(ctx)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(conferences))
	for _, c := range conferences {
		dates = append(dates, c.DateKey())
	}
	slices.Sort(dates)
	return slices.Compact(dates), nil
}

// ListRegistrants returns registrants joined with their conference, newest
// first unless the filter asks for surname order.
func (s *Service) ListRegistrants(ctx context.Context, f Filter) ([]models.Registrant, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	order := store.NewestFirst
	if f.SortBy == "nom" {
		order = store.BySurname
	}

	registrants, err := s.store.ListRegistrants(ctx, order)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list registrants", "error", err)
		return nil, err
	}
	return FilterByDate(registrants, f.Date), nil
}

// Verify resolves a scanned credential payload to its registrant.
func (s *Service) Verify(ctx context.Context, payload string) (models.Registrant, error) {
	r, err := s.store.FindRegistrantByCredential(ctx, payload)
	if errors.Is(err, store.ErrNotFound) {
		return models.Registrant{}, ErrUnknownCredential
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to verify credential", "error", err)
		return models.Registrant{}, err
	}
	return r, nil
}

// InvalidateConferences drops the cached conference list.
func (s *Service) InvalidateConferences(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, conferencesKey)
}

// FilterByDate keeps registrants whose conference falls on date. An empty
// date keeps everything. Order is preserved.
func FilterByDate(registrants []models.Registrant, date string) []models.Registrant {
	if date == "" {
		return registrants
	}
	out := make([]models.Registrant, 0, len(registrants))
	for _, r := range registrants {
		if r.Conference.DateKey() == date {
			out = append(out, r)
		}
	}
	return out
}
