package store

import (
	"context"
	"testing"
	"time"

	"github.com/gdg-garage/conference-registration-api/internal/models"
	"github.com/gdg-garage/conference-registration-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistrant(email, conferenceID string) *models.Registrant {
	return &models.Registrant{
		Nom:          "Koffi",
		Prenom:       "Ama",
		Telephone:    "0123456789",
		Email:        email,
		ConferenceID: conferenceID,
		Credential:   "payload-" + email,
	}
}

func TestStore_FindConference(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.CreateConference(t, db, "C1", "Session 1", time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), 0)

	conf, err := s.FindConference(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Session 1", conf.Titre)

	_, err = s.FindConference(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CreateRegistrant_Duplicate(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.CreateConference(t, db, "C1", "Session 1", time.Now(), 0)

	require.NoError(t, s.CreateRegistrant(ctx, newRegistrant("ama@example.com", "C1"), 0))

	exists, err := s.EmailExists(ctx, "ama@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	err = s.CreateRegistrant(ctx, newRegistrant("ama@example.com", "C1"), 0)
	assert.ErrorIs(t, err, ErrDuplicate)

	count, err := s.CountRegistrants(ctx, "C1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestStore_CreateRegistrant_Capacity(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.CreateConference(t, db, "C1", "Session 1", time.Now(), 1)

	require.NoError(t, s.CreateRegistrant(ctx, newRegistrant("a@example.com", "C1"), 1))
	err := s.CreateRegistrant(ctx, newRegistrant("b@example.com", "C1"), 1)
	assert.ErrorIs(t, err, ErrCapacityReached)
}

func TestStore_ListRegistrants(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.CreateConference(t, db, "C1", "Session 1", time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), 0)

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"Zinsou", "Adjovi", "Mensah"} {
		r := newRegistrant(name+"@example.com", "C1")
		r.Nom = name
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.CreateRegistrant(ctx, r, 0))
	}

	newest, err := s.ListRegistrants(ctx, NewestFirst)
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "Mensah", newest[0].Nom)
	assert.Equal(t, "Session 1", newest[0].Conference.Titre)

	bySurname, err := s.ListRegistrants(ctx, BySurname)
	require.NoError(t, err)
	assert.Equal(t, []string{"Adjovi", "Mensah", "Zinsou"}, []string{bySurname[0].Nom, bySurname[1].Nom, bySurname[2].Nom})
}

func TestStore_FindRegistrantByCredential(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	testutil.CreateConference(t, db, "C1", "Session 1", time.Now(), 0)
	require.NoError(t, s.CreateRegistrant(ctx, newRegistrant("ama@example.com", "C1"), 0))

	r, err := s.FindRegistrantByCredential(ctx, "payload-ama@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", r.Email)
	assert.Equal(t, "C1", r.Conference.ID)

	_, err = s.FindRegistrantByCredential(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Ping(ctx))
}
