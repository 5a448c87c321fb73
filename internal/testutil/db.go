// Package testutil provides a migrated in-memory database for tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"eventify/internal/store"
	"eventify/migrations"
	"eventify/models"

	"github.com/pocketbase/dbx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var dbSeq atomic.Int64

// NewStore opens a fresh migrated database that is closed with the test.
func NewStore(t testing.TB) (*store.Store, *dbx.DB) {
	t.Helper()

	name := fmt.Sprintf("%s_%d", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()), dbSeq.Add(1))
	db, err := store.OpenMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = migrations.Up(db)
	require.NoError(t, err)

	return store.New(db), db
}

// Fixture holds one approved college with an event and a challenge, and a
// pending copy of each.
type Fixture struct {
	College        *models.College
	PendingCollege *models.College
	Event          *models.Event
	PendingEvent   *models.Event
	Challenge      *models.Challenge
	PendingChal    *models.Challenge
}

func Seed(t testing.TB, s *store.Store) *Fixture {
	t.Helper()
	ctx := t.Context()
	f := &Fixture{}

	f.College = &models.College{Name: "Indian Institute of Technology Delhi", ShortName: "IIT Delhi", Location: "New Delhi", State: "Delhi", Approved: true}
	require.NoError(t, s.CreateCollege(ctx, f.College))
	f.PendingCollege = &models.College{Name: "New College", ShortName: "NC", Location: "Pune", State: "Maharashtra"}
	require.NoError(t, s.CreateCollege(ctx, f.PendingCollege))

	f.Event = &models.Event{
		Title: "Tech Summit", Description: "Talks", Organizer: "CSE", Date: "2025-03-15",
		Location: "Hall A", Category: "Technology", Price: decimal.RequireFromString("499.00"),
		CollegeID: f.College.ID, Approved: true,
	}
	require.NoError(t, s.CreateEvent(ctx, f.Event))
	f.PendingEvent = &models.Event{
		Title: "Draft Meetup", Description: "TBD", Organizer: "CSE", Date: "2025-04-01",
		Location: "Hall B", Category: "Technology", CollegeID: f.College.ID,
	}
	require.NoError(t, s.CreateEvent(ctx, f.PendingEvent))

	f.Challenge = &models.Challenge{
		Title: "Code Sprint", Description: "48h hackathon", ShortDescription: "Hack", Category: "Coding",
		Deadline: "2025-05-01", Status: "Open", Rules: models.Rules{"Teams of up to 4", "Original work only"},
		Prizes: "10000", Price: decimal.RequireFromString("99.50"), CollegeID: f.College.ID, Approved: true,
	}
	require.NoError(t, s.CreateChallenge(ctx, f.Challenge))
	f.PendingChal = &models.Challenge{
		Title: "Design Jam", Description: "UI challenge", Category: "Design", Deadline: "2025-06-01",
		CollegeID: f.College.ID,
	}
	require.NoError(t, s.CreateChallenge(ctx, f.PendingChal))

	return f
}
