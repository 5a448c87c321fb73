package store

import (
	"context"
	"fmt"

	"eventify/internal/status"
	"eventify/models"

	"github.com/pocketbase/dbx"
)

// FindItem resolves ref to its payable view. Items still awaiting approval
// are not found.
func (s *Store) FindItem(ctx context.Context, ref models.ItemRef) (*models.Item, error) {
	switch ref.Kind() {
	case models.ItemEvent:
		e, err := s.FindEvent(ctx, ref.ID())
		if err != nil {
			return nil, err
		}
		if !e.Approved {
			return nil, fmt.Errorf("event %d is not approved: %w", e.ID, status.ErrNotFound)
		}
		return &models.Item{Kind: models.ItemEvent, ID: e.ID, Title: e.Title, Price: e.Price}, nil
	default:
		ch, err := s.FindChallenge(ctx, ref.ID())
		if err != nil {
			return nil, err
		}
		if !ch.Approved {
			return nil, fmt.Errorf("challenge %d is not approved: %w", ch.ID, status.ErrNotFound)
		}
		return &models.Item{Kind: models.ItemChallenge, ID: ch.ID, Title: ch.Title, Price: ch.Price}, nil
	}
}

// IncrementParticipants bumps the counter of the referenced item by one in a
// single statement, so concurrent writers never lose an update.
func (s *Store) IncrementParticipants(ctx context.Context, ref models.ItemRef) error {
	table := "events"
	if ref.Kind() == models.ItemChallenge {
		table = "challenges"
	}

	res, err := s.db.NewQuery("UPDATE " + table + " SET participants = participants + 1 WHERE id = {:id}").
		Bind(dbx.Params{"id": ref.ID()}).
		WithContext(ctx).
		Execute()
	if err != nil {
		return fmt.Errorf("increment %s participants: %w", ref.Kind(), err)
	}
	return affectedOrNotFound(res, string(ref.Kind()), ref.ID())
}

// CreateRegistration inserts r and fills its ID and RegisteredAt.
func (s *Store) CreateRegistration(ctx context.Context, r *models.Registration) error {
	r.RegisteredAt = now()
	res, err := s.db.Insert("registrations", dbx.Params{
		"user_id":        r.UserID,
		"event_id":       r.EventID,
		"challenge_id":   r.ChallengeID,
		"payment_status": r.PaymentStatus,
		"registered_at":  r.RegisteredAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	r.ID, err = res.LastInsertId()
	return err
}

// ListRegistrationsByUser returns the user's registrations, newest first,
// with the title of the registered item.
func (s *Store) ListRegistrationsByUser(ctx context.Context, userID int64) ([]*models.Registration, error) {
	registrations := []*models.Registration{}
	err := s.db.NewQuery(`
		SELECT r.*, COALESCE(e.title, ch.title) AS item_title
		FROM registrations r
		LEFT JOIN events e ON e.id = r.event_id
		LEFT JOIN challenges ch ON ch.id = r.challenge_id
		WHERE r.user_id = {:user}
		ORDER BY r.id DESC
	`).Bind(dbx.Params{"user": userID}).WithContext(ctx).All(&registrations)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

// CountRegistrations counts registrations targeting ref.
func (s *Store) CountRegistrations(ctx context.Context, ref models.ItemRef) (int, error) {
	column := "event_id"
	if ref.Kind() == models.ItemChallenge {
		column = "challenge_id"
	}
	var count int
	err := s.db.Select("COUNT(*)").From("registrations").
		Where(dbx.HashExp{column: ref.ID()}).
		WithContext(ctx).
		Row(&count)
	return count, err
}
