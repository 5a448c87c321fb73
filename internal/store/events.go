package store

import (
	"context"
	"fmt"

	"eventify/models"

	"github.com/pocketbase/dbx"
)

// EventFilter narrows ListEvents. A nil CollegeID means every college.
type EventFilter struct {
	Approved  bool
	CollegeID *int64
}

func (s *Store) eventQuery() *dbx.SelectQuery {
	return s.db.Select("e.*", "c.name AS college_name").
		From("events e").
		LeftJoin("colleges c", dbx.NewExp("c.id = e.college_id"))
}

// ListEvents returns events matching f together with their college name,
// in insertion order.
func (s *Store) ListEvents(ctx context.Context, f EventFilter) ([]*models.Event, error) {
	where := dbx.HashExp{"e.approved": f.Approved}
	if f.CollegeID != nil {
		where["e.college_id"] = *f.CollegeID
	}

	events := []*models.Event{}
	err := s.eventQuery().
		Where(where).
		OrderBy("e.id ASC").
		WithContext(ctx).
		All(&events)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindEvent looks an event up regardless of its approval state.
func (s *Store) FindEvent(ctx context.Context, id int64) (*models.Event, error) {
	event := &models.Event{}
	err := s.eventQuery().
		Where(dbx.HashExp{"e.id": id}).
		WithContext(ctx).
		One(event)
	if err != nil {
		return nil, notFound(err, "event", id)
	}
	return event, nil
}

func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	e.CreatedAt = now()
	res, err := s.db.Insert("events", dbx.Params{
		"title":        e.Title,
		"description":  e.Description,
		"organizer":    e.Organizer,
		"date":         e.Date,
		"location":     e.Location,
		"price":        e.Price.String(),
		"image":        e.Image,
		"category":     e.Category,
		"participants": e.Participants,
		"college_id":   e.CollegeID,
		"approved":     e.Approved,
		"created_at":   e.CreatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.ID, err = res.LastInsertId()
	return err
}

func (s *Store) ApproveEvent(ctx context.Context, id int64) error {
	return s.approve(ctx, "events", "event", id)
}
