package store

import (
	"context"
	"fmt"

	"eventify/models"

	"github.com/pocketbase/dbx"
)

func (s *Store) challengeQuery() *dbx.SelectQuery {
	return s.db.Select("ch.*", "c.name AS college_name").
		From("challenges ch").
		LeftJoin("colleges c", dbx.NewExp("c.id = ch.college_id"))
}

func (s *Store) ListChallenges(ctx context.Context, approved bool) ([]*models.Challenge, error) {
	challenges := []*models.Challenge{}
	err := s.challengeQuery().
		Where(dbx.HashExp{"ch.approved": approved}).
		OrderBy("ch.id ASC").
		WithContext(ctx).
		All(&challenges)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return challenges, nil
}

// FindChallenge looks a challenge up regardless of its approval state.
func (s *Store) FindChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	challenge := &models.Challenge{}
	err := s.challengeQuery().
		Where(dbx.HashExp{"ch.id": id}).
		WithContext(ctx).
		One(challenge)
	if err != nil {
		return nil, notFound(err, "challenge", id)
	}
	return challenge, nil
}

func (s *Store) CreateChallenge(ctx context.Context, ch *models.Challenge) error {
	ch.CreatedAt = now()
	if ch.Rules == nil {
		ch.Rules = models.Rules{}
	}
	res, err := s.db.Insert("challenges", dbx.Params{
		"title":             ch.Title,
		"description":       ch.Description,
		"short_description": ch.ShortDescription,
		"category":          ch.Category,
		"deadline":          ch.Deadline,
		"participants":      ch.Participants,
		"status":            ch.Status,
		"rules":             ch.Rules,
		"prizes":            ch.Prizes,
		"price":             ch.Price.String(),
		"college_id":        ch.CollegeID,
		"approved":          ch.Approved,
		"created_at":        ch.CreatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	ch.ID, err = res.LastInsertId()
	return err
}

func (s *Store) ApproveChallenge(ctx context.Context, id int64) error {
	return s.approve(ctx, "challenges", "challenge", id)
}
