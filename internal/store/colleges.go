package store

import (
	"context"
	"fmt"

	"eventify/models"

	"github.com/pocketbase/dbx"
)

// ListColleges returns colleges with the given approval flag, oldest first.
func (s *Store) ListColleges(ctx context.Context, approved bool) ([]*models.College, error) {
	colleges := []*models.College{}
	err := s.db.Select("*").From("colleges").
		Where(dbx.HashExp{"approved": approved}).
		OrderBy("id ASC").
		WithContext(ctx).
		All(&colleges)
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}

// FindCollege looks a college up regardless of its approval state.
func (s *Store) FindCollege(ctx context.Context, id int64) (*models.College, error) {
	college := &models.College{}
	err := s.db.Select("*").From("colleges").
		Where(dbx.HashExp{"id": id}).
		WithContext(ctx).
		One(college)
	if err != nil {
		return nil, notFound(err, "college", id)
	}
	return college, nil
}

func (s *Store) CreateCollege(ctx context.Context, c *models.College) error {
	c.CreatedAt = now()
	res, err := s.db.Insert("colleges", dbx.Params{
		"name":             c.Name,
		"short_name":       c.ShortName,
		"location":         c.Location,
		"state":            c.State,
		"website":          c.Website,
		"email":            c.Email,
		"phone":            c.Phone,
		"logo_url":         c.LogoURL,
		"description":      c.Description,
		"established_year": c.EstablishedYear,
		"college_type":     c.CollegeType,
		"affiliation":      c.Affiliation,
		"approved":         c.Approved,
		"created_at":       c.CreatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("insert college: %w", err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

// ApproveCollege sets the approved flag. Approving twice is not an error.
func (s *Store) ApproveCollege(ctx context.Context, id int64) error {
	return s.approve(ctx, "colleges", "college", id)
}

func (s *Store) approve(ctx context.Context, table, what string, id int64) error {
	res, err := s.db.Update(table, dbx.Params{"approved": true}, dbx.HashExp{"id": id}).
		WithContext(ctx).
		Execute()
	if err != nil {
		return fmt.Errorf("approve %s %d: %w", what, id, err)
	}
	return affectedOrNotFound(res, what, id)
}

func (s *Store) CountColleges(ctx context.Context) (int, error) {
	var count int
	err := s.db.Select("COUNT(*)").From("colleges").WithContext(ctx).Row(&count)
	return count, err
}
