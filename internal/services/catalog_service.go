package services

import (
	"context"

	"eventify/internal/store"
	"eventify/models"
)

// CatalogService serves the public read side. Lists contain approved
// records only; single lookups do not check approval.
type CatalogService struct {
	store *store.Store
}

func NewCatalogService(s *store.Store) *CatalogService {
	return &CatalogService{store: s}
}

func (s *CatalogService) ListColleges(ctx context.Context) ([]*models.College, error) {
	return s.store.ListColleges(ctx, true)
}

func (s *CatalogService) GetCollege(ctx context.Context, id int64) (*models.College, error) {
	return s.store.FindCollege(ctx, id)
}

// ListEvents returns approved events, of one college when collegeID is set.
func (s *CatalogService) ListEvents(ctx context.Context, collegeID *int64) ([]*models.Event, error) {
	return s.store.ListEvents(ctx, store.EventFilter{Approved: true, CollegeID: collegeID})
}

// ListCollegeEvents is ListEvents for a college that must exist.
func (s *CatalogService) ListCollegeEvents(ctx context.Context, collegeID int64) ([]*models.Event, error) {
	if _, err := s.store.FindCollege(ctx, collegeID); err != nil {
		return nil, err
	}
	return s.ListEvents(ctx, &collegeID)
}

func (s *CatalogService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return s.store.FindEvent(ctx, id)
}

func (s *CatalogService) ListChallenges(ctx context.Context) ([]*models.Challenge, error) {
	return s.store.ListChallenges(ctx, true)
}

func (s *CatalogService) GetChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	return s.store.FindChallenge(ctx, id)
}
