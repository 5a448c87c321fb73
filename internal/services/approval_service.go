package services

import (
	"context"
	"log/slog"

	"eventify/internal/store"
	"eventify/models"
	"eventify/monitoring"
)

// ApprovalService lists and approves records awaiting review. Callers must
// be authenticated; there is no reviewer role.
type ApprovalService struct {
	store   *store.Store
	monitor *monitoring.Monitor
}

func NewApprovalService(s *store.Store, monitor *monitoring.Monitor) *ApprovalService {
	return &ApprovalService{store: s, monitor: monitor}
}

func (s *ApprovalService) ListPendingColleges(ctx context.Context) ([]models.PendingCollege, error) {
	colleges, err := s.store.ListColleges(ctx, false)
	if err != nil {
		return nil, err
	}
	pending := make([]models.PendingCollege, 0, len(colleges))
	for _, c := range colleges {
		pending = append(pending, c.Pending())
	}
	return pending, nil
}

func (s *ApprovalService) ApproveCollege(ctx context.Context, reviewerID, id int64) error {
	if err := s.store.ApproveCollege(ctx, id); err != nil {
		return err
	}
	s.approved("college", reviewerID, id)
	return nil
}

func (s *ApprovalService) ListPendingEvents(ctx context.Context) ([]*models.Event, error) {
	return s.store.ListEvents(ctx, store.EventFilter{Approved: false})
}

func (s *ApprovalService) ApproveEvent(ctx context.Context, reviewerID, id int64) error {
	if err := s.store.ApproveEvent(ctx, id); err != nil {
		return err
	}
	s.approved("event", reviewerID, id)
	return nil
}

func (s *ApprovalService) ListPendingChallenges(ctx context.Context) ([]*models.Challenge, error) {
	return s.store.ListChallenges(ctx, false)
}

func (s *ApprovalService) ApproveChallenge(ctx context.Context, reviewerID, id int64) error {
	if err := s.store.ApproveChallenge(ctx, id); err != nil {
		return err
	}
	s.approved("challenge", reviewerID, id)
	return nil
}

func (s *ApprovalService) approved(kind string, reviewerID, id int64) {
	slog.Info("Record approved", "kind", kind, "id", id, "reviewer_id", reviewerID)
	s.monitor.TrackApproval(kind)
}
