package services

import (
	"context"
	"log/slog"

	"eventify/internal/store"
	"eventify/models"
	"eventify/monitoring"
)

type RegistrationService struct {
	store    *store.Store
	notifier Notifier
	monitor  *monitoring.Monitor
}

func NewRegistrationService(s *store.Store, notifier Notifier, monitor *monitoring.Monitor) *RegistrationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &RegistrationService{store: s, notifier: notifier, monitor: monitor}
}

// Register records a completed registration for the referenced item and
// bumps its participant count. Both writes commit together or not at all.
// Payment is trusted to have happened; nothing is checked with the
// processor.
func (s *RegistrationService) Register(ctx context.Context, userID int64, ref models.ItemRef) (*models.Registration, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	var reg *models.Registration
	err := s.store.RunInTransaction(ctx, func(tx *store.Store) error {
		item, err := tx.FindItem(ctx, ref)
		if err != nil {
			return err
		}

		r := &models.Registration{
			UserID:        userID,
			PaymentStatus: models.PaymentCompleted,
			ItemTitle:     &item.Title,
		}
		id := item.ID
		if item.Kind == models.ItemEvent {
			r.EventID = &id
		} else {
			r.ChallengeID = &id
		}

		if err := tx.CreateRegistration(ctx, r); err != nil {
			return err
		}
		if err := tx.IncrementParticipants(ctx, ref); err != nil {
			return err
		}
		reg = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Registration recorded",
		"registration_id", reg.ID,
		"user_id", userID,
		"kind", ref.Kind(),
		"item_id", ref.ID(),
	)
	s.monitor.TrackRegistration(string(ref.Kind()))
	s.notify(ctx, reg, ref)

	return reg, nil
}

func (s *RegistrationService) notify(ctx context.Context, reg *models.Registration, ref models.ItemRef) {
	err := s.notifier.Notify(ctx, reg.UserID, map[string]any{
		"type":            "registration_completed",
		"registration_id": reg.ID,
		"item_type":       string(ref.Kind()),
		"item_id":         ref.ID(),
		"title":           *reg.ItemTitle,
	})
	if err != nil {
		slog.Error("s.notifier.Notify()", "user_id", reg.UserID, "registration_id", reg.ID, "error", err)
		s.monitor.TrackNotification("error")
		return
	}
	s.monitor.TrackNotification("sent")
}

// ListMyRegistrations returns the user's registrations, newest first.
func (s *RegistrationService) ListMyRegistrations(ctx context.Context, userID int64) ([]*models.Registration, error) {
	return s.store.ListRegistrationsByUser(ctx, userID)
}
