package models

import (
	"fmt"

	"eventify/internal/status"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

type Registration struct {
	ID            int64  `db:"id" json:"id"`
	UserID        int64  `db:"user_id" json:"user_id"`
	EventID       *int64 `db:"event_id" json:"event_id"`
	ChallengeID   *int64 `db:"challenge_id" json:"challenge_id"`
	PaymentStatus string `db:"payment_status" json:"payment_status"` // pending, completed
	RegisteredAt  string `db:"registered_at" json:"registered_at"`

	ItemTitle *string `db:"item_title" json:"item_title,omitempty"`
}

type ItemKind string

const (
	ItemEvent     ItemKind = "event"
	ItemChallenge ItemKind = "challenge"
)

// ItemRef names the target of a payment or registration request. Exactly one
// of the two ids must be set; non-positive ids count as absent.
type ItemRef struct {
	EventID     *int64 `json:"event_id"`
	ChallengeID *int64 `json:"challenge_id"`
}

func EventRef(id int64) ItemRef     { return ItemRef{EventID: &id} }
func ChallengeRef(id int64) ItemRef { return ItemRef{ChallengeID: &id} }

func (r ItemRef) Validate() error {
	hasEvent := isSet(r.EventID)
	hasChallenge := isSet(r.ChallengeID)

	switch {
	case hasEvent && hasChallenge:
		return fmt.Errorf("%w: provide event_id or challenge_id, not both", status.ErrValidation)
	case !hasEvent && !hasChallenge:
		return fmt.Errorf("%w: event_id or challenge_id is required", status.ErrValidation)
	}
	return nil
}

// Kind and ID are only meaningful after Validate succeeded.
func (r ItemRef) Kind() ItemKind {
	if isSet(r.EventID) {
		return ItemEvent
	}
	return ItemChallenge
}

func (r ItemRef) ID() int64 {
	if isSet(r.EventID) {
		return *r.EventID
	}
	if isSet(r.ChallengeID) {
		return *r.ChallengeID
	}
	return 0
}

func isSet(id *int64) bool {
	return id != nil && *id > 0
}
