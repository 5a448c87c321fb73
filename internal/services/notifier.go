package services

import (
	"context"
	"fmt"

	pubnub "github.com/pubnub/go"
)

// Notifier pushes realtime messages to a single user.
type Notifier interface {
	Notify(ctx context.Context, userID int64, message map[string]any) error
}

type PubNubNotifier struct {
	pn *pubnub.PubNub
}

// NewPubNubNotifier returns a no-op notifier when no publish key is set.
func NewPubNubNotifier(publishKey, subscribeKey, secretKey string) Notifier {
	if publishKey == "" {
		return NopNotifier{}
	}

	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = publishKey
	pnConfig.SubscribeKey = subscribeKey
	pnConfig.SecretKey = secretKey
	pnConfig.UUID = "eventify-server"

	return &PubNubNotifier{pn: pubnub.NewPubNub(pnConfig)}
}

func UserChannel(userID int64) string {
	return fmt.Sprintf("user-%d", userID)
}

func (n *PubNubNotifier) Notify(_ context.Context, userID int64, message map[string]any) error {
	_, _, err := n.pn.Publish().
		Channel(UserChannel(userID)).
		Message(message).
		Execute()
	return err
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, int64, map[string]any) error { return nil }
