package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPubNubNotifier(t *testing.T) {
	n := NewPubNubNotifier("", "sub-key", "")
	assert.IsType(t, NopNotifier{}, n)
	assert.NoError(t, n.Notify(context.Background(), 1, map[string]any{"type": "x"}))

	n = NewPubNubNotifier("pub-key", "sub-key", "")
	assert.IsType(t, &PubNubNotifier{}, n)
}

func TestUserChannel(t *testing.T) {
	assert.Equal(t, "user-42", UserChannel(42))
}
