// internal/service/push/push_test.go
package push

import (
	"context"
	"testing"

	"homescout-service/internal/domain/push"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSubscribeMissingEndpoint(t *testing.T) {
	svc := NewPushService(nil, zap.NewNop())

	req := &push.SubscribeRequest{}
	req.Keys.P256DH = "p256dh-key"
	req.Keys.Auth = "auth-key"

	_, err := svc.Subscribe(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

func TestSubscribeMissingKeys(t *testing.T) {
	svc := NewPushService(nil, zap.NewNop())

	cases := []struct {
		name   string
		p256dh string
		auth   string
	}{
		{"both missing", "", ""},
		{"auth missing", "p256dh-key", ""},
		{"p256dh missing", "", "auth-key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &push.SubscribeRequest{Endpoint: "https://push.example.com/ep"}
			req.Keys.P256DH = tc.p256dh
			req.Keys.Auth = tc.auth

			_, err := svc.Subscribe(context.Background(), 1, req)
			assert.ErrorIs(t, err, ErrMissingKeys)
		})
	}
}

// endpoint validation runs before key validation, so the client hears about
// the endpoint first when both are absent
func TestSubscribeValidationOrder(t *testing.T) {
	svc := NewPushService(nil, zap.NewNop())

	_, err := svc.Subscribe(context.Background(), 1, &push.SubscribeRequest{})
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}
