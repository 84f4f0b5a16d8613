package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidToken is returned when the server rejects a handed-over token.
var ErrInvalidToken = errors.New("invalid token")

// Background owns the stored session. It is the only writer on sign-in.
type Background struct {
	client *Client
	store  Store
	bus    *Bus
	logger *slog.Logger
}

// NewBackground creates the worker and subscribes it to AUTH_SUCCESS.
func NewBackground(client *Client, store Store, bus *Bus, logger *slog.Logger) *Background {
	b := &Background{
		client: client,
		store:  store,
		bus:    bus,
		logger: logger,
	}
	bus.Subscribe(MsgAuthSuccess, b.handleAuthSuccess)
	return b
}

func (b *Background) handleAuthSuccess(ctx context.Context, msg Message) error {
	payload, ok := msg.Payload.(AuthSuccessPayload)
	if !ok || payload.Token == "" {
		return fmt.Errorf("%s: missing token", msg.Type)
	}

	validation, err := b.client.WithToken(payload.Token).ValidateToken(ctx)
	if err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	if !validation.Valid {
		b.logger.Warn("handed-over token rejected", "error", validation.Error)
		return ErrInvalidToken
	}

	userID := validation.UserID
	if userID == "" {
		userID = payload.UserID
	}
	session := Session{AuthToken: payload.Token, UserID: userID, Username: payload.Username}
	if err := b.store.Save(session); err != nil {
		return err
	}
	b.logger.Info("signed in", "user_id", userID, "username", payload.Username)

	return b.bus.Publish(ctx, Message{
		Type:    MsgAuthUpdated,
		Payload: AuthUpdatedPayload{IsAuthenticated: true, Username: payload.Username},
	})
}
