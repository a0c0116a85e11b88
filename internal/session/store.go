package session

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session not found")

// Store persists navigation state per session id.
type Store interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, state State) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// LoadOrNew returns the stored state, or a fresh one when the session is
// unknown or expired.
func LoadOrNew(ctx context.Context, store Store, id string) (State, error) {
	state, err := store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return NewState(), nil
	}
	if err != nil {
		return State{}, err
	}
	return state, nil
}
