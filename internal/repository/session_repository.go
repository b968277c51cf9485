package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"wellspace/backend/internal/kv"
	"wellspace/backend/internal/model"
)

// SessionRepository holds the single persisted "current user" record under
// the global wellspace_currentUser key. It is not validated against the
// credential list; a dangling session after an external wipe is accepted.
type SessionRepository struct {
	store kv.Store
}

func NewSessionRepository(store kv.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Current(ctx context.Context) (*model.User, error) {
	raw, found, err := r.store.Get(ctx, kv.CurrentUserKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &user, nil
}

func (r *SessionRepository) SetCurrent(ctx context.Context, user model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.store.Set(ctx, kv.CurrentUserKey, string(raw)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, kv.CurrentUserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
