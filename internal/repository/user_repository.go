package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wellspace/backend/internal/kv"
	"wellspace/backend/internal/model"
)

// UserRepository persists the flat credential list under the global
// wellspace_users key as a JSON array.
type UserRepository struct {
	store kv.Store
}

func NewUserRepository(store kv.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) List(ctx context.Context) ([]model.Credential, error) {
	raw, found, err := r.store.Get(ctx, kv.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !found {
		return nil, nil
	}

	var users []model.Credential
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// GetByEmail matches case-insensitively, mirroring sign-up uniqueness.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.Credential, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// Append adds a record without a duplicate check; the service layer enforces
// email uniqueness before calling.
func (r *UserRepository) Append(ctx context.Context, cred model.Credential) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	users = append(users, cred)

	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := r.store.Set(ctx, kv.UsersKey, string(raw)); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
