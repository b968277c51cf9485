package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"wellspace/backend/internal/kv"
)

// ProgressRepository persists the per-user counters and id sets. Counters are
// stored as decimal text, sets as JSON arrays of integers, matching the
// persisted key layout.
type ProgressRepository struct {
	store kv.Store
}

func NewProgressRepository(store kv.Store) *ProgressRepository {
	return &ProgressRepository{store: store}
}

func (r *ProgressRepository) Steps(ctx context.Context, email string) (int, error) {
	return r.counter(ctx, kv.StepsKey(email))
}

func (r *ProgressRepository) SetSteps(ctx context.Context, email string, total int) error {
	return r.store.Set(ctx, kv.StepsKey(email), strconv.Itoa(total))
}

func (r *ProgressRepository) FocusMinutes(ctx context.Context, email string) (int, error) {
	return r.counter(ctx, kv.FocusMinutesKey(email))
}

func (r *ProgressRepository) AddFocusMinutes(ctx context.Context, email string, minutes int) (int, error) {
	return r.addToCounter(ctx, kv.FocusMinutesKey(email), minutes)
}

func (r *ProgressRepository) SleepSessions(ctx context.Context, email string) (int, error) {
	return r.counter(ctx, kv.SleepSessionsKey(email))
}

func (r *ProgressRepository) IncrementSleepSessions(ctx context.Context, email string) (int, error) {
	return r.addToCounter(ctx, kv.SleepSessionsKey(email), 1)
}

func (r *ProgressRepository) CompletedWorkouts(ctx context.Context, email string) ([]int, error) {
	return r.intSet(ctx, kv.CompletedWorkoutsKey(email))
}

func (r *ProgressRepository) SetCompletedWorkouts(ctx context.Context, email string, ids []int) error {
	return r.setIntSet(ctx, kv.CompletedWorkoutsKey(email), ids)
}

func (r *ProgressRepository) CompletedDays(ctx context.Context, email string) ([]int, error) {
	return r.intSet(ctx, kv.CompletedDaysKey(email))
}

func (r *ProgressRepository) SetCompletedDays(ctx context.Context, email string, days []int) error {
	return r.setIntSet(ctx, kv.CompletedDaysKey(email), days)
}

func (r *ProgressRepository) ClearCompletedDays(ctx context.Context, email string) error {
	if err := r.store.Remove(ctx, kv.CompletedDaysKey(email)); err != nil {
		return fmt.Errorf("clear completed days: %w", err)
	}
	return nil
}

func (r *ProgressRepository) counter(ctx context.Context, key string) (int, error) {
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse counter %s: %w", key, err)
	}
	return value, nil
}

func (r *ProgressRepository) addToCounter(ctx context.Context, key string, delta int) (int, error) {
	current, err := r.counter(ctx, key)
	if err != nil {
		return 0, err
	}
	updated := current + delta
	if err := r.store.Set(ctx, key, strconv.Itoa(updated)); err != nil {
		return 0, err
	}
	return updated, nil
}

func (r *ProgressRepository) intSet(ctx context.Context, key string) ([]int, error) {
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var values []int
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("decode set %s: %w", key, err)
	}
	return values, nil
}

func (r *ProgressRepository) setIntSet(ctx context.Context, key string, values []int) error {
	if values == nil {
		values = []int{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode set %s: %w", key, err)
	}
	return r.store.Set(ctx, key, string(raw))
}
