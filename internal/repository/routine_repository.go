package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"wellspace/backend/internal/kv"
	"wellspace/backend/internal/model"
)

// RoutineRepository persists the generated plan as a whole under
// {email}_routinePlan.
type RoutineRepository struct {
	store kv.Store
}

func NewRoutineRepository(store kv.Store) *RoutineRepository {
	return &RoutineRepository{store: store}
}

func (r *RoutineRepository) Plan(ctx context.Context, email string) ([]model.RoutineDay, error) {
	raw, found, err := r.store.Get(ctx, kv.RoutinePlanKey(email))
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	var plan []model.RoutineDay
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return plan, nil
}

func (r *RoutineRepository) SavePlan(ctx context.Context, email string, plan []model.RoutineDay) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := r.store.Set(ctx, kv.RoutinePlanKey(email), string(raw)); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

func (r *RoutineRepository) ClearPlan(ctx context.Context, email string) error {
	if err := r.store.Remove(ctx, kv.RoutinePlanKey(email)); err != nil {
		return fmt.Errorf("clear plan: %w", err)
	}
	return nil
}
