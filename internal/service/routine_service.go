package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/singleflight"

	apperrors "wellspace/backend/internal/errors"
	"wellspace/backend/internal/llm"
	"wellspace/backend/internal/model"
	"wellspace/backend/internal/repository"
)

const planPromptTemplate = `Create a 21-day wellness routine plan for a user with %d minutes of free time per day.
For each day, provide a list of 2-3 small, actionable tasks.
The plan should be balanced, incorporating a mix of light physical activity (like walking, stretching), mindfulness (breathing exercises, meditation), and focus-building tasks.
The tasks should be simple, easy to follow, and require minimal equipment.
Gradually increase the intensity or duration slightly over the 21 days if possible.
Ensure the output is a JSON array of objects, where each object has a 'day' (number) and a 'tasks' (array of strings).`

// fallbackPlan replaces the whole generation result on any request or parse
// failure. Callers cannot tell a fallback apart from a degraded response
// except by its content.
var fallbackPlan = []model.RoutineDay{
	{Day: 1, Tasks: []string{"5-minute deep breathing exercise.", "Drink a glass of water."}},
	{Day: 2, Tasks: []string{"10-minute brisk walk outside.", "Stretch for 5 minutes."}},
	{Day: 3, Tasks: []string{"Error generating plan.", "Please try again."}},
}

// FallbackPlan returns a copy of the fixed 3-day substitute plan.
func FallbackPlan() []model.RoutineDay {
	out := make([]model.RoutineDay, len(fallbackPlan))
	copy(out, fallbackPlan)
	return out
}

// RoutineService runs the plan-generation workflow: one request to the
// generation service, shape validation, ascending sort, fallback on failure,
// and persistence of the plan plus a cleared completed-day set.
type RoutineService struct {
	generator    llm.Generator
	routineRepo  *repository.RoutineRepository
	progressRepo *repository.ProgressRepository

	// At most one generation is in flight per user; a duplicate trigger
	// shares the first result instead of racing the final write.
	inflight singleflight.Group
}

func NewRoutineService(
	generator llm.Generator,
	routineRepo *repository.RoutineRepository,
	progressRepo *repository.ProgressRepository,
) *RoutineService {
	return &RoutineService{
		generator:    generator,
		routineRepo:  routineRepo,
		progressRepo: progressRepo,
	}
}

func (s *RoutineService) Generate(ctx context.Context, email string, freeMinutes int) ([]model.RoutineDay, *apperrors.APIError) {
	if !model.IsValidFreeMinutes(freeMinutes) {
		return nil, apperrors.BadRequest("invalid_free_minutes", "freeMinutes must be one of 15, 30, 45")
	}

	result, err, _ := s.inflight.Do(email, func() (interface{}, error) {
		plan := s.generatePlan(ctx, freeMinutes)

		if err := s.routineRepo.SavePlan(ctx, email, plan); err != nil {
			return nil, err
		}
		if err := s.progressRepo.ClearCompletedDays(ctx, email); err != nil {
			return nil, err
		}
		return plan, nil
	})
	if err != nil {
		return nil, apperrors.Internal("failed to save routine plan")
	}
	return result.([]model.RoutineDay), nil
}

func (s *RoutineService) Plan(ctx context.Context, email string) ([]model.RoutineDay, *apperrors.APIError) {
	plan, err := s.routineRepo.Plan(ctx, email)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("plan_not_found", "no routine plan generated yet")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load routine plan")
	}
	return plan, nil
}

// Clear implements the explicit regenerate action: plan and completed-day set
// are removed together.
func (s *RoutineService) Clear(ctx context.Context, email string) *apperrors.APIError {
	if err := s.routineRepo.ClearPlan(ctx, email); err != nil {
		return apperrors.Internal("failed to clear routine plan")
	}
	if err := s.progressRepo.ClearCompletedDays(ctx, email); err != nil {
		return apperrors.Internal("failed to clear completed days")
	}
	return nil
}

// ToggleDay flips a day's membership in the completed-day set and returns the
// updated set. Day numbers are not validated against the current plan.
func (s *RoutineService) ToggleDay(ctx context.Context, email string, day int) ([]int, *apperrors.APIError) {
	if day <= 0 {
		return nil, apperrors.BadRequest("invalid_day", "day must be a positive number")
	}

	days, err := s.progressRepo.CompletedDays(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load completed days")
	}

	updated := make([]int, 0, len(days)+1)
	removed := false
	for _, d := range days {
		if d == day {
			removed = true
			continue
		}
		updated = append(updated, d)
	}
	if !removed {
		updated = append(updated, day)
	}

	if err := s.progressRepo.SetCompletedDays(ctx, email, updated); err != nil {
		return nil, apperrors.Internal("failed to save completed days")
	}
	return updated, nil
}

func (s *RoutineService) generatePlan(ctx context.Context, freeMinutes int) []model.RoutineDay {
	raw, err := s.generator.Generate(ctx, fmt.Sprintf(planPromptTemplate, freeMinutes))
	if err != nil {
		slog.Warn("plan generation failed, serving fallback", "error", err)
		return FallbackPlan()
	}

	plan, err := parsePlan(raw)
	if err != nil {
		slog.Warn("plan response unusable, serving fallback", "error", err)
		return FallbackPlan()
	}
	return plan
}

// parsePlan validates the generated JSON: elements whose day is not a number
// or whose tasks is not a string array are dropped, survivors are sorted
// ascending by day. The result is not padded to 21 entries.
func parsePlan(raw string) ([]model.RoutineDay, error) {
	data := []byte(stripCodeFence(raw))

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		if json.Valid(data) {
			// Valid JSON that is not an array yields an empty plan rather
			// than the fallback.
			return []model.RoutineDay{}, nil
		}
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	plan := make([]model.RoutineDay, 0, len(elements))
	for _, element := range elements {
		var entry struct {
			Day   *float64 `json:"day"`
			Tasks []string `json:"tasks"`
		}
		if err := json.Unmarshal(element, &entry); err != nil {
			continue
		}
		if entry.Day == nil || entry.Tasks == nil {
			continue
		}
		plan = append(plan, model.RoutineDay{
			Day:   int(*entry.Day),
			Tasks: entry.Tasks,
		})
	}

	sort.SliceStable(plan, func(i, j int) bool { return plan[i].Day < plan[j].Day })
	return plan, nil
}

func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
