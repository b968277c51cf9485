package service

import (
	"context"

	"wellspace/backend/internal/catalog"
	apperrors "wellspace/backend/internal/errors"
	"wellspace/backend/internal/model"
	"wellspace/backend/internal/repository"
)

// ProgressService covers the step tracker, workout completion, sleep sounds
// and the dashboard aggregate.
type ProgressService struct {
	progressRepo *repository.ProgressRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

const StepsGoal = 6000

type StepsView struct {
	Total int `json:"total"`
	Goal  int `json:"goal"`
}

func (s *ProgressService) Steps(ctx context.Context, email string) (*StepsView, *apperrors.APIError) {
	total, err := s.progressRepo.Steps(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load steps")
	}
	return &StepsView{Total: total, Goal: StepsGoal}, nil
}

func (s *ProgressService) RecordSteps(ctx context.Context, email string, total int) (*StepsView, *apperrors.APIError) {
	if total < 0 {
		return nil, apperrors.BadRequest("invalid_steps", "steps must not be negative")
	}
	if err := s.progressRepo.SetSteps(ctx, email, total); err != nil {
		return nil, apperrors.Internal("failed to save steps")
	}
	return &StepsView{Total: total, Goal: StepsGoal}, nil
}

// ToggleWorkout flips a catalog workout in the user's completed set and
// returns the updated set. Double-toggling restores the prior value.
func (s *ProgressService) ToggleWorkout(ctx context.Context, email string, workoutID int) ([]int, *apperrors.APIError) {
	if _, ok := catalog.WorkoutByID(workoutID); !ok {
		return nil, apperrors.NotFound("workout_not_found", "unknown workout")
	}

	ids, err := s.progressRepo.CompletedWorkouts(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load completed workouts")
	}

	updated := make([]int, 0, len(ids)+1)
	removed := false
	for _, id := range ids {
		if id == workoutID {
			removed = true
			continue
		}
		updated = append(updated, id)
	}
	if !removed {
		updated = append(updated, workoutID)
	}

	if err := s.progressRepo.SetCompletedWorkouts(ctx, email, updated); err != nil {
		return nil, apperrors.Internal("failed to save completed workouts")
	}
	return updated, nil
}

func (s *ProgressService) CompletedWorkouts(ctx context.Context, email string) ([]int, *apperrors.APIError) {
	ids, err := s.progressRepo.CompletedWorkouts(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load completed workouts")
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

type PlayResult struct {
	Sound         model.SleepSound `json:"sound"`
	SleepSessions int              `json:"sleepSessions"`
}

// PlaySound counts a play action against the user's sleep-session total.
// Restarting the same track counts again; there is no decrement for pausing,
// so the counter tracks play actions, not unique sessions.
func (s *ProgressService) PlaySound(ctx context.Context, email string, soundID int) (*PlayResult, *apperrors.APIError) {
	sound, ok := catalog.SleepSoundByID(soundID)
	if !ok {
		return nil, apperrors.NotFound("sound_not_found", "unknown sleep sound")
	}

	count, err := s.progressRepo.IncrementSleepSessions(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to count sleep session")
	}
	return &PlayResult{Sound: sound, SleepSessions: count}, nil
}

type DashboardView struct {
	Steps             int `json:"steps"`
	StepsGoal         int `json:"stepsGoal"`
	CompletedDays     int `json:"completedDays"`
	CompletedWorkouts int `json:"completedWorkouts"`
	FocusMinutes      int `json:"focusMinutes"`
	SleepSessions     int `json:"sleepSessions"`
}

func (s *ProgressService) Dashboard(ctx context.Context, email string) (*DashboardView, *apperrors.APIError) {
	steps, err := s.progressRepo.Steps(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load steps")
	}
	days, err := s.progressRepo.CompletedDays(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load completed days")
	}
	workouts, err := s.progressRepo.CompletedWorkouts(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load completed workouts")
	}
	focusMinutes, err := s.progressRepo.FocusMinutes(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load focus minutes")
	}
	sleepSessions, err := s.progressRepo.SleepSessions(ctx, email)
	if err != nil {
		return nil, apperrors.Internal("failed to load sleep sessions")
	}

	return &DashboardView{
		Steps:             steps,
		StepsGoal:         StepsGoal,
		CompletedDays:     len(days),
		CompletedWorkouts: len(workouts),
		FocusMinutes:      focusMinutes,
		SleepSessions:     sleepSessions,
	}, nil
}
