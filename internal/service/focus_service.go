package service

import (
	"context"
	"log/slog"
	"sync"

	"wellspace/backend/internal/repository"
	"wellspace/backend/internal/timer"
)

// FocusService keeps at most one focus/break timer per user and persists the
// +25 minute credit each completed work phase earns.
type FocusService struct {
	progressRepo *repository.ProgressRepository
	timerOpts    []timer.Option

	mu     sync.Mutex
	timers map[string]*timer.Timer
}

func NewFocusService(progressRepo *repository.ProgressRepository, opts ...timer.Option) *FocusService {
	return &FocusService{
		progressRepo: progressRepo,
		timerOpts:    opts,
		timers:       make(map[string]*timer.Timer),
	}
}

func (s *FocusService) State(email string) timer.Snapshot {
	return s.timerFor(email).Snapshot()
}

func (s *FocusService) Start(email string) timer.Snapshot {
	return s.timerFor(email).Start()
}

func (s *FocusService) Pause(email string) timer.Snapshot {
	return s.timerFor(email).Pause()
}

func (s *FocusService) Reset(email string) timer.Snapshot {
	return s.timerFor(email).Reset()
}

// Tick advances a user's timer by one second. The internal ticker drives this
// in production; tests drive it directly through manual timers.
func (s *FocusService) Tick(email string) timer.Snapshot {
	return s.timerFor(email).Tick()
}

// Shutdown closes every timer so no credit write lands after teardown.
func (s *FocusService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, t := range s.timers {
		t.Close()
		delete(s.timers, email)
	}
}

func (s *FocusService) timerFor(email string) *timer.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[email]; ok {
		return t
	}

	t := timer.New(func() {
		// The credit runs on the ticker goroutine, after the request that
		// started the phase is long gone.
		total, err := s.progressRepo.AddFocusMinutes(context.Background(), email, timer.WorkDurationSeconds/60)
		if err != nil {
			slog.Error("failed to credit focus minutes", "email", email, "error", err)
			return
		}
		slog.Info("work phase completed", "email", email, "focusMinutes", total)
	}, s.timerOpts...)
	s.timers[email] = t
	return t
}
