// Package kv provides the flat string-keyed store every per-user feature
// persists through. Values are opaque text; callers JSON-encode structured
// values themselves. A missing key is reported through the found flag, not an
// error.
package kv

import "context"

type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Global keys shared by all users.
const (
	UsersKey       = "wellspace_users"
	CurrentUserKey = "wellspace_currentUser"
)

// Per-user keys follow the {email}_{feature} convention.
func StepsKey(email string) string             { return email + "_steps" }
func RoutinePlanKey(email string) string       { return email + "_routinePlan" }
func CompletedDaysKey(email string) string     { return email + "_completedDays" }
func CompletedWorkoutsKey(email string) string { return email + "_completedWorkouts" }
func FocusMinutesKey(email string) string      { return email + "_focusMinutes" }
func SleepSessionsKey(email string) string     { return email + "_sleepSessions" }
