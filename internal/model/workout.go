package model

const (
	CategoryHomeWorkouts = "Home Workouts"
	CategoryYoga         = "Yoga"
	CategoryStretching   = "Stretching"

	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Workout is a static catalog entry for an embedded workout video.
type Workout struct {
	ID              int    `json:"id"`
	Category        string `json:"category"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration"`
	Level           string `json:"level"`
	YouTubeID       string `json:"youtubeId"`
}

// SleepSound is a static catalog entry for an ambient audio track.
type SleepSound struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	File        string `json:"file"`
}
