// Package catalog holds the static workout and sleep-sound data served to
// clients. The entries mirror the seed content of the original product.
package catalog

import "wellspace/backend/internal/model"

var workouts = []model.Workout{
	{ID: 1, Category: model.CategoryHomeWorkouts, Title: "5-Min Full Body Warmup", DurationMinutes: 5, Level: model.LevelBeginner, YouTubeID: "sWBVb_0G5K0"},
	{ID: 2, Category: model.CategoryYoga, Title: "Morning Yoga Flow", DurationMinutes: 15, Level: model.LevelBeginner, YouTubeID: "4C-gxOE0j7s"},
	{ID: 3, Category: model.CategoryStretching, Title: "Desk Posture Fix Exercises", DurationMinutes: 10, Level: model.LevelBeginner, YouTubeID: "BdfTuxdfvVc"},
	{ID: 4, Category: model.CategoryHomeWorkouts, Title: "15-Min Cardio Blast", DurationMinutes: 15, Level: model.LevelIntermediate, YouTubeID: "ml6cT4AZdqI"},
	{ID: 5, Category: model.CategoryYoga, Title: "Power Yoga for Strength", DurationMinutes: 30, Level: model.LevelIntermediate, YouTubeID: "kFdN8_M23pE"},
	{ID: 6, Category: model.CategoryStretching, Title: "Full Body Cool Down", DurationMinutes: 10, Level: model.LevelBeginner, YouTubeID: "sRtcS_a_B30"},
}

var sleepSounds = []model.SleepSound{
	{ID: 1, Title: "Deep Sleep", Description: "Delta Waves Binaural Beats", File: "https://archive.org/download/BinauralBeatsForStudying/Binaural%20Beats%20-%20Delta%20Waves%20%28For%20Deep%20Sleep%29.mp3"},
	{ID: 2, Title: "Calming Mind", Description: "Theta Waves Binaural Beats", File: "https://archive.org/download/BinauralBeatsForStudying/Binaural%20Beats%20-%20Theta%20Waves%20%28For%20Relaxation%20And%20Meditation%29.mp3"},
	{ID: 3, Title: "Relaxing Night Rain", Description: "Natural rain sounds", File: "https://archive.org/download/RainyMood/RainyMood.mp3"},
}

// Workouts returns the catalog, optionally filtered by category. An empty or
// "All" category returns everything.
func Workouts(category string) []model.Workout {
	if category == "" || category == "All" {
		out := make([]model.Workout, len(workouts))
		copy(out, workouts)
		return out
	}
	var out []model.Workout
	for _, w := range workouts {
		if w.Category == category {
			out = append(out, w)
		}
	}
	return out
}

func WorkoutByID(id int) (model.Workout, bool) {
	for _, w := range workouts {
		if w.ID == id {
			return w, true
		}
	}
	return model.Workout{}, false
}

func SleepSounds() []model.SleepSound {
	out := make([]model.SleepSound, len(sleepSounds))
	copy(out, sleepSounds)
	return out
}

func SleepSoundByID(id int) (model.SleepSound, bool) {
	for _, s := range sleepSounds {
		if s.ID == id {
			return s, true
		}
	}
	return model.SleepSound{}, false
}
