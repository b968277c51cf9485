package model

// RoutineDay is one entry of the 21-day habit plan.
type RoutineDay struct {
	Day       int      `json:"day"`
	Tasks     []string `json:"tasks"`
	Completed bool     `json:"completed"`
}

// FreeMinutesChoices are the only accepted values for the plan generator's
// time budget.
var FreeMinutesChoices = []int{15, 30, 45}

func IsValidFreeMinutes(minutes int) bool {
	for _, choice := range FreeMinutesChoices {
		if minutes == choice {
			return true
		}
	}
	return false
}
