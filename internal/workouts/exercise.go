package workouts

import "strings"

type Exercise struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group,omitempty"`
	Equipment   string `json:"equipment,omitempty"`
	Description string `json:"description,omitempty"`
}

type NewExercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group,omitempty"`
	Equipment   string `json:"equipment,omitempty"`
	Description string `json:"description,omitempty"`
}

func (ne NewExercise) Validate() error {
	return validateName("exercise", ne.Name, MaxNameLength)
}

type ExerciseFilter struct {
	Search      string
	MuscleGroup string
	Equipment   string
}

func (f ExerciseFilter) IsZero() bool {
	return f == ExerciseFilter{}
}

// Matches reports whether e passes the filter, the same way the backend filters:
// exact muscle group and equipment, case-insensitive name substring search.
func (f ExerciseFilter) Matches(e Exercise) bool {
	if f.MuscleGroup != "" && e.MuscleGroup != f.MuscleGroup {
		return false
	}
	if f.Equipment != "" && e.Equipment != f.Equipment {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}
