package store

import (
	"strings"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
)

// Scope names the part of the UI an error message belongs to.
type Scope string

const (
	ScopeAuth           Scope = "auth"
	ScopeInitial        Scope = "initial"
	ScopeForm           Scope = "form"
	ScopeRoutineDetail  Scope = "routine_detail"
	ScopeExerciseSearch Scope = "exercise_search"
)

var Scopes = []Scope{ScopeAuth, ScopeInitial, ScopeForm, ScopeRoutineDetail, ScopeExerciseSearch}

// LoadingState holds the in-flight markers of running operations.
// The id fields name the entity being mutated (0 when idle), so a view can disable
// only the affected control. They are UI hints, not locks.
type LoadingState struct {
	Auth                  bool `json:"auth"`
	InitialLoad           bool `json:"initial_load"`
	Routine               bool `json:"routine"`
	Submission            bool `json:"submission"`
	ExerciseSearch        bool `json:"exercise_search"`
	Deletion              int  `json:"deletion,omitempty"`
	ItemUpdate            int  `json:"item_update,omitempty"`
	VariationTypeDeletion int  `json:"variation_type_deletion,omitempty"`
}

// Snapshot is a deep copy of the store state at one point in time.
type Snapshot struct {
	Authenticated  bool                     `json:"authenticated"`
	User           *workouts.User           `json:"user,omitempty"`
	Loaded         bool                     `json:"loaded"`
	Routines       []workouts.Routine       `json:"routines"`
	Exercises      []workouts.Exercise      `json:"exercises"`
	VariationTypes []workouts.VariationType `json:"variation_types"`
	MuscleGroups   []string                 `json:"muscle_groups"`
	Equipment      []string                 `json:"equipment"`
	CurrentRoutine *workouts.Routine        `json:"current_routine,omitempty"`
	Loading        LoadingState             `json:"loading"`
	Errors         map[Scope]string         `json:"errors"`
}

func (s Snapshot) Routine(id int) (workouts.Routine, bool) {
	for _, r := range s.Routines {
		if r.ID == id {
			return r, true
		}
	}
	return workouts.Routine{}, false
}

func (s Snapshot) Exercise(id int) (workouts.Exercise, bool) {
	for _, e := range s.Exercises {
		if e.ID == id {
			return e, true
		}
	}
	return workouts.Exercise{}, false
}

// VariationFilter narrows the variations overview. Zero fields match everything.
type VariationFilter struct {
	ExerciseID    int
	RoutineID     int
	VariationType string
	Search        string
}

// Variation is a routine item joined with its routine and exercise, as listed by the overview.
type Variation struct {
	Item         workouts.RoutineItem `json:"item"`
	RoutineName  string               `json:"routine_name"`
	DayOfWeek    workouts.DayOfWeek   `json:"day_of_week,omitempty"`
	ExerciseName string               `json:"exercise_name"`
	MuscleGroup  string               `json:"muscle_group,omitempty"`
	Equipment    string               `json:"equipment,omitempty"`
}

func (v Variation) matches(f VariationFilter) bool {
	if f.ExerciseID != 0 && v.Item.ExerciseID != f.ExerciseID {
		return false
	}
	if f.RoutineID != 0 && v.Item.RoutineID != f.RoutineID {
		return false
	}
	if f.VariationType != "" && !workouts.SameVariationName(v.Item.VariationType, f.VariationType) {
		return false
	}
	if f.Search == "" {
		return true
	}
	search := strings.ToLower(f.Search)
	for _, field := range []string{v.Item.Name, v.Item.Notes, v.Item.Description, v.ExerciseName, v.RoutineName} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// Variations lists the items of all cached routines, in routine order then item order.
func (s Snapshot) Variations(filter VariationFilter) []Variation {
	exercises := make(map[int]workouts.Exercise, len(s.Exercises))
	for _, e := range s.Exercises {
		exercises[e.ID] = e
	}

	variations := make([]Variation, 0)
	for _, r := range s.Routines {
		for _, item := range r.Items {
			v := Variation{
				Item:        item,
				RoutineName: r.Name,
				DayOfWeek:   r.DayOfWeek,
			}
			if v.Item.RoutineID == 0 {
				v.Item.RoutineID = r.ID
			}
			exercise, ok := exercises[item.ExerciseID]
			if !ok && item.Exercise != nil {
				exercise, ok = *item.Exercise, true
			}
			if ok {
				v.ExerciseName = exercise.Name
				v.MuscleGroup = exercise.MuscleGroup
				v.Equipment = exercise.Equipment
			}
			if v.matches(filter) {
				variations = append(variations, v)
			}
		}
	}
	return variations
}
