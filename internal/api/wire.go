package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
)

// The backend went through several payload shapes: a routine's items may arrive as
// "items", "variations", "routine_exercises" or "exercises". All of them are collapsed
// into workouts.Routine.Items here, so nothing past this package needs to know.

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// timestamp accepts RFC 3339 as well as the zone-less ISO format some backends emit.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format: %q", s)
}

func (t *timestamp) ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

type exerciseResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	MuscleGroup *string `json:"muscle_group"`
	Equipment   *string `json:"equipment"`
	Description *string `json:"description"`
}

func (e exerciseResponse) toExercise() workouts.Exercise {
	return workouts.Exercise{
		ID:          e.ID,
		Name:        e.Name,
		MuscleGroup: deref(e.MuscleGroup),
		Equipment:   deref(e.Equipment),
		Description: deref(e.Description),
	}
}

type itemResponse struct {
	ID            int               `json:"id"`
	RoutineID     int               `json:"routine_id"`
	ExerciseID    int               `json:"exercise_id"`
	Exercise      *exerciseResponse `json:"exercise"`
	Sets          *int              `json:"sets"`
	Reps          *int              `json:"reps"`
	Weight        *float64          `json:"weight"`
	Notes         *string           `json:"notes"`
	Order         *int              `json:"order"`
	Name          *string           `json:"name"`
	VariationType *string           `json:"variation_type"`
	Description   *string           `json:"description"`
}

func (i itemResponse) toItem(routineID int) workouts.RoutineItem {
	item := workouts.RoutineItem{
		ID:            i.ID,
		RoutineID:     i.RoutineID,
		ExerciseID:    i.ExerciseID,
		Weight:        i.Weight,
		Notes:         deref(i.Notes),
		Order:         i.Order,
		Name:          deref(i.Name),
		VariationType: deref(i.VariationType),
		Description:   deref(i.Description),
	}
	if item.RoutineID == 0 {
		item.RoutineID = routineID
	}
	if i.Sets != nil {
		item.Sets = *i.Sets
	}
	if i.Reps != nil {
		item.Reps = *i.Reps
	}
	if i.Exercise != nil {
		exercise := i.Exercise.toExercise()
		item.Exercise = &exercise
		if item.ExerciseID == 0 {
			item.ExerciseID = exercise.ID
		}
	}
	return item
}

type routineResponse struct {
	ID               int            `json:"id"`
	Name             string         `json:"name"`
	DayOfWeek        *string        `json:"day_of_week"`
	Description      *string        `json:"description"`
	Items            []itemResponse `json:"items"`
	Variations       []itemResponse `json:"variations"`
	RoutineExercises []itemResponse `json:"routine_exercises"`
	Exercises        []itemResponse `json:"exercises"`
	CreatedAt        *timestamp     `json:"created_at"`
	UpdatedAt        *timestamp     `json:"updated_at"`
}

// itemCollection returns the first item collection present in the payload.
// A present but empty collection still counts as loaded.
func (r routineResponse) itemCollection() ([]itemResponse, bool) {
	for _, collection := range [][]itemResponse{r.Items, r.Variations, r.RoutineExercises, r.Exercises} {
		if collection != nil {
			return collection, true
		}
	}
	return nil, false
}

func (r routineResponse) toRoutine() workouts.Routine {
	routine := workouts.Routine{
		ID:          r.ID,
		Name:        r.Name,
		Description: deref(r.Description),
		CreatedAt:   r.CreatedAt.ptr(),
		UpdatedAt:   r.UpdatedAt.ptr(),
	}

	if day := strings.TrimSpace(deref(r.DayOfWeek)); day != "" {
		parsed, err := workouts.ParseDayOfWeek(day)
		if err != nil {
			// keep unknown values as they are, the backend owns them
			parsed = workouts.DayOfWeek(day)
		}
		routine.DayOfWeek = parsed
	}

	collection, loaded := r.itemCollection()
	routine.ItemsLoaded = loaded
	routine.Items = make([]workouts.RoutineItem, 0, len(collection))
	for _, ir := range collection {
		routine.Items = append(routine.Items, ir.toItem(r.ID))
	}

	return routine
}

type variationTypeResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsDefault   bool    `json:"is_default"`
}

func (v variationTypeResponse) toVariationType() workouts.VariationType {
	return workouts.VariationType{
		ID:          v.ID,
		Name:        v.Name,
		Description: deref(v.Description),
		IsDefault:   v.IsDefault,
	}
}

type userResponse struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

func (u userResponse) toUser() workouts.User {
	return workouts.User{
		ID:       u.ID,
		Username: u.Username,
		Email:    deref(u.Email),
	}
}

type userDataResponse struct {
	Routines       []routineResponse       `json:"routines"`
	Exercises      []exerciseResponse      `json:"exercises"`
	MuscleGroups   []string                `json:"muscle_groups"`
	Equipment      []string                `json:"equipment"`
	VariationTypes []variationTypeResponse `json:"variation_types"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toRoutines(in []routineResponse) []workouts.Routine {
	out := make([]workouts.Routine, 0, len(in))
	for _, r := range in {
		out = append(out, r.toRoutine())
	}
	return out
}

func toExercises(in []exerciseResponse) []workouts.Exercise {
	out := make([]workouts.Exercise, 0, len(in))
	for _, e := range in {
		out = append(out, e.toExercise())
	}
	return out
}

func toVariationTypes(in []variationTypeResponse) []workouts.VariationType {
	out := make([]workouts.VariationType, 0, len(in))
	for _, v := range in {
		out = append(out, v.toVariationType())
	}
	return out
}
