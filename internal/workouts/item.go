package workouts

import "fmt"

// RoutineItem attaches one exercise to one routine, together with its performance parameters.
// A routine may hold several items for the same exercise (e.g. "Incline" and "Standard").
type RoutineItem struct {
	ID            int       `json:"id"`
	RoutineID     int       `json:"routine_id"`
	ExerciseID    int       `json:"exercise_id"`
	Exercise      *Exercise `json:"exercise,omitempty"`
	Sets          int       `json:"sets"`
	Reps          int       `json:"reps"`
	Weight        *float64  `json:"weight,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Order         *int      `json:"order,omitempty"`
	Name          string    `json:"name,omitempty"`
	VariationType string    `json:"variation_type,omitempty"`
	Description   string    `json:"description,omitempty"`
}

func (ri RoutineItem) Clone() RoutineItem {
	c := ri
	if ri.Exercise != nil {
		e := *ri.Exercise
		c.Exercise = &e
	}
	if ri.Weight != nil {
		w := *ri.Weight
		c.Weight = &w
	}
	if ri.Order != nil {
		o := *ri.Order
		c.Order = &o
	}
	return c
}

type NewRoutineItem struct {
	ExerciseID    int      `json:"exercise_id"`
	Sets          int      `json:"sets,omitempty"`
	Reps          int      `json:"reps,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	Order         *int     `json:"order,omitempty"`
	Name          string   `json:"name,omitempty"`
	VariationType string   `json:"variation_type,omitempty"`
	Description   string   `json:"description,omitempty"`
}

func (ni NewRoutineItem) Validate() error {
	if ni.ExerciseID <= 0 {
		return newFieldError("exercise_id", "an exercise must be selected")
	}
	if ni.Sets < 0 {
		return newFieldError("sets", "sets must be at least 1")
	}
	if ni.Reps < 0 {
		return newFieldError("reps", "reps must be at least 1")
	}
	if ni.Weight != nil && *ni.Weight < 0 {
		return newFieldError("weight", "weight cannot be negative")
	}
	if len(ni.Name) > MaxNameLength {
		return newFieldError("name", fmt.Sprintf("name must be less than %d characters", MaxNameLength))
	}
	return nil
}

type RoutineItemUpdate struct {
	Sets          *int     `json:"sets,omitempty"`
	Reps          *int     `json:"reps,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Order         *int     `json:"order,omitempty"`
	Name          *string  `json:"name,omitempty"`
	VariationType *string  `json:"variation_type,omitempty"`
}

func (u RoutineItemUpdate) Validate() error {
	if u.Sets != nil && *u.Sets < 1 {
		return newFieldError("sets", "sets must be at least 1")
	}
	if u.Reps != nil && *u.Reps < 1 {
		return newFieldError("reps", "reps must be at least 1")
	}
	if u.Weight != nil && *u.Weight < 0 {
		return newFieldError("weight", "weight cannot be negative")
	}
	if u.Name != nil && len(*u.Name) > MaxNameLength {
		return newFieldError("name", fmt.Sprintf("name must be less than %d characters", MaxNameLength))
	}
	return nil
}
