package workouts

import (
	"fmt"
	"strings"
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

var DaysOfWeek = []DayOfWeek{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

// ParseDayOfWeek accepts any casing; an empty string means "unset".
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, d := range DaysOfWeek {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day of week: %q", s)
}

func (d DayOfWeek) Valid() bool {
	if d == "" {
		return true
	}
	_, err := ParseDayOfWeek(string(d))
	return err == nil
}

// Normalize returns the canonical spelling of d ("monday" becomes Monday).
// Invalid values are returned unchanged.
func (d DayOfWeek) Normalize() DayOfWeek {
	parsed, err := ParseDayOfWeek(string(d))
	if err != nil {
		return d
	}
	return parsed
}

type Routine struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	DayOfWeek   DayOfWeek     `json:"day_of_week,omitempty"`
	Description string        `json:"description,omitempty"`
	Items       []RoutineItem `json:"items"`
	CreatedAt   *time.Time    `json:"created_at,omitempty"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`

	// ItemsLoaded is set when Items is known to hold the routine's full item collection.
	ItemsLoaded bool `json:"-"`
}

// Clone returns a deep copy, so cached routines can be handed out safely.
func (r Routine) Clone() Routine {
	c := r
	if r.Items != nil {
		c.Items = make([]RoutineItem, len(r.Items))
		for i, item := range r.Items {
			c.Items[i] = item.Clone()
		}
	}
	if r.CreatedAt != nil {
		t := *r.CreatedAt
		c.CreatedAt = &t
	}
	if r.UpdatedAt != nil {
		t := *r.UpdatedAt
		c.UpdatedAt = &t
	}
	return c
}

// ItemIndex returns the position of the item with the given id, or -1.
func (r Routine) ItemIndex(itemID int) int {
	for i := range r.Items {
		if r.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// NewRoutine holds the fields of the "create routine" form.
type NewRoutine struct {
	Name        string    `json:"name"`
	DayOfWeek   DayOfWeek `json:"day_of_week,omitempty"`
	Description string    `json:"description,omitempty"`
}

func (nr NewRoutine) Validate() error {
	if err := validateName("routine", nr.Name, MaxNameLength); err != nil {
		return err
	}
	if !nr.DayOfWeek.Valid() {
		return newFieldError("day_of_week", fmt.Sprintf("invalid day of week: %q", nr.DayOfWeek))
	}
	return nil
}

// Normalized returns nr with the day of week in its canonical spelling.
func (nr NewRoutine) Normalized() NewRoutine {
	nr.DayOfWeek = nr.DayOfWeek.Normalize()
	return nr
}

// RoutineUpdate is a partial update; nil fields are left as they are.
type RoutineUpdate struct {
	Name        *string    `json:"name,omitempty"`
	DayOfWeek   *DayOfWeek `json:"day_of_week,omitempty"`
	Description *string    `json:"description,omitempty"`
}

func (ru RoutineUpdate) Validate() error {
	if ru.Name != nil {
		if err := validateName("routine", *ru.Name, MaxNameLength); err != nil {
			return err
		}
	}
	if ru.DayOfWeek != nil && !ru.DayOfWeek.Valid() {
		return newFieldError("day_of_week", fmt.Sprintf("invalid day of week: %q", *ru.DayOfWeek))
	}
	return nil
}

// Normalized returns ru with the day of week in its canonical spelling.
func (ru RoutineUpdate) Normalized() RoutineUpdate {
	if ru.DayOfWeek != nil {
		day := ru.DayOfWeek.Normalize()
		ru.DayOfWeek = &day
	}
	return ru
}

// Apply merges the update into r field by field.
func (ru RoutineUpdate) Apply(r Routine) Routine {
	if ru.Name != nil {
		r.Name = *ru.Name
	}
	if ru.DayOfWeek != nil {
		r.DayOfWeek = ru.DayOfWeek.Normalize()
	}
	if ru.Description != nil {
		r.Description = *ru.Description
	}
	return r
}
