package workouts

import (
	"fmt"
	"strings"
)

const (
	MaxVariationTypeNameLength        = 50
	MaxVariationTypeDescriptionLength = 200
)

type VariationType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsDefault   bool   `json:"is_default"`
}

type NewVariationType struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (nv NewVariationType) Validate() error {
	if err := validateName("variation type", nv.Name, MaxVariationTypeNameLength); err != nil {
		return err
	}
	if len(nv.Description) > MaxVariationTypeDescriptionLength {
		return newFieldError(
			"description",
			fmt.Sprintf("description must be less than %d characters", MaxVariationTypeDescriptionLength),
		)
	}
	return nil
}

// DefaultVariationTypes are always present and cannot be deleted. They use negative ids so
// they never collide with ids assigned by the server.
func DefaultVariationTypes() []VariationType {
	return []VariationType{
		{ID: -1, Name: "Standard", Description: "The basic way to perform the exercise", IsDefault: true},
		{ID: -2, Name: "Width Variation", Description: "Altering grip or stance width to target different muscles", IsDefault: true},
		{ID: -3, Name: "Angle Variation", Description: "Changing the angle of the movement (incline, decline, etc.)", IsDefault: true},
		{ID: -4, Name: "Grip Variation", Description: "Different grip styles (overhand, underhand, neutral)", IsDefault: true},
		{ID: -5, Name: "Tempo Variation", Description: "Changing the speed or adding pauses to the movement", IsDefault: true},
		{ID: -6, Name: "Power", Description: "Explosive movement variations focusing on power", IsDefault: true},
		{ID: -7, Name: "Endurance", Description: "Higher repetition versions focusing on muscular endurance", IsDefault: true},
		{ID: -8, Name: "Other", Description: "Custom variation types", IsDefault: true},
	}
}

// SameVariationName compares variation type names the way duplicates are detected.
func SameVariationName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
