package workouts_test

import (
	"errors"
	"testing"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
	"github.com/DrakeDamon/Workout-tracker-phase-4/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayOfWeek(t *testing.T) {
	d, err := workouts.ParseDayOfWeek("monday")
	require.NoError(t, err)
	assert.Equal(t, workouts.Monday, d)

	d, err = workouts.ParseDayOfWeek(" SUNDAY ")
	require.NoError(t, err)
	assert.Equal(t, workouts.Sunday, d)

	d, err = workouts.ParseDayOfWeek("")
	require.NoError(t, err)
	assert.Equal(t, workouts.DayOfWeek(""), d)

	_, err = workouts.ParseDayOfWeek("Funday")
	assert.Error(t, err)

	assert.True(t, workouts.DayOfWeek("").Valid())
	assert.True(t, workouts.Friday.Valid())
	assert.False(t, workouts.DayOfWeek("Caturday").Valid())
}

func TestNewRoutine_Validate(t *testing.T) {
	assert.NoError(t, workouts.NewRoutine{Name: "Leg Day", DayOfWeek: workouts.Monday}.Validate())

	err := workouts.NewRoutine{Name: "   "}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, workouts.ErrInvalidField))

	var fieldErr *workouts.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "name", fieldErr.Field)

	err = workouts.NewRoutine{Name: "Push", DayOfWeek: "Someday"}.Validate()
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "day_of_week", fieldErr.Field)

	long := make([]byte, workouts.MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, workouts.NewRoutine{Name: string(long)}.Validate())
}

func TestRoutineUpdate_Apply(t *testing.T) {
	r := workouts.Routine{
		ID:          5,
		Name:        "Pull",
		DayOfWeek:   workouts.Tuesday,
		Description: "back and biceps",
		Items:       []workouts.RoutineItem{{ID: 1, ExerciseID: 6, Sets: 3, Reps: 10}},
		ItemsLoaded: true,
	}

	updated := workouts.RoutineUpdate{Name: pkg.Ptr("Pull Heavy")}.Apply(r)
	assert.Equal(t, "Pull Heavy", updated.Name)
	assert.Equal(t, workouts.Tuesday, updated.DayOfWeek)
	assert.Equal(t, "back and biceps", updated.Description)
	assert.Len(t, updated.Items, 1)
	assert.True(t, updated.ItemsLoaded)

	assert.Error(t, workouts.RoutineUpdate{Name: pkg.Ptr("")}.Validate())
	assert.NoError(t, workouts.RoutineUpdate{Description: pkg.Ptr("")}.Validate())

	updated = workouts.RoutineUpdate{DayOfWeek: pkg.Ptr(workouts.DayOfWeek("friDAY"))}.Apply(r)
	assert.Equal(t, workouts.Friday, updated.DayOfWeek)
}

func TestDayOfWeek_Normalize(t *testing.T) {
	assert.Equal(t, workouts.Monday, workouts.DayOfWeek("monday").Normalize())
	assert.Equal(t, workouts.Sunday, workouts.DayOfWeek(" SUNDAY ").Normalize())
	assert.Equal(t, workouts.DayOfWeek(""), workouts.DayOfWeek("").Normalize())
	assert.Equal(t, workouts.DayOfWeek("someday"), workouts.DayOfWeek("someday").Normalize())

	nr := workouts.NewRoutine{Name: "Legs", DayOfWeek: "wednesday"}.Normalized()
	assert.Equal(t, workouts.Wednesday, nr.DayOfWeek)

	ru := workouts.RoutineUpdate{DayOfWeek: pkg.Ptr(workouts.DayOfWeek("tuesday"))}.Normalized()
	require.NotNil(t, ru.DayOfWeek)
	assert.Equal(t, workouts.Tuesday, *ru.DayOfWeek)
	assert.Nil(t, workouts.RoutineUpdate{}.Normalized().DayOfWeek)
}

func TestRoutine_Clone(t *testing.T) {
	r := workouts.Routine{
		ID: 1,
		Items: []workouts.RoutineItem{
			{ID: 10, ExerciseID: 2, Exercise: &workouts.Exercise{ID: 2, Name: "Squat"}, Weight: pkg.Ptr(60.0)},
		},
	}

	c := r.Clone()
	c.Items[0].Exercise.Name = "changed"
	*c.Items[0].Weight = 100
	c.Items = append(c.Items, workouts.RoutineItem{ID: 11})

	assert.Equal(t, "Squat", r.Items[0].Exercise.Name)
	assert.Equal(t, 60.0, *r.Items[0].Weight)
	assert.Len(t, r.Items, 1)
	assert.Equal(t, 0, r.ItemIndex(10))
	assert.Equal(t, -1, r.ItemIndex(11))
}

func TestNewRoutineItem_Validate(t *testing.T) {
	assert.NoError(t, workouts.NewRoutineItem{ExerciseID: 7, Sets: 3, Reps: 10}.Validate())
	// sets and reps may be omitted, the backend has defaults
	assert.NoError(t, workouts.NewRoutineItem{ExerciseID: 7}.Validate())
	assert.Error(t, workouts.NewRoutineItem{Sets: 3, Reps: 10}.Validate())
	assert.Error(t, workouts.NewRoutineItem{ExerciseID: 7, Sets: -1}.Validate())
	assert.Error(t, workouts.NewRoutineItem{ExerciseID: 7, Weight: pkg.Ptr(-2.5)}.Validate())

	assert.NoError(t, workouts.RoutineItemUpdate{Sets: pkg.Ptr(4)}.Validate())
	assert.Error(t, workouts.RoutineItemUpdate{Reps: pkg.Ptr(0)}.Validate())
}

func TestExerciseFilter_Matches(t *testing.T) {
	benchPress := workouts.Exercise{ID: 4, Name: "Bench Press", MuscleGroup: "Chest", Equipment: "Barbell"}

	assert.True(t, workouts.ExerciseFilter{}.Matches(benchPress))
	assert.True(t, workouts.ExerciseFilter{}.IsZero())
	assert.True(t, workouts.ExerciseFilter{Search: "bench"}.Matches(benchPress))
	assert.True(t, workouts.ExerciseFilter{MuscleGroup: "Chest", Equipment: "Barbell"}.Matches(benchPress))
	assert.False(t, workouts.ExerciseFilter{MuscleGroup: "Back"}.Matches(benchPress))
	assert.False(t, workouts.ExerciseFilter{Search: "squat"}.Matches(benchPress))
}

func TestNewVariationType_Validate(t *testing.T) {
	assert.NoError(t, workouts.NewVariationType{Name: "Isometric"}.Validate())
	assert.Error(t, workouts.NewVariationType{Name: ""}.Validate())

	desc := make([]byte, workouts.MaxVariationTypeDescriptionLength+1)
	assert.Error(t, workouts.NewVariationType{Name: "Isometric", Description: string(desc)}.Validate())

	defaults := workouts.DefaultVariationTypes()
	require.Len(t, defaults, 8)
	for _, vt := range defaults {
		assert.True(t, vt.IsDefault)
		assert.Less(t, vt.ID, 0)
	}
	assert.True(t, workouts.SameVariationName("standard ", "Standard"))
	assert.False(t, workouts.SameVariationName("Power", "Tempo Variation"))
}
