package devbackend

import "github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"

// SeedExercises is the exercise catalog the backend starts with.
func SeedExercises() []workouts.NewExercise {
	return []workouts.NewExercise{
		{Name: "Push-Up", MuscleGroup: "Chest", Equipment: "None", Description: "A bodyweight exercise for chest and triceps"},
		{Name: "Squat", MuscleGroup: "Legs", Equipment: "None", Description: "A bodyweight exercise for legs"},
		{Name: "Dumbbell Curl", MuscleGroup: "Arms", Equipment: "Dumbbells", Description: "An exercise for biceps using dumbbells"},
		{Name: "Bench Press", MuscleGroup: "Chest", Equipment: "Barbell", Description: "A compound exercise for chest"},
		{Name: "Deadlift", MuscleGroup: "Back", Equipment: "Barbell", Description: "A compound exercise that works multiple muscle groups"},
		{Name: "Lat Pulldown", MuscleGroup: "Back", Equipment: "Cable Machine", Description: "An exercise for back and biceps"},
		{Name: "Leg Press", MuscleGroup: "Legs", Equipment: "Machine", Description: "A machine exercise for quadriceps and glutes"},
		{Name: "Overhead Press", MuscleGroup: "Shoulders", Equipment: "Barbell", Description: "A compound exercise for shoulders"},
		{Name: "Plank", MuscleGroup: "Core", Equipment: "None", Description: "An isometric core exercise that improves stability"},
		{Name: "Tricep Dip", MuscleGroup: "Arms", Equipment: "Parallel Bars", Description: "An exercise that targets the triceps"},
	}
}
