package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
)

func exerciseFilterQuery(filter workouts.ExerciseFilter) url.Values {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.MuscleGroup != "" {
		query.Set("muscle_group", filter.MuscleGroup)
	}
	if filter.Equipment != "" {
		query.Set("equipment", filter.Equipment)
	}
	return query
}

func (c *Client) ListExercises(ctx context.Context, filter workouts.ExerciseFilter) ([]workouts.Exercise, error) {
	var resp []exerciseResponse
	err := c.do(ctx, "list_exercises", http.MethodGet, "/exercises", exerciseFilterQuery(filter), nil, &resp)
	if err != nil {
		return nil, err
	}
	return toExercises(resp), nil
}

// GetExercise fails with *NotFoundError for an unknown id.
func (c *Client) GetExercise(ctx context.Context, id int) (workouts.Exercise, error) {
	var resp exerciseResponse
	path := fmt.Sprintf("/exercises/%d", id)
	if err := c.do(ctx, "get_exercise", http.MethodGet, path, nil, nil, &resp); err != nil {
		return workouts.Exercise{}, err
	}
	return resp.toExercise(), nil
}

func (c *Client) CreateExercise(ctx context.Context, ne workouts.NewExercise) (workouts.Exercise, error) {
	var resp exerciseResponse
	if err := c.do(ctx, "create_exercise", http.MethodPost, "/exercises", nil, ne, &resp); err != nil {
		return workouts.Exercise{}, err
	}
	return resp.toExercise(), nil
}

func (c *Client) ListVariationTypes(ctx context.Context) ([]workouts.VariationType, error) {
	var resp []variationTypeResponse
	if err := c.do(ctx, "list_variation_types", http.MethodGet, "/variation-types", nil, nil, &resp); err != nil {
		return nil, err
	}
	return toVariationTypes(resp), nil
}

func (c *Client) CreateVariationType(
	ctx context.Context,
	nv workouts.NewVariationType,
) (workouts.VariationType, error) {
	var resp variationTypeResponse
	if err := c.do(ctx, "create_variation_type", http.MethodPost, "/variation-types", nil, nv, &resp); err != nil {
		return workouts.VariationType{}, err
	}
	return resp.toVariationType(), nil
}

func (c *Client) DeleteVariationType(ctx context.Context, id int) error {
	path := fmt.Sprintf("/variation-types/%d", id)
	return c.do(ctx, "delete_variation_type", http.MethodDelete, path, nil, nil, nil)
}
