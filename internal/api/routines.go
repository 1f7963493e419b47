package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
)

func routinePath(id int) string {
	return fmt.Sprintf("/routines/%d", id)
}

func itemsPath(routineID int) string {
	return fmt.Sprintf("/routines/%d/items", routineID)
}

func itemPath(routineID, itemID int) string {
	return fmt.Sprintf("/routines/%d/items/%d", routineID, itemID)
}

func (c *Client) ListRoutines(ctx context.Context) ([]workouts.Routine, error) {
	var resp []routineResponse
	if err := c.do(ctx, "list_routines", http.MethodGet, "/routines", nil, nil, &resp); err != nil {
		return nil, err
	}
	return toRoutines(resp), nil
}

// GetRoutine fails with *NotFoundError when the id is unknown.
func (c *Client) GetRoutine(ctx context.Context, id int) (workouts.Routine, error) {
	var resp routineResponse
	if err := c.do(ctx, "get_routine", http.MethodGet, routinePath(id), nil, nil, &resp); err != nil {
		return workouts.Routine{}, err
	}
	return resp.toRoutine(), nil
}

func (c *Client) CreateRoutine(ctx context.Context, nr workouts.NewRoutine) (workouts.Routine, error) {
	var resp routineResponse
	if err := c.do(ctx, "create_routine", http.MethodPost, "/routines", nil, nr, &resp); err != nil {
		return workouts.Routine{}, err
	}
	return resp.toRoutine(), nil
}

func (c *Client) UpdateRoutine(ctx context.Context, id int, update workouts.RoutineUpdate) (workouts.Routine, error) {
	var resp routineResponse
	if err := c.do(ctx, "update_routine", http.MethodPut, routinePath(id), nil, update, &resp); err != nil {
		return workouts.Routine{}, err
	}
	return resp.toRoutine(), nil
}

func (c *Client) DeleteRoutine(ctx context.Context, id int) error {
	return c.do(ctx, "delete_routine", http.MethodDelete, routinePath(id), nil, nil, nil)
}

func (c *Client) AddItemToRoutine(
	ctx context.Context,
	routineID int,
	ni workouts.NewRoutineItem,
) (workouts.RoutineItem, error) {
	var resp itemResponse
	if err := c.do(ctx, "add_item", http.MethodPost, itemsPath(routineID), nil, ni, &resp); err != nil {
		return workouts.RoutineItem{}, err
	}
	return resp.toItem(routineID), nil
}

func (c *Client) UpdateItem(
	ctx context.Context,
	routineID, itemID int,
	update workouts.RoutineItemUpdate,
) (workouts.RoutineItem, error) {
	var resp itemResponse
	if err := c.do(ctx, "update_item", http.MethodPut, itemPath(routineID, itemID), nil, update, &resp); err != nil {
		return workouts.RoutineItem{}, err
	}
	return resp.toItem(routineID), nil
}

func (c *Client) DeleteItem(ctx context.Context, routineID, itemID int) error {
	return c.do(ctx, "delete_item", http.MethodDelete, itemPath(routineID, itemID), nil, nil, nil)
}
