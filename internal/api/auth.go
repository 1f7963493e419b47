package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type authStatusResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user"`
}

// Login fails with *AuthError on bad credentials. On success the session cookie
// is kept by the client and sent with every following request.
func (c *Client) Login(ctx context.Context, username, password string) (workouts.LoginResult, error) {
	var resp loginResponse
	req := credentials{Username: username, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, "/login", nil, req, &resp); err != nil {
		return workouts.LoginResult{}, err
	}
	return workouts.LoginResult{User: resp.User.toUser()}, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, "/logout", nil, nil, nil)
}

// CheckAuth reports the session state. The backend answers 401 for anonymous
// sessions, which is a valid status here and not an error.
func (c *Client) CheckAuth(ctx context.Context) (workouts.AuthStatus, error) {
	var resp authStatusResponse
	err := c.do(ctx, "check_auth", http.MethodGet, "/check-auth", nil, nil, &resp)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) && authErr.StatusCode == http.StatusUnauthorized {
			return workouts.AuthStatus{Authenticated: false}, nil
		}
		return workouts.AuthStatus{}, err
	}

	status := workouts.AuthStatus{Authenticated: resp.Authenticated}
	if resp.Authenticated && resp.User != nil {
		user := resp.User.toUser()
		status.User = &user
	}
	return status, nil
}

// GetUserData fetches everything the initial load needs in one call.
func (c *Client) GetUserData(ctx context.Context) (workouts.UserData, error) {
	var resp userDataResponse
	if err := c.do(ctx, "get_user_data", http.MethodGet, "/user-data", nil, nil, &resp); err != nil {
		return workouts.UserData{}, err
	}
	return workouts.UserData{
		Routines:       toRoutines(resp.Routines),
		Exercises:      toExercises(resp.Exercises),
		MuscleGroups:   resp.MuscleGroups,
		Equipment:      resp.Equipment,
		VariationTypes: toVariationTypes(resp.VariationTypes),
	}, nil
}
