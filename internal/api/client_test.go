package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/api"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/devbackend"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/metrics"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
	"github.com/DrakeDamon/Workout-tracker-phase-4/pkg"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

// flakyTransport fails the first failures round trips without reaching the server.
type flakyTransport struct {
	failures int32
	calls    atomic.Int32
	next     http.RoundTripper
}

func (t *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.calls.Add(1) <= t.failures {
		return nil, errors.New("connection refused")
	}
	return t.next.RoundTrip(req)
}

func newDevBackendClient(t *testing.T) (*api.Client, *metrics.Manager) {
	t.Helper()

	user, err := devbackend.NewUser(1, "serj", "serj@example.com", "pass123")
	require.NoError(t, err)
	server := httptest.NewServer(devbackend.NewServer(devbackend.Params{
		Users: []devbackend.User{user},
	}).Router())

	transport := &http.Transport{}
	t.Cleanup(func() {
		transport.CloseIdleConnections()
		server.Close()
	})

	metricsManager := metrics.NewTestManager()
	client, err := api.NewClient(api.Params{
		BaseURL:        server.URL + "/api",
		RetryDelay:     time.Millisecond,
		Transport:      transport,
		MetricsManager: metricsManager,
	})
	require.NoError(t, err)
	return client, metricsManager
}

func newStubClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	transport := &http.Transport{}
	t.Cleanup(func() {
		transport.CloseIdleConnections()
		server.Close()
	})

	client, err := api.NewClient(api.Params{
		BaseURL:    server.URL + "/api/",
		RetryDelay: time.Millisecond,
		Transport:  transport,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	client, err := api.NewClient(api.Params{})
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL, client.BaseURL())

	_, err = api.NewClient(api.Params{BaseURL: "/relative/api"})
	assert.Error(t, err)
}

func TestClient_AuthFlow(t *testing.T) {
	client, _ := newDevBackendClient(t)
	ctx := context.Background()

	status, err := client.CheckAuth(ctx)
	require.NoError(t, err)
	assert.False(t, status.Authenticated)
	assert.Nil(t, status.User)

	_, err = client.ListRoutines(ctx)
	require.Error(t, err)
	assert.True(t, api.IsAuthError(err))

	_, err = client.Login(ctx, "serj", "wrong")
	require.Error(t, err)
	assert.True(t, api.IsAuthError(err))
	assert.Equal(t, "Invalid credentials", api.Message(err))

	result, err := client.Login(ctx, "serj", "pass123")
	require.NoError(t, err)
	assert.Equal(t, workouts.User{ID: 1, Username: "serj", Email: "serj@example.com"}, result.User)

	status, err = client.CheckAuth(ctx)
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	require.NotNil(t, status.User)
	assert.Equal(t, "serj", status.User.Username)

	require.NoError(t, client.Logout(ctx))
	status, err = client.CheckAuth(ctx)
	require.NoError(t, err)
	assert.False(t, status.Authenticated)
}

func TestClient_RoutinesAndItems(t *testing.T) {
	client, metricsManager := newDevBackendClient(t)
	ctx := context.Background()

	_, err := client.Login(ctx, "serj", "pass123")
	require.NoError(t, err)

	_, err = client.CreateRoutine(ctx, workouts.NewRoutine{Name: ""})
	require.Error(t, err)
	var validationErr *api.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, http.StatusUnprocessableEntity, validationErr.StatusCode)
	assert.Contains(t, validationErr.Fields, "name")
	var httpErr *api.HttpError
	assert.ErrorAs(t, err, &httpErr)

	routine, err := client.CreateRoutine(ctx, workouts.NewRoutine{Name: "Leg Day", DayOfWeek: workouts.Monday})
	require.NoError(t, err)
	assert.Equal(t, "Leg Day", routine.Name)
	assert.Equal(t, workouts.Monday, routine.DayOfWeek)
	assert.Empty(t, routine.Items)
	assert.True(t, routine.ItemsLoaded)
	assert.NotNil(t, routine.CreatedAt)

	item, err := client.AddItemToRoutine(ctx, routine.ID, workouts.NewRoutineItem{ExerciseID: 7, Sets: 3, Reps: 10})
	require.NoError(t, err)
	assert.Equal(t, routine.ID, item.RoutineID)
	assert.Equal(t, 7, item.ExerciseID)
	assert.Equal(t, 3, item.Sets)
	assert.Equal(t, 10, item.Reps)
	require.NotNil(t, item.Exercise)
	assert.Equal(t, "Leg Press", item.Exercise.Name)

	weight := 100.5
	item, err = client.UpdateItem(ctx, routine.ID, item.ID, workouts.RoutineItemUpdate{Weight: &weight})
	require.NoError(t, err)
	require.NotNil(t, item.Weight)
	assert.Equal(t, 100.5, *item.Weight)
	assert.Equal(t, 10, item.Reps)

	// the list view of the backend does not carry items
	routines, err := client.ListRoutines(ctx)
	require.NoError(t, err)
	require.Len(t, routines, 1)
	assert.False(t, routines[0].ItemsLoaded)

	fetched, err := client.GetRoutine(ctx, routine.ID)
	require.NoError(t, err)
	assert.True(t, fetched.ItemsLoaded)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, item.ID, fetched.Items[0].ID)

	updated, err := client.UpdateRoutine(ctx, routine.ID, workouts.RoutineUpdate{Name: pkg.Ptr("Legs")})
	require.NoError(t, err)
	assert.Equal(t, "Legs", updated.Name)
	assert.Equal(t, workouts.Monday, updated.DayOfWeek)
	assert.False(t, updated.ItemsLoaded)

	require.NoError(t, client.DeleteItem(ctx, routine.ID, item.ID))
	err = client.DeleteItem(ctx, routine.ID, item.ID)
	assert.True(t, api.IsNotFound(err))

	require.NoError(t, client.DeleteRoutine(ctx, routine.ID))
	err = client.DeleteRoutine(ctx, routine.ID)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.Equal(t, "Routine not found", api.Message(err))

	_, err = client.GetRoutine(ctx, routine.ID)
	assert.True(t, api.IsNotFound(err))

	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterApiCalls.WithLabelValues("create_routine", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterApiCalls.WithLabelValues("create_routine", "validation_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterApiCalls.WithLabelValues("delete_routine", "not_found")))
}

func TestClient_ExercisesAndVariationTypes(t *testing.T) {
	client, _ := newDevBackendClient(t)
	ctx := context.Background()

	_, err := client.Login(ctx, "serj", "pass123")
	require.NoError(t, err)

	exercises, err := client.ListExercises(ctx, workouts.ExerciseFilter{})
	require.NoError(t, err)
	assert.Len(t, exercises, len(devbackend.SeedExercises()))

	exercises, err = client.ListExercises(ctx, workouts.ExerciseFilter{MuscleGroup: "Back"})
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "Deadlift", exercises[0].Name)
	assert.Equal(t, "Lat Pulldown", exercises[1].Name)

	exercises, err = client.ListExercises(ctx, workouts.ExerciseFilter{Search: "curl"})
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Dumbbells", exercises[0].Equipment)

	exercise, err := client.CreateExercise(ctx, workouts.NewExercise{Name: "Hip Thrust", MuscleGroup: "Glutes", Equipment: "Barbell"})
	require.NoError(t, err)
	assert.Equal(t, 11, exercise.ID)
	assert.Equal(t, "Glutes", exercise.MuscleGroup)

	fetched, err := client.GetExercise(ctx, exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, exercise, fetched)

	_, err = client.GetExercise(ctx, 9999)
	assert.True(t, api.IsNotFound(err))
	assert.Equal(t, "Exercise not found", api.Message(err))

	variationTypes, err := client.ListVariationTypes(ctx)
	require.NoError(t, err)
	require.Len(t, variationTypes, 8)
	assert.True(t, variationTypes[0].IsDefault)

	vt, err := client.CreateVariationType(ctx, workouts.NewVariationType{Name: "Pause Reps", Description: "2s pause at the bottom"})
	require.NoError(t, err)
	assert.False(t, vt.IsDefault)

	_, err = client.CreateVariationType(ctx, workouts.NewVariationType{Name: "pause reps"})
	var httpErr *api.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)

	require.NoError(t, client.DeleteVariationType(ctx, vt.ID))

	userData, err := client.GetUserData(ctx)
	require.NoError(t, err)
	assert.Len(t, userData.Exercises, 11)
	assert.Contains(t, userData.MuscleGroups, "Glutes")
	assert.Len(t, userData.VariationTypes, 8)
	assert.Empty(t, userData.Routines)
}

func TestClient_RetryOnNetworkError(t *testing.T) {
	var served atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served.Add(1)
		assert.NotEmpty(t, r.Header.Get(api.RequestIDHeader))
		pkg.WriteJSON(w, []map[string]any{{"id": 1, "name": "Push"}}, http.StatusOK)
	}))
	transport := &http.Transport{}
	defer func() {
		transport.CloseIdleConnections()
		server.Close()
	}()

	flaky := &flakyTransport{failures: 1, next: transport}
	metricsManager := metrics.NewTestManager()
	client, err := api.NewClient(api.Params{
		BaseURL:        server.URL,
		RetryDelay:     time.Millisecond,
		Transport:      flaky,
		MetricsManager: metricsManager,
	})
	require.NoError(t, err)

	routines, err := client.ListRoutines(context.Background())
	require.NoError(t, err)
	require.Len(t, routines, 1)
	assert.Equal(t, "Push", routines[0].Name)
	assert.Equal(t, int32(2), flaky.calls.Load())
	assert.Equal(t, int32(1), served.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterApiRetries))

	// two failures in a row: retried once, then given up
	flaky.calls.Store(0)
	flaky.failures = 2
	_, err = client.ListRoutines(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsNetworkError(err))
	assert.Equal(t, int32(2), flaky.calls.Load())
	assert.Equal(t, int32(1), served.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterApiCalls.WithLabelValues("list_routines", "network_error")))
}

func TestClient_NoRetryOnHttpError(t *testing.T) {
	var served atomic.Int32
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		served.Add(1)
		pkg.WriteJSON(w, map[string]string{"message": "database is down"}, http.StatusInternalServerError)
	})

	_, err := client.ListRoutines(context.Background())
	require.Error(t, err)
	var httpErr *api.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "database is down", httpErr.Message)
	assert.False(t, api.IsNetworkError(err))
	assert.Equal(t, int32(1), served.Load())
}

func TestClient_RetryWaitHonorsContext(t *testing.T) {
	flaky := &flakyTransport{failures: 10, next: http.DefaultTransport}
	client, err := api.NewClient(api.Params{
		BaseURL:    "http://localhost:1/api",
		RetryDelay: time.Hour,
		Transport:  flaky,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = client.ListExercises(ctx, workouts.ExerciseFilter{})
	require.Error(t, err)
	assert.True(t, api.IsNetworkError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Minute)
	assert.Equal(t, int32(1), flaky.calls.Load())
}

func TestClient_NormalizesItemShapes(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/routines":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"id": 1, "name": "A", "day_of_week": "tuesday", "variations": [
					{"id": 10, "exercise_id": 3, "name": "Incline", "variation_type": "Angle Variation", "sets": 3, "reps": 8}
				], "created_at": "2024-03-01T10:00:00.123456"},
				{"id": 2, "name": "B", "day_of_week": null, "description": null, "routine_exercises": [
					{"id": 20, "exercise": {"id": 4, "name": "Bench Press", "muscle_group": "Chest", "equipment": null}, "sets": 5, "reps": 5, "weight": 80}
				]},
				{"id": 3, "name": "C", "exercises": []},
				{"id": 4, "name": "D", "items": [{"id": 40, "routine_id": 4, "exercise_id": 1, "sets": 1, "reps": 1}]},
				{"id": 5, "name": "E", "created_at": "2024-03-01T10:00:00Z"}
			]`))
		default:
			http.NotFound(w, r)
		}
	})

	routines, err := client.ListRoutines(context.Background())
	require.NoError(t, err)
	require.Len(t, routines, 5)

	a := routines[0]
	assert.Equal(t, workouts.Tuesday, a.DayOfWeek)
	assert.True(t, a.ItemsLoaded)
	require.Len(t, a.Items, 1)
	assert.Equal(t, 1, a.Items[0].RoutineID)
	assert.Equal(t, 3, a.Items[0].ExerciseID)
	assert.Equal(t, "Incline", a.Items[0].Name)
	assert.Equal(t, "Angle Variation", a.Items[0].VariationType)
	require.NotNil(t, a.CreatedAt)
	assert.Equal(t, 2024, a.CreatedAt.Year())

	b := routines[1]
	assert.Equal(t, workouts.DayOfWeek(""), b.DayOfWeek)
	assert.Equal(t, "", b.Description)
	require.Len(t, b.Items, 1)
	assert.Equal(t, 4, b.Items[0].ExerciseID)
	require.NotNil(t, b.Items[0].Exercise)
	assert.Equal(t, "Chest", b.Items[0].Exercise.MuscleGroup)
	assert.Equal(t, "", b.Items[0].Exercise.Equipment)
	require.NotNil(t, b.Items[0].Weight)
	assert.Equal(t, 80.0, *b.Items[0].Weight)

	c := routines[2]
	assert.True(t, c.ItemsLoaded)
	assert.Empty(t, c.Items)

	d := routines[3]
	assert.True(t, d.ItemsLoaded)
	require.Len(t, d.Items, 1)

	e := routines[4]
	assert.False(t, e.ItemsLoaded)
	assert.NotNil(t, e.Items)
	assert.Empty(t, e.Items)
	require.NotNil(t, e.CreatedAt)
}

func TestClient_CheckAuthForbiddenIsAnError(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSON(w, map[string]string{"error": "account locked"}, http.StatusForbidden)
	})

	_, err := client.CheckAuth(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsAuthError(err))
	assert.Equal(t, "account locked", api.Message(err))
}
