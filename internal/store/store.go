package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/api"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/metrics"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	DefaultExerciseSearchCacheTTL = 5 * time.Minute
	exerciseSearchCacheSize       = 1024 * 1024 // 1MB
)

var networkMessages = map[Scope]string{
	ScopeAuth:           "Network error: Unable to reach the server. Please check your connection and try again.",
	ScopeInitial:        "Network error: Unable to load your data. Please check your connection and try again.",
	ScopeForm:           "Network error: Unable to save your changes. Please check your connection and try again.",
	ScopeRoutineDetail:  "Network error: Unable to load routine. Please check your connection and try again.",
	ScopeExerciseSearch: "Network error: Unable to search exercises. Please check your connection and try again.",
}

type scopedError struct {
	message  string
	notFound bool
}

//go:generate mockgen -source=store.go -destination=api_mocks_test.go -package=store_test

type apiClient interface {
	ListRoutines(ctx context.Context) ([]workouts.Routine, error)
	GetRoutine(ctx context.Context, id int) (workouts.Routine, error)
	CreateRoutine(ctx context.Context, nr workouts.NewRoutine) (workouts.Routine, error)
	UpdateRoutine(ctx context.Context, id int, update workouts.RoutineUpdate) (workouts.Routine, error)
	DeleteRoutine(ctx context.Context, id int) error
	ListExercises(ctx context.Context, filter workouts.ExerciseFilter) ([]workouts.Exercise, error)
	GetExercise(ctx context.Context, id int) (workouts.Exercise, error)
	CreateExercise(ctx context.Context, ne workouts.NewExercise) (workouts.Exercise, error)
	AddItemToRoutine(ctx context.Context, routineID int, ni workouts.NewRoutineItem) (workouts.RoutineItem, error)
	UpdateItem(ctx context.Context, routineID, itemID int, update workouts.RoutineItemUpdate) (workouts.RoutineItem, error)
	DeleteItem(ctx context.Context, routineID, itemID int) error
	ListVariationTypes(ctx context.Context) ([]workouts.VariationType, error)
	CreateVariationType(ctx context.Context, nv workouts.NewVariationType) (workouts.VariationType, error)
	DeleteVariationType(ctx context.Context, id int) error
	Login(ctx context.Context, username, password string) (workouts.LoginResult, error)
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) (workouts.AuthStatus, error)
	GetUserData(ctx context.Context) (workouts.UserData, error)
}

var _ apiClient = (*api.Client)(nil)

type Params struct {
	// UseUserDataEndpoint makes the initial load use the single /user-data call.
	UseUserDataEndpoint    bool
	ExerciseSearchCacheTTL time.Duration
	MetricsManager         *metrics.Manager
}

// Store is the single in-memory copy of the user's routines, exercises and variation types.
// Every mutation goes through it: it calls the backend, and only on success reconciles the cache.
// Failures are recorded as scoped error messages; no method returns an error or panics.
//
// The mutex guards memory only and is never held across a backend call, so two calls
// mutating the same entity resolve as last-writer-wins.
type Store struct {
	api            apiClient
	metricsManager *metrics.Manager

	useUserDataEndpoint bool
	searchCache         *freecache.Cache
	searchCacheTTL      int // seconds

	mutex            sync.RWMutex
	authenticated    bool
	user             *workouts.User
	loaded           bool
	routines         *orderedMap[workouts.Routine]
	exercises        *orderedMap[workouts.Exercise]
	variationTypes   *orderedMap[workouts.VariationType]
	muscleGroups     map[string]struct{}
	equipment        map[string]struct{}
	currentRoutineID int
	loading          LoadingState
	errors           map[Scope]scopedError
}

func New(apiClient apiClient, params Params) *Store {
	ttl := params.ExerciseSearchCacheTTL
	if ttl <= 0 {
		ttl = DefaultExerciseSearchCacheTTL
	}
	metricsManager := params.MetricsManager
	if metricsManager == nil {
		metricsManager = metrics.NewTestManager()
	}

	s := &Store{
		api:                 apiClient,
		metricsManager:      metricsManager,
		useUserDataEndpoint: params.UseUserDataEndpoint,
		searchCache:         freecache.NewCache(exerciseSearchCacheSize),
		searchCacheTTL:      int(ttl.Seconds()),
		routines:            newOrderedMap[workouts.Routine](),
		exercises:           newOrderedMap[workouts.Exercise](),
		variationTypes:      newOrderedMap[workouts.VariationType](),
		muscleGroups:        map[string]struct{}{},
		equipment:           map[string]struct{}{},
		errors:              map[Scope]scopedError{},
	}
	s.resetVariationTypes()

	return s
}

func (s *Store) resetVariationTypes() {
	s.variationTypes.clear()
	for _, vt := range workouts.DefaultVariationTypes() {
		s.variationTypes.set(vt.ID, vt)
	}
}

// Error returns the message recorded for scope, or an empty string.
func (s *Store) Error(scope Scope) string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.errors[scope].message
}

// NotFound reports whether the error recorded for scope came from a 404 of the backend.
func (s *Store) NotFound(scope Scope) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.errors[scope].notFound
}

func (s *Store) ClearError(scope Scope) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.errors, scope)
}

func (s *Store) Loading() LoadingState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.loading
}

func (s *Store) Authenticated() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.authenticated
}

func (s *Store) User() (workouts.User, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.user == nil {
		return workouts.User{}, false
	}
	return *s.user, true
}

// Loaded reports whether the initial load succeeded.
func (s *Store) Loaded() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.loaded
}

func (s *Store) Snapshot() Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snapshot := Snapshot{
		Authenticated:  s.authenticated,
		Loaded:         s.loaded,
		Routines:       s.routines.list(workouts.Routine.Clone),
		Exercises:      s.exercises.list(nil),
		VariationTypes: s.variationTypes.list(nil),
		MuscleGroups:   sortedSet(s.muscleGroups),
		Equipment:      sortedSet(s.equipment),
		Loading:        s.loading,
		Errors:         make(map[Scope]string, len(s.errors)),
	}
	if s.user != nil {
		u := *s.user
		snapshot.User = &u
	}
	if current, ok := s.routines.get(s.currentRoutineID); ok {
		c := current.Clone()
		snapshot.CurrentRoutine = &c
	}
	for scope, e := range s.errors {
		snapshot.Errors[scope] = e.message
	}
	return snapshot
}

func (s *Store) setLoading(update func(l *LoadingState)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	update(&s.loading)
}

// fail records err as the user facing message of scope. fallback is used when
// neither the error nor the server gives anything better.
func (s *Store) fail(scope Scope, op string, err error, fallback string) {
	message := userMessage(scope, err, fallback)
	if api.IsNetworkError(err) || isServerError(err) {
		log.Errorf("store %s failed: %s", op, err)
	} else {
		log.Debugf("store %s failed: %s", op, err)
	}
	s.metricsManager.CounterMutationFailures.WithLabelValues(op).Inc()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.errors[scope] = scopedError{message: message, notFound: api.IsNotFound(err)}
	if scope != ScopeAuth && api.IsAuthError(err) {
		// the session is gone; views redirect to login
		s.authenticated = false
		s.user = nil
	}
}

func userMessage(scope Scope, err error, fallback string) string {
	if errs := multierr.Errors(err); len(errs) > 1 {
		err = errs[0]
	}

	var fieldErr *workouts.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Message
	}
	if api.IsNetworkError(err) {
		return networkMessages[scope]
	}
	if api.IsAuthError(err) && scope != ScopeAuth {
		return "Your session has expired. Please log in again."
	}
	if message := api.Message(err); message != "" {
		return message
	}
	if fallback != "" {
		return fallback
	}
	return "Something went wrong. Please try again."
}

func isServerError(err error) bool {
	var httpErr *api.HttpError
	return errors.As(err, &httpErr) && httpErr.StatusCode >= 500
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// addDerived registers the categories of e in the filter sets. Called with the write lock held.
func (s *Store) addDerived(e workouts.Exercise) {
	if e.MuscleGroup != "" {
		s.muscleGroups[e.MuscleGroup] = struct{}{}
	}
	if e.Equipment != "" {
		s.equipment[e.Equipment] = struct{}{}
	}
}

// updateGauges is called with the lock held.
func (s *Store) updateGauges() {
	s.metricsManager.GaugeRoutines.Set(float64(s.routines.len()))
	s.metricsManager.GaugeExercises.Set(float64(s.exercises.len()))
}
