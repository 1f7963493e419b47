package store

import (
	"context"
	"sync"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/api"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/tracing"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

// Init checks the session and, when logged in, runs the initial load.
// It returns false if either step failed.
func (s *Store) Init(ctx context.Context) bool {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.init")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	s.setLoading(func(l *LoadingState) { l.Auth = true })
	status, err := s.api.CheckAuth(ctx)
	s.setLoading(func(l *LoadingState) { l.Auth = false })
	if err != nil {
		s.fail(ScopeAuth, "check_auth", err, "Failed to check your session")
		return false
	}

	s.mutex.Lock()
	s.authenticated = status.Authenticated
	s.user = status.User
	delete(s.errors, ScopeAuth)
	s.mutex.Unlock()

	if !status.Authenticated {
		log.Debugln("store init: not logged in")
		return true
	}

	return s.LoadUserData(ctx)
}

// Refresh re-runs the initial load; it is the manual retry of a failed load.
func (s *Store) Refresh(ctx context.Context) bool {
	s.ClearError(ScopeInitial)
	return s.LoadUserData(ctx)
}

type userData struct {
	routines       []workouts.Routine
	exercises      []workouts.Exercise
	variationTypes []workouts.VariationType
	muscleGroups   []string
	equipment      []string
}

// LoadUserData fetches routines, exercises and variation types and replaces the cache with them.
// It is all-or-nothing: if any call fails the cache is left untouched and ScopeInitial is set.
// A missing variation types endpoint is tolerated, the defaults stay in place.
func (s *Store) LoadUserData(ctx context.Context) bool {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.loadUserData")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Bool("user_data_endpoint", s.useUserDataEndpoint))

	s.setLoading(func(l *LoadingState) { l.InitialLoad = true })
	defer s.setLoading(func(l *LoadingState) { l.InitialLoad = false })

	var data userData
	if s.useUserDataEndpoint {
		data, err = s.fetchUserData(ctx)
	} else {
		data, err = s.fetchAll(ctx)
	}
	if err != nil {
		s.fail(ScopeInitial, "load_user_data", err, "Failed to load your data. Please try again.")
		return false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.exercises.clear()
	s.muscleGroups = map[string]struct{}{}
	s.equipment = map[string]struct{}{}
	for _, e := range data.exercises {
		s.exercises.set(e.ID, e)
		s.addDerived(e)
	}
	for _, mg := range data.muscleGroups {
		if mg != "" {
			s.muscleGroups[mg] = struct{}{}
		}
	}
	for _, eq := range data.equipment {
		if eq != "" {
			s.equipment[eq] = struct{}{}
		}
	}

	// after the catalog, so items can be resolved against it
	s.replaceRoutines(data.routines)

	s.resetVariationTypes()
	for _, vt := range data.variationTypes {
		s.mergeVariationType(vt)
	}

	if _, ok := s.routines.get(s.currentRoutineID); !ok {
		s.currentRoutineID = 0
	}
	s.loaded = true
	delete(s.errors, ScopeInitial)
	s.updateGauges()

	log.Debugf("store loaded: %d routines, %d exercises, %d variation types",
		s.routines.len(), s.exercises.len(), s.variationTypes.len())
	return true
}

func (s *Store) fetchUserData(ctx context.Context) (userData, error) {
	ud, err := s.api.GetUserData(ctx)
	if err != nil {
		return userData{}, err
	}
	return userData{
		routines:       ud.Routines,
		exercises:      ud.Exercises,
		variationTypes: ud.VariationTypes,
		muscleGroups:   ud.MuscleGroups,
		equipment:      ud.Equipment,
	}, nil
}

// fetchAll runs the three list calls concurrently and waits for all of them.
func (s *Store) fetchAll(ctx context.Context) (userData, error) {
	var wg sync.WaitGroup
	var data userData
	var routinesErr, exercisesErr, variationTypesErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		data.routines, routinesErr = s.api.ListRoutines(ctx)
	}()
	go func() {
		defer wg.Done()
		data.exercises, exercisesErr = s.api.ListExercises(ctx, workouts.ExerciseFilter{})
	}()
	go func() {
		defer wg.Done()
		data.variationTypes, variationTypesErr = s.api.ListVariationTypes(ctx)
	}()
	wg.Wait()

	if api.IsNotFound(variationTypesErr) {
		log.Debugln("variation types endpoint not available, using defaults")
		data.variationTypes, variationTypesErr = nil, nil
	}

	if err := multierr.Combine(routinesErr, exercisesErr, variationTypesErr); err != nil {
		return userData{}, err
	}
	return data, nil
}

// replaceRoutines installs the listed routines in list order. A listed routine without
// items keeps the items of its cached copy, if those were loaded. Called with the lock held.
func (s *Store) replaceRoutines(routines []workouts.Routine) {
	previous := s.routines
	s.routines = newOrderedMap[workouts.Routine]()
	for _, r := range routines {
		if !r.ItemsLoaded {
			if cached, ok := previous.get(r.ID); ok && cached.ItemsLoaded {
				r.Items = cached.Items
				r.ItemsLoaded = true
			}
		}
		if r.Items == nil {
			r.Items = []workouts.RoutineItem{}
		}
		s.resolveItemExercises(&r)
		s.routines.set(r.ID, r)
	}
}

// resolveItemExercises fills in missing embedded exercises from the catalog,
// and adds embedded exercises unknown to the catalog. Called with the lock held.
func (s *Store) resolveItemExercises(r *workouts.Routine) {
	for i := range r.Items {
		s.resolveItemExercise(&r.Items[i])
	}
}

func (s *Store) resolveItemExercise(item *workouts.RoutineItem) {
	if item.Exercise == nil {
		if e, ok := s.exercises.get(item.ExerciseID); ok {
			item.Exercise = &e
		}
		return
	}
	if _, ok := s.exercises.get(item.Exercise.ID); !ok && item.Exercise.ID != 0 {
		s.exercises.set(item.Exercise.ID, *item.Exercise)
		s.addDerived(*item.Exercise)
	}
}
