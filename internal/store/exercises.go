package store

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/tracing"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// CreateExercise adds the exercise to the catalog and extends the muscle group
// and equipment sets with its values.
func (s *Store) CreateExercise(ctx context.Context, ne workouts.NewExercise) (workouts.Exercise, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.createExercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err = ne.Validate(); err != nil {
		s.fail(ScopeForm, "create_exercise", err, "")
		return workouts.Exercise{}, false
	}

	s.setLoading(func(l *LoadingState) { l.Submission = true })
	defer s.setLoading(func(l *LoadingState) { l.Submission = false })

	exercise, err := s.api.CreateExercise(ctx, ne)
	if err != nil {
		s.fail(ScopeForm, "create_exercise", err, "Failed to create exercise")
		return workouts.Exercise{}, false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.exercises.set(exercise.ID, exercise)
	s.addDerived(exercise)
	delete(s.errors, ScopeForm)
	s.updateGauges()

	// cached search results may miss the new exercise
	s.searchCache.Clear()

	return exercise, true
}

func (s *Store) Exercises() []workouts.Exercise {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.exercises.list(nil)
}

// GetExercise serves the exercise from the catalog, or fetches it and adds it to the catalog.
// Failures are recorded in ScopeExerciseSearch.
func (s *Store) GetExercise(ctx context.Context, id int) (workouts.Exercise, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.getExercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("exercise.id", id))

	s.mutex.RLock()
	cached, ok := s.exercises.get(id)
	s.mutex.RUnlock()
	if ok {
		s.metricsManager.CounterCacheLookups.WithLabelValues("exercise", "hit").Inc()
		return cached, true
	}
	s.metricsManager.CounterCacheLookups.WithLabelValues("exercise", "miss").Inc()

	s.setLoading(func(l *LoadingState) { l.ExerciseSearch = true })
	defer s.setLoading(func(l *LoadingState) { l.ExerciseSearch = false })

	exercise, err := s.api.GetExercise(ctx, id)
	if err != nil {
		s.fail(ScopeExerciseSearch, "get_exercise", err, "Exercise not found")
		return workouts.Exercise{}, false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.exercises.set(exercise.ID, exercise)
	s.addDerived(exercise)
	delete(s.errors, ScopeExerciseSearch)
	s.updateGauges()

	return exercise, true
}

func searchCacheKey(filter workouts.ExerciseFilter) []byte {
	key := url.Values{}
	key.Set("search", filter.Search)
	key.Set("muscle_group", filter.MuscleGroup)
	key.Set("equipment", filter.Equipment)
	return []byte("search?" + key.Encode())
}

// SearchExercises filters the catalog on the server. Results are cached per filter for a
// while; exercises found are merged into the catalog. An empty filter is served from the
// catalog once it is loaded.
func (s *Store) SearchExercises(ctx context.Context, filter workouts.ExerciseFilter) ([]workouts.Exercise, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.searchExercises")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if filter.IsZero() && s.Loaded() {
		return s.Exercises(), true
	}

	cacheKey := searchCacheKey(filter)
	if cachedBytes, cacheErr := s.searchCache.Get(cacheKey); cacheErr == nil {
		var cached []workouts.Exercise
		if cacheErr = json.Unmarshal(cachedBytes, &cached); cacheErr == nil {
			s.metricsManager.CounterCacheLookups.WithLabelValues("exercise_search", "hit").Inc()
			return cached, true
		}
		log.Errorf("unmarshal cached exercise search [%s]: %s", cacheKey, cacheErr)
	}
	s.metricsManager.CounterCacheLookups.WithLabelValues("exercise_search", "miss").Inc()

	s.setLoading(func(l *LoadingState) { l.ExerciseSearch = true })
	defer s.setLoading(func(l *LoadingState) { l.ExerciseSearch = false })

	exercises, err := s.api.ListExercises(ctx, filter)
	if err != nil {
		s.fail(ScopeExerciseSearch, "search_exercises", err, "Failed to search exercises")
		return nil, false
	}
	if exercises == nil {
		exercises = []workouts.Exercise{}
	}

	if exercisesBytes, marshalErr := json.Marshal(exercises); marshalErr != nil {
		log.Errorf("marshal exercise search results: %s", marshalErr)
	} else if setErr := s.searchCache.Set(cacheKey, exercisesBytes, s.searchCacheTTL); setErr != nil {
		log.Errorf("set exercise search cache [%s]: %s", cacheKey, setErr)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, e := range exercises {
		s.exercises.set(e.ID, e)
		s.addDerived(e)
	}
	delete(s.errors, ScopeExerciseSearch)
	s.updateGauges()

	return exercises, true
}
