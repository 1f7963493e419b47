package store

import (
	"context"
	"fmt"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/api"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/tracing"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"

	"go.opentelemetry.io/otel/attribute"
)

// RoutineNotFoundMessage is the ScopeRoutineDetail error of a routine the backend does not know.
const RoutineNotFoundMessage = "Routine not found"

func (s *Store) CreateRoutine(ctx context.Context, nr workouts.NewRoutine) (workouts.Routine, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.createRoutine")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err = nr.Validate(); err != nil {
		s.fail(ScopeForm, "create_routine", err, "")
		return workouts.Routine{}, false
	}
	nr = nr.Normalized()

	s.setLoading(func(l *LoadingState) { l.Submission = true })
	defer s.setLoading(func(l *LoadingState) { l.Submission = false })

	routine, err := s.api.CreateRoutine(ctx, nr)
	if err != nil {
		s.fail(ScopeForm, "create_routine", err, "Failed to create routine")
		return workouts.Routine{}, false
	}

	// a new routine has no items, whatever the response carries
	if routine.Items == nil {
		routine.Items = []workouts.RoutineItem{}
	}
	routine.ItemsLoaded = true

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.resolveItemExercises(&routine)
	s.routines.set(routine.ID, routine)
	delete(s.errors, ScopeForm)
	s.updateGauges()

	return routine.Clone(), true
}

// UpdateRoutine merges the updated fields into the cached routine. The cached items are kept
// when the response does not carry an item collection.
func (s *Store) UpdateRoutine(ctx context.Context, id int, update workouts.RoutineUpdate) (workouts.Routine, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.updateRoutine")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("routine.id", id))

	if err = update.Validate(); err != nil {
		s.fail(ScopeForm, "update_routine", err, "")
		return workouts.Routine{}, false
	}
	update = update.Normalized()

	s.setLoading(func(l *LoadingState) { l.Submission = true })
	defer s.setLoading(func(l *LoadingState) { l.Submission = false })

	updated, err := s.api.UpdateRoutine(ctx, id, update)
	if err != nil {
		s.fail(ScopeForm, "update_routine", err, "Failed to update routine")
		return workouts.Routine{}, false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	merged := updated
	if cached, ok := s.routines.get(id); ok {
		merged = mergeRoutine(cached, update, updated)
	} else if merged.Items == nil {
		merged.Items = []workouts.RoutineItem{}
	}
	merged.ID = id
	s.resolveItemExercises(&merged)
	s.routines.set(id, merged)
	delete(s.errors, ScopeForm)

	return merged.Clone(), true
}

// mergeRoutine applies the requested update to the cached routine, then overlays what the
// server returned. Fields the response leaves empty never wipe cached values.
func mergeRoutine(cached workouts.Routine, update workouts.RoutineUpdate, updated workouts.Routine) workouts.Routine {
	merged := update.Apply(cached)
	if updated.Name != "" {
		merged.Name = updated.Name
	}
	if updated.DayOfWeek != "" {
		merged.DayOfWeek = updated.DayOfWeek
	}
	if updated.Description != "" {
		merged.Description = updated.Description
	}
	if updated.CreatedAt != nil {
		merged.CreatedAt = updated.CreatedAt
	}
	if updated.UpdatedAt != nil {
		merged.UpdatedAt = updated.UpdatedAt
	}
	if updated.ItemsLoaded {
		merged.Items = updated.Items
		merged.ItemsLoaded = true
	}
	if merged.Items == nil {
		merged.Items = []workouts.RoutineItem{}
	}
	return merged
}

// DeleteRoutine removes the routine together with its items, and clears the current
// routine if it was the deleted one.
func (s *Store) DeleteRoutine(ctx context.Context, id int) bool {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.deleteRoutine")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("routine.id", id))

	s.setLoading(func(l *LoadingState) { l.Deletion = id })
	defer s.setLoading(func(l *LoadingState) {
		if l.Deletion == id {
			l.Deletion = 0
		}
	})

	if err = s.api.DeleteRoutine(ctx, id); err != nil {
		s.fail(ScopeForm, "delete_routine", err, "Failed to delete routine")
		return false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.routines.delete(id)
	if s.currentRoutineID == id {
		s.currentRoutineID = 0
	}
	delete(s.errors, ScopeForm)
	s.updateGauges()

	return true
}

// GetRoutineByID serves the routine from cache when ResolveRoutine allows it,
// otherwise fetches and caches it. It returns false if the routine does not exist
// or could not be fetched.
func (s *Store) GetRoutineByID(ctx context.Context, id int) (workouts.Routine, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.getRoutineByID")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("routine.id", id))

	s.mutex.RLock()
	resolution := ResolveRoutine(id, s.routines.get)
	s.mutex.RUnlock()

	if !resolution.MustFetch {
		s.metricsManager.CounterCacheLookups.WithLabelValues("routine", "hit").Inc()
		return resolution.Routine.Clone(), true
	}
	s.metricsManager.CounterCacheLookups.WithLabelValues("routine", "miss").Inc()

	s.setLoading(func(l *LoadingState) { l.Routine = true })
	defer s.setLoading(func(l *LoadingState) { l.Routine = false })

	routine, err := s.api.GetRoutine(ctx, id)
	if err != nil {
		fallback := "Failed to load routine"
		if api.IsNotFound(err) {
			fallback = RoutineNotFoundMessage
		}
		s.fail(ScopeRoutineDetail, "get_routine", err, fallback)
		return workouts.Routine{}, false
	}

	// the detail view is the full routine
	routine.ItemsLoaded = true
	if routine.Items == nil {
		routine.Items = []workouts.RoutineItem{}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.resolveItemExercises(&routine)
	s.routines.set(id, routine)
	delete(s.errors, ScopeRoutineDetail)
	s.updateGauges()

	return routine.Clone(), true
}

// LoadRoutineDetails loads the routine and makes it the current one.
func (s *Store) LoadRoutineDetails(ctx context.Context, id int) (workouts.Routine, bool) {
	routine, ok := s.GetRoutineByID(ctx, id)
	if !ok {
		return workouts.Routine{}, false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.currentRoutineID = id
	delete(s.errors, ScopeRoutineDetail)

	return routine, true
}

func (s *Store) CurrentRoutine() (workouts.Routine, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.currentRoutineID == 0 {
		return workouts.Routine{}, false
	}
	routine, ok := s.routines.get(s.currentRoutineID)
	if !ok {
		return workouts.Routine{}, false
	}
	return routine.Clone(), true
}

// CachedRoutine reads the cache only, it never calls the backend.
func (s *Store) CachedRoutine(id int) (workouts.Routine, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	routine, ok := s.routines.get(id)
	if !ok {
		return workouts.Routine{}, false
	}
	return routine.Clone(), true
}

func (s *Store) Routines() []workouts.Routine {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.routines.list(workouts.Routine.Clone)
}

// AddItemToRoutine appends the new item to the cached routine's items.
// An item the server returns without its exercise gets it resolved from the catalog.
func (s *Store) AddItemToRoutine(ctx context.Context, routineID int, ni workouts.NewRoutineItem) (workouts.RoutineItem, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.addItemToRoutine")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("routine.id", routineID), attribute.Int("exercise.id", ni.ExerciseID))

	if err = ni.Validate(); err == nil {
		err = s.checkExerciseKnown(ni.ExerciseID)
	}
	if err != nil {
		s.fail(ScopeForm, "add_item", err, "")
		return workouts.RoutineItem{}, false
	}

	s.setLoading(func(l *LoadingState) { l.Submission = true })
	defer s.setLoading(func(l *LoadingState) { l.Submission = false })

	item, err := s.api.AddItemToRoutine(ctx, routineID, ni)
	if err != nil {
		s.fail(ScopeForm, "add_item", err, "Failed to add exercise to routine")
		return workouts.RoutineItem{}, false
	}
	if item.RoutineID == 0 {
		item.RoutineID = routineID
	}
	if item.ExerciseID == 0 {
		item.ExerciseID = ni.ExerciseID
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.resolveItemExercise(&item)
	if routine, ok := s.routines.get(routineID); ok {
		routine.Items = append(routine.Items, item)
		s.routines.set(routineID, routine)
	}
	delete(s.errors, ScopeForm)

	return item.Clone(), true
}

// checkExerciseKnown rejects unknown exercises, once the catalog is loaded.
func (s *Store) checkExerciseKnown(exerciseID int) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.loaded || s.exercises.len() == 0 {
		return nil
	}
	if _, ok := s.exercises.get(exerciseID); !ok {
		return &workouts.FieldError{
			Field:   "exercise_id",
			Message: fmt.Sprintf("exercise %d does not exist", exerciseID),
		}
	}
	return nil
}

// UpdateItem replaces the item in place, keeping the order of the routine's items.
func (s *Store) UpdateItem(
	ctx context.Context,
	routineID, itemID int,
	update workouts.RoutineItemUpdate,
) (workouts.RoutineItem, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.updateItem")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("routine.id", routineID), attribute.Int("item.id", itemID))

	if err = update.Validate(); err != nil {
		s.fail(ScopeForm, "update_item", err, "")
		return workouts.RoutineItem{}, false
	}

	s.setLoading(func(l *LoadingState) { l.ItemUpdate = itemID })
	defer s.setLoading(func(l *LoadingState) {
		if l.ItemUpdate == itemID {
			l.ItemUpdate = 0
		}
	})

	item, err := s.api.UpdateItem(ctx, routineID, itemID, update)
	if err != nil {
		s.fail(ScopeForm, "update_item", err, "Failed to update exercise")
		return workouts.RoutineItem{}, false
	}
	item.ID = itemID
	if item.RoutineID == 0 {
		item.RoutineID = routineID
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if routine, ok := s.routines.get(routineID); ok {
		if idx := routine.ItemIndex(itemID); idx >= 0 {
			previous := routine.Items[idx]
			if item.ExerciseID == 0 {
				item.ExerciseID = previous.ExerciseID
			}
			if item.Exercise == nil {
				item.Exercise = previous.Exercise
			}
			s.resolveItemExercise(&item)
			items := make([]workouts.RoutineItem, len(routine.Items))
			copy(items, routine.Items)
			items[idx] = item
			routine.Items = items
			s.routines.set(routineID, routine)
		}
	}
	if item.Exercise == nil {
		s.resolveItemExercise(&item)
	}
	delete(s.errors, ScopeForm)

	return item.Clone(), true
}

func (s *Store) DeleteItem(ctx context.Context, routineID, itemID int) bool {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.deleteItem")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("routine.id", routineID), attribute.Int("item.id", itemID))

	s.setLoading(func(l *LoadingState) { l.ItemUpdate = itemID })
	defer s.setLoading(func(l *LoadingState) {
		if l.ItemUpdate == itemID {
			l.ItemUpdate = 0
		}
	})

	if err = s.api.DeleteItem(ctx, routineID, itemID); err != nil {
		s.fail(ScopeForm, "delete_item", err, "Failed to remove exercise from routine")
		return false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if routine, ok := s.routines.get(routineID); ok {
		if idx := routine.ItemIndex(itemID); idx >= 0 {
			items := make([]workouts.RoutineItem, 0, len(routine.Items)-1)
			items = append(items, routine.Items[:idx]...)
			items = append(items, routine.Items[idx+1:]...)
			routine.Items = items
			s.routines.set(routineID, routine)
		}
	}
	delete(s.errors, ScopeForm)

	return true
}
