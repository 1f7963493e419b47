package store

import (
	"context"
	"fmt"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/tracing"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"

	"go.opentelemetry.io/otel/attribute"
)

// mergeVariationType adds a server side variation type. One named like a seeded default
// takes the default's place, and stays a default. Called with the lock held.
func (s *Store) mergeVariationType(vt workouts.VariationType) {
	for _, existing := range s.variationTypes.list(nil) {
		if existing.ID == vt.ID || workouts.SameVariationName(existing.Name, vt.Name) {
			vt.IsDefault = vt.IsDefault || existing.IsDefault
			if vt.Description == "" {
				vt.Description = existing.Description
			}
			s.variationTypes.replaceKey(existing.ID, vt.ID, vt)
			return
		}
	}
	s.variationTypes.set(vt.ID, vt)
}

func (s *Store) VariationTypes() []workouts.VariationType {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.variationTypes.list(nil)
}

func (s *Store) findVariationTypeByName(name string) (workouts.VariationType, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, vt := range s.variationTypes.list(nil) {
		if workouts.SameVariationName(vt.Name, name) {
			return vt, true
		}
	}
	return workouts.VariationType{}, false
}

// CreateVariationType rejects names already taken (case-insensitive) without calling the backend.
func (s *Store) CreateVariationType(ctx context.Context, nv workouts.NewVariationType) (workouts.VariationType, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.createVariationType")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err = nv.Validate(); err == nil {
		if existing, exists := s.findVariationTypeByName(nv.Name); exists {
			err = &workouts.FieldError{
				Field:   "name",
				Message: fmt.Sprintf("A variation type named %q already exists", existing.Name),
			}
		}
	}
	if err != nil {
		s.fail(ScopeForm, "create_variation_type", err, "")
		return workouts.VariationType{}, false
	}

	s.setLoading(func(l *LoadingState) { l.Submission = true })
	defer s.setLoading(func(l *LoadingState) { l.Submission = false })

	vt, err := s.api.CreateVariationType(ctx, nv)
	if err != nil {
		s.fail(ScopeForm, "create_variation_type", err, "Failed to create variation type")
		return workouts.VariationType{}, false
	}
	vt.IsDefault = false

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.variationTypes.set(vt.ID, vt)
	delete(s.errors, ScopeForm)

	return vt, true
}

// DeleteVariationType deletes a user created variation type. Defaults are never deleted.
func (s *Store) DeleteVariationType(ctx context.Context, id int) bool {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.deleteVariationType")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("variation_type.id", id))

	s.mutex.RLock()
	vt, ok := s.variationTypes.get(id)
	s.mutex.RUnlock()

	switch {
	case !ok:
		err = &workouts.FieldError{Field: "id", Message: "Variation type not found"}
	case vt.IsDefault:
		err = &workouts.FieldError{Field: "id", Message: "Default variation types cannot be deleted"}
	}
	if err != nil {
		s.fail(ScopeForm, "delete_variation_type", err, "")
		return false
	}

	s.setLoading(func(l *LoadingState) { l.VariationTypeDeletion = id })
	defer s.setLoading(func(l *LoadingState) {
		if l.VariationTypeDeletion == id {
			l.VariationTypeDeletion = 0
		}
	})

	// only server side types have positive ids
	if id > 0 {
		if err = s.api.DeleteVariationType(ctx, id); err != nil {
			s.fail(ScopeForm, "delete_variation_type", err, "Failed to delete variation type")
			return false
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.variationTypes.delete(id)
	delete(s.errors, ScopeForm)

	return true
}
