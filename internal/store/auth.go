package store

import (
	"context"
	"strings"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/tracing"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"

	log "github.com/sirupsen/logrus"
)

// Login opens a session and runs the initial load. It returns true once logged in, even if
// the load failed afterwards (ScopeInitial tells).
func (s *Store) Login(ctx context.Context, username, password string) (workouts.User, bool) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.login")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if strings.TrimSpace(username) == "" || password == "" {
		err = &workouts.FieldError{Field: "username", Message: "Username and password are required"}
		s.fail(ScopeAuth, "login", err, "")
		return workouts.User{}, false
	}

	s.setLoading(func(l *LoadingState) { l.Auth = true })
	result, err := s.api.Login(ctx, username, password)
	s.setLoading(func(l *LoadingState) { l.Auth = false })
	if err != nil {
		s.fail(ScopeAuth, "login", err, "Login failed")
		return workouts.User{}, false
	}

	s.mutex.Lock()
	user := result.User
	s.authenticated = true
	s.user = &user
	delete(s.errors, ScopeAuth)
	s.mutex.Unlock()

	log.Debugf("user [%s] logged in", user.Username)
	s.LoadUserData(ctx)

	return user, true
}

// Logout always clears the local state, the backend call failing or not.
func (s *Store) Logout(ctx context.Context) bool {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.logout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	s.setLoading(func(l *LoadingState) { l.Auth = true })
	err = s.api.Logout(ctx)
	s.setLoading(func(l *LoadingState) { l.Auth = false })

	s.clear()

	if err != nil {
		s.fail(ScopeAuth, "logout", err, "Logout failed")
		return false
	}
	return true
}

func (s *Store) clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.authenticated = false
	s.user = nil
	s.loaded = false
	s.routines.clear()
	s.exercises.clear()
	s.muscleGroups = map[string]struct{}{}
	s.equipment = map[string]struct{}{}
	s.resetVariationTypes()
	s.currentRoutineID = 0
	s.errors = map[Scope]scopedError{}
	s.searchCache.Clear()
	s.updateGauges()
}
