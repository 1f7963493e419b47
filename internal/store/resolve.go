package store

import "github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"

// Resolution is the outcome of ResolveRoutine: either a cached routine that can be
// used as it is, or MustFetch.
type Resolution struct {
	Routine   workouts.Routine
	MustFetch bool
}

// ResolveRoutine decides whether a routine can be served from cache.
// The cache is trusted only if it holds the routine together with its full item collection;
// a routine known only from the list view (items never loaded) must be fetched.
func ResolveRoutine(id int, lookup func(id int) (workouts.Routine, bool)) Resolution {
	cached, ok := lookup(id)
	if !ok || !cached.ItemsLoaded {
		return Resolution{MustFetch: true}
	}
	return Resolution{Routine: cached}
}
