package devbackend

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
)

var (
	ErrRoutineNotFound       = errors.New("routine not found")
	ErrExerciseNotFound      = errors.New("exercise not found")
	ErrItemNotFound          = errors.New("routine exercise not found")
	ErrVariationTypeNotFound = errors.New("variation type not found")
	ErrVariationTypeExists   = errors.New("variation type already exists")
	ErrVariationTypeDefault  = errors.New("default variation types cannot be deleted")
)

const (
	defaultSets = 3
	defaultReps = 10
)

type storedRoutine struct {
	routine workouts.Routine
	userID  int
}

// repo is the in-memory state of the backend. Routines are private to their user,
// exercises and variation types are shared.
type repo struct {
	mutex sync.Mutex

	now func() time.Time

	routines       map[int]*storedRoutine
	exercises      map[int]workouts.Exercise
	variationTypes map[int]workouts.VariationType

	lastRoutineID       int
	lastExerciseID      int
	lastItemID          int
	lastVariationTypeID int
}

func newRepo(exercises []workouts.NewExercise, variationTypes []workouts.VariationType) *repo {
	r := &repo{
		now:            time.Now,
		routines:       map[int]*storedRoutine{},
		exercises:      map[int]workouts.Exercise{},
		variationTypes: map[int]workouts.VariationType{},
	}
	for _, ne := range exercises {
		r.addExercise(ne)
	}
	for _, vt := range variationTypes {
		r.lastVariationTypeID++
		vt.ID = r.lastVariationTypeID
		r.variationTypes[vt.ID] = vt
	}
	return r
}

func (r *repo) listRoutines(userID int) []workouts.Routine {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	routines := make([]workouts.Routine, 0)
	for _, sr := range r.routines {
		if sr.userID == userID {
			routines = append(routines, sr.routine.Clone())
		}
	}
	sort.Slice(routines, func(i, j int) bool { return routines[i].ID < routines[j].ID })
	return routines
}

func (r *repo) getRoutine(userID, id int) (workouts.Routine, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sr, err := r.routineOf(userID, id)
	if err != nil {
		return workouts.Routine{}, err
	}
	return sr.routine.Clone(), nil
}

func (r *repo) routineOf(userID, id int) (*storedRoutine, error) {
	sr, ok := r.routines[id]
	if !ok || sr.userID != userID {
		return nil, ErrRoutineNotFound
	}
	return sr, nil
}

func (r *repo) createRoutine(userID int, nr workouts.NewRoutine) workouts.Routine {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	day, _ := workouts.ParseDayOfWeek(string(nr.DayOfWeek))
	r.lastRoutineID++
	routine := workouts.Routine{
		ID:          r.lastRoutineID,
		Name:        strings.TrimSpace(nr.Name),
		DayOfWeek:   day,
		Description: nr.Description,
		Items:       []workouts.RoutineItem{},
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	r.routines[routine.ID] = &storedRoutine{routine: routine, userID: userID}
	return routine.Clone()
}

func (r *repo) updateRoutine(userID, id int, update workouts.RoutineUpdate) (workouts.Routine, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sr, err := r.routineOf(userID, id)
	if err != nil {
		return workouts.Routine{}, err
	}
	if update.DayOfWeek != nil {
		day, _ := workouts.ParseDayOfWeek(string(*update.DayOfWeek))
		update.DayOfWeek = &day
	}
	sr.routine = update.Apply(sr.routine)
	now := r.now()
	sr.routine.UpdatedAt = &now
	return sr.routine.Clone(), nil
}

func (r *repo) deleteRoutine(userID, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, err := r.routineOf(userID, id); err != nil {
		return err
	}
	delete(r.routines, id)
	return nil
}

func (r *repo) addItem(userID, routineID int, ni workouts.NewRoutineItem) (workouts.RoutineItem, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sr, err := r.routineOf(userID, routineID)
	if err != nil {
		return workouts.RoutineItem{}, err
	}
	exercise, ok := r.exercises[ni.ExerciseID]
	if !ok {
		return workouts.RoutineItem{}, ErrExerciseNotFound
	}

	order := ni.Order
	if order == nil {
		maxOrder := 0
		for _, item := range sr.routine.Items {
			if item.Order != nil && *item.Order > maxOrder {
				maxOrder = *item.Order
			}
		}
		next := maxOrder + 1
		order = &next
	}

	r.lastItemID++
	item := workouts.RoutineItem{
		ID:            r.lastItemID,
		RoutineID:     routineID,
		ExerciseID:    exercise.ID,
		Exercise:      &exercise,
		Sets:          ni.Sets,
		Reps:          ni.Reps,
		Weight:        ni.Weight,
		Notes:         ni.Notes,
		Order:         order,
		Name:          ni.Name,
		VariationType: ni.VariationType,
		Description:   ni.Description,
	}
	if item.Sets == 0 {
		item.Sets = defaultSets
	}
	if item.Reps == 0 {
		item.Reps = defaultReps
	}

	sr.routine.Items = append(sr.routine.Items, item)
	return item.Clone(), nil
}

func (r *repo) updateItem(userID, routineID, itemID int, update workouts.RoutineItemUpdate) (workouts.RoutineItem, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sr, err := r.routineOf(userID, routineID)
	if err != nil {
		return workouts.RoutineItem{}, err
	}
	idx := sr.routine.ItemIndex(itemID)
	if idx < 0 {
		return workouts.RoutineItem{}, ErrItemNotFound
	}

	item := &sr.routine.Items[idx]
	if update.Sets != nil {
		item.Sets = *update.Sets
	}
	if update.Reps != nil {
		item.Reps = *update.Reps
	}
	if update.Weight != nil {
		w := *update.Weight
		item.Weight = &w
	}
	if update.Notes != nil {
		item.Notes = *update.Notes
	}
	if update.Order != nil {
		o := *update.Order
		item.Order = &o
	}
	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.VariationType != nil {
		item.VariationType = *update.VariationType
	}

	return item.Clone(), nil
}

func (r *repo) deleteItem(userID, routineID, itemID int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	sr, err := r.routineOf(userID, routineID)
	if err != nil {
		return err
	}
	idx := sr.routine.ItemIndex(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	sr.routine.Items = append(sr.routine.Items[:idx], sr.routine.Items[idx+1:]...)
	return nil
}

func (r *repo) listExercises(filter workouts.ExerciseFilter) []workouts.Exercise {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	exercises := make([]workouts.Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		if filter.Matches(e) {
			exercises = append(exercises, e)
		}
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].ID < exercises[j].ID })
	return exercises
}

func (r *repo) getExercise(id int) (workouts.Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	exercise, ok := r.exercises[id]
	if !ok {
		return workouts.Exercise{}, ErrExerciseNotFound
	}
	return exercise, nil
}

func (r *repo) createExercise(ne workouts.NewExercise) workouts.Exercise {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.addExercise(ne)
}

func (r *repo) addExercise(ne workouts.NewExercise) workouts.Exercise {
	r.lastExerciseID++
	exercise := workouts.Exercise{
		ID:          r.lastExerciseID,
		Name:        strings.TrimSpace(ne.Name),
		MuscleGroup: ne.MuscleGroup,
		Equipment:   ne.Equipment,
		Description: ne.Description,
	}
	r.exercises[exercise.ID] = exercise
	return exercise
}

func (r *repo) listVariationTypes() []workouts.VariationType {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	variationTypes := make([]workouts.VariationType, 0, len(r.variationTypes))
	for _, vt := range r.variationTypes {
		variationTypes = append(variationTypes, vt)
	}
	sort.Slice(variationTypes, func(i, j int) bool { return variationTypes[i].ID < variationTypes[j].ID })
	return variationTypes
}

func (r *repo) createVariationType(nv workouts.NewVariationType) (workouts.VariationType, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, vt := range r.variationTypes {
		if workouts.SameVariationName(vt.Name, nv.Name) {
			return workouts.VariationType{}, ErrVariationTypeExists
		}
	}

	r.lastVariationTypeID++
	vt := workouts.VariationType{
		ID:          r.lastVariationTypeID,
		Name:        strings.TrimSpace(nv.Name),
		Description: nv.Description,
	}
	r.variationTypes[vt.ID] = vt
	return vt, nil
}

func (r *repo) deleteVariationType(id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	vt, ok := r.variationTypes[id]
	if !ok {
		return ErrVariationTypeNotFound
	}
	if vt.IsDefault {
		return ErrVariationTypeDefault
	}
	delete(r.variationTypes, id)
	return nil
}
