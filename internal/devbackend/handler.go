package devbackend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
	"github.com/DrakeDamon/Workout-tracker-phase-4/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ctxKey int

const userIDKey ctxKey = iota

// zone-less timestamps, like the REST backend serializes them
const timestampLayout = "2006-01-02T15:04:05.000000"

type handler struct {
	repo            *repo
	sessions        *SessionService
	users           map[string]User
	disableUserData bool
}

func newHandler(repo *repo, sessions *SessionService, users map[string]User, disableUserData bool) *handler {
	return &handler{
		repo:            repo,
		sessions:        sessions,
		users:           users,
		disableUserData: disableUserData,
	}
}

func (h *handler) setupRoutes(r *mux.Router) {
	r.HandleFunc("/login", h.handleLogin).Methods("POST")
	r.HandleFunc("/logout", h.handleLogout).Methods("POST")
	r.HandleFunc("/check-auth", h.handleCheckAuth).Methods("GET")

	protected := r.NewRoute().Subrouter()
	protected.Use(h.authMiddleware())

	protected.HandleFunc("/user-data", h.handleUserData).Methods("GET")

	protected.HandleFunc("/routines", h.handleListRoutines).Methods("GET")
	protected.HandleFunc("/routines", h.handleCreateRoutine).Methods("POST")
	protected.HandleFunc("/routines/{id:[0-9]+}", h.handleGetRoutine).Methods("GET")
	protected.HandleFunc("/routines/{id:[0-9]+}", h.handleUpdateRoutine).Methods("PUT")
	protected.HandleFunc("/routines/{id:[0-9]+}", h.handleDeleteRoutine).Methods("DELETE")

	protected.HandleFunc("/routines/{id:[0-9]+}/items", h.handleAddItem).Methods("POST")
	protected.HandleFunc("/routines/{id:[0-9]+}/items/{itemId:[0-9]+}", h.handleUpdateItem).Methods("PUT")
	protected.HandleFunc("/routines/{id:[0-9]+}/items/{itemId:[0-9]+}", h.handleDeleteItem).Methods("DELETE")

	protected.HandleFunc("/exercises", h.handleListExercises).Methods("GET")
	protected.HandleFunc("/exercises", h.handleCreateExercise).Methods("POST")
	protected.HandleFunc("/exercises/{id:[0-9]+}", h.handleGetExercise).Methods("GET")

	protected.HandleFunc("/variation-types", h.handleListVariationTypes).Methods("GET")
	protected.HandleFunc("/variation-types", h.handleCreateVariationType).Methods("POST")
	protected.HandleFunc("/variation-types/{id:[0-9]+}", h.handleDeleteVariationType).Methods("DELETE")
}

func (h *handler) authMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			userID, ok := h.sessions.UserID(cookie.Value)
			if !ok {
				writeError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

func userIDFrom(r *http.Request) int {
	userID, _ := r.Context().Value(userIDKey).(int)
	return userID
}

type routineJSON struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	DayOfWeek   *string `json:"day_of_week"`
	Description string  `json:"description"`
	// only the detail view carries the items
	RoutineExercises *[]workouts.RoutineItem `json:"routine_exercises,omitempty"`
	CreatedAt        string                  `json:"created_at,omitempty"`
	UpdatedAt        string                  `json:"updated_at,omitempty"`
}

func toRoutineJSON(r workouts.Routine, withItems bool) routineJSON {
	rj := routineJSON{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
	}
	if r.DayOfWeek != "" {
		day := string(r.DayOfWeek)
		rj.DayOfWeek = &day
	}
	if r.CreatedAt != nil {
		rj.CreatedAt = r.CreatedAt.UTC().Format(timestampLayout)
	}
	if r.UpdatedAt != nil {
		rj.UpdatedAt = r.UpdatedAt.UTC().Format(timestampLayout)
	}
	if withItems {
		items := r.Items
		if items == nil {
			items = []workouts.RoutineItem{}
		}
		rj.RoutineExercises = &items
	}
	return rj
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	pkg.WriteJSON(w, map[string]string{"error": message}, statusCode)
}

func writeValidationError(w http.ResponseWriter, err error) {
	var fieldErr *workouts.FieldError
	if errors.As(err, &fieldErr) {
		pkg.WriteJSON(w, map[string]any{
			"error":  fieldErr.Message,
			"errors": map[string]string{fieldErr.Field: fieldErr.Message},
		}, http.StatusUnprocessableEntity)
		return
	}
	writeError(w, err.Error(), http.StatusUnprocessableEntity)
}

func writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRoutineNotFound):
		writeError(w, "Routine not found", http.StatusNotFound)
	case errors.Is(err, ErrExerciseNotFound):
		writeError(w, "Exercise not found", http.StatusNotFound)
	case errors.Is(err, ErrItemNotFound):
		writeError(w, "Routine exercise not found", http.StatusNotFound)
	case errors.Is(err, ErrVariationTypeNotFound):
		writeError(w, "Variation type not found", http.StatusNotFound)
	case errors.Is(err, ErrVariationTypeExists):
		writeError(w, "A variation type with this name already exists", http.StatusConflict)
	case errors.Is(err, ErrVariationTypeDefault):
		writeError(w, "Default variation types cannot be deleted", http.StatusBadRequest)
	default:
		log.Errorf("dev backend: %s", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		writeError(w, "error, id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &creds) {
		return
	}
	if creds.Username == "" || creds.Password == "" {
		writeError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, ok := h.users[creds.Username]
	if !ok || !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		log.Tracef("dev backend: failed login for [%s]", creds.Username)
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.sessions.Login(user.ID, time.Now())
	if err != nil {
		log.Errorf("dev backend: create session: %s", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	pkg.WriteJSON(w, map[string]any{
		"message": "Login successful",
		"user":    user.User,
	}, http.StatusOK)
}

func (h *handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		h.sessions.Logout(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	pkg.WriteJSON(w, map[string]string{"message": "Logout successful"}, http.StatusOK)
}

func (h *handler) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err == nil {
		if userID, ok := h.sessions.UserID(cookie.Value); ok {
			for _, u := range h.users {
				if u.ID == userID {
					pkg.WriteJSON(w, map[string]any{"authenticated": true, "user": u.User}, http.StatusOK)
					return
				}
			}
		}
	}
	pkg.WriteJSON(w, map[string]bool{"authenticated": false}, http.StatusUnauthorized)
}

func (h *handler) handleUserData(w http.ResponseWriter, r *http.Request) {
	if h.disableUserData {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	routines := h.repo.listRoutines(userIDFrom(r))
	routinesJSON := make([]routineJSON, 0, len(routines))
	for _, routine := range routines {
		routinesJSON = append(routinesJSON, toRoutineJSON(routine, true))
	}

	exercises := h.repo.listExercises(workouts.ExerciseFilter{})
	muscleGroups, equipment := distinctCategories(exercises)

	pkg.WriteJSON(w, map[string]any{
		"routines":        routinesJSON,
		"exercises":       exercises,
		"muscle_groups":   muscleGroups,
		"equipment":       equipment,
		"variation_types": h.repo.listVariationTypes(),
	}, http.StatusOK)
}

func distinctCategories(exercises []workouts.Exercise) ([]string, []string) {
	muscleGroupsSet := map[string]struct{}{}
	equipmentSet := map[string]struct{}{}
	for _, e := range exercises {
		if e.MuscleGroup != "" {
			muscleGroupsSet[e.MuscleGroup] = struct{}{}
		}
		if e.Equipment != "" {
			equipmentSet[e.Equipment] = struct{}{}
		}
	}
	return sortedKeys(muscleGroupsSet), sortedKeys(equipmentSet)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (h *handler) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	routines := h.repo.listRoutines(userIDFrom(r))
	resp := make([]routineJSON, 0, len(routines))
	for _, routine := range routines {
		resp = append(resp, toRoutineJSON(routine, false))
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *handler) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	routine, err := h.repo.getRoutine(userIDFrom(r), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	pkg.WriteJSON(w, toRoutineJSON(routine, true), http.StatusOK)
}

func (h *handler) handleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	var nr workouts.NewRoutine
	if !decodeBody(w, r, &nr) {
		return
	}
	if err := nr.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}
	routine := h.repo.createRoutine(userIDFrom(r), nr)
	pkg.WriteJSON(w, toRoutineJSON(routine, true), http.StatusCreated)
}

func (h *handler) handleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var update workouts.RoutineUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	if err := update.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}
	routine, err := h.repo.updateRoutine(userIDFrom(r), id, update)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	// the update response carries no items; clients merge
	pkg.WriteJSON(w, toRoutineJSON(routine, false), http.StatusOK)
}

func (h *handler) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.repo.deleteRoutine(userIDFrom(r), id); err != nil {
		writeRepoError(w, err)
		return
	}
	pkg.WriteJSON(w, map[string]string{"message": "Routine deleted successfully"}, http.StatusOK)
}

func (h *handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var ni workouts.NewRoutineItem
	if !decodeBody(w, r, &ni) {
		return
	}
	if err := ni.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}
	item, err := h.repo.addItem(userIDFrom(r), routineID, ni)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	pkg.WriteJSON(w, item, http.StatusCreated)
}

func (h *handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	var update workouts.RoutineItemUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	if err := update.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}
	item, err := h.repo.updateItem(userIDFrom(r), routineID, itemID, update)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	pkg.WriteJSON(w, item, http.StatusOK)
}

func (h *handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	if err := h.repo.deleteItem(userIDFrom(r), routineID, itemID); err != nil {
		writeRepoError(w, err)
		return
	}
	pkg.WriteJSON(w, map[string]string{"message": "Exercise removed from routine successfully"}, http.StatusOK)
}

func (h *handler) handleListExercises(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := workouts.ExerciseFilter{
		Search:      query.Get("search"),
		MuscleGroup: query.Get("muscle_group"),
		Equipment:   query.Get("equipment"),
	}
	pkg.WriteJSON(w, h.repo.listExercises(filter), http.StatusOK)
}

func (h *handler) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	exercise, err := h.repo.getExercise(id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	pkg.WriteJSON(w, exercise, http.StatusOK)
}

func (h *handler) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var ne workouts.NewExercise
	if !decodeBody(w, r, &ne) {
		return
	}
	if err := ne.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}
	pkg.WriteJSON(w, h.repo.createExercise(ne), http.StatusCreated)
}

func (h *handler) handleListVariationTypes(w http.ResponseWriter, r *http.Request) {
	pkg.WriteJSON(w, h.repo.listVariationTypes(), http.StatusOK)
}

func (h *handler) handleCreateVariationType(w http.ResponseWriter, r *http.Request) {
	var nv workouts.NewVariationType
	if !decodeBody(w, r, &nv) {
		return
	}
	if err := nv.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}
	vt, err := h.repo.createVariationType(nv)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	pkg.WriteJSON(w, vt, http.StatusCreated)
}

func (h *handler) handleDeleteVariationType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.repo.deleteVariationType(id); err != nil {
		writeRepoError(w, err)
		return
	}
	pkg.WriteJSON(w, map[string]string{"message": "Variation type deleted"}, http.StatusOK)
}
