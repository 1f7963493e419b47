package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/store"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
	"github.com/DrakeDamon/Workout-tracker-phase-4/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// envelope is the body of every view response.
type envelope struct {
	OK       bool                `json:"ok"`
	Data     any                 `json:"data,omitempty"`
	Error    string              `json:"error,omitempty"`
	Loading  *store.LoadingState `json:"loading,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Handler exposes the store as JSON views. It holds no state of its own.
type Handler struct {
	store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/state", handler.HandleState).Methods("GET", "OPTIONS").Name("state")
	r.HandleFunc("/refresh", handler.HandleRefresh).Methods("POST", "OPTIONS").Name("refresh")
	r.HandleFunc("/login", handler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/logout", handler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")

	r.HandleFunc("/routines", handler.HandleListRoutines).Methods("GET", "OPTIONS").Name("list-routines")
	r.HandleFunc("/routines", handler.HandleCreateRoutine).Methods("POST", "OPTIONS").Name("new-routine")
	r.HandleFunc("/routines/{id}", handler.HandleGetRoutine).Methods("GET", "OPTIONS").Name("get-routine")
	r.HandleFunc("/routines/{id}", handler.HandleUpdateRoutine).Methods("PUT", "OPTIONS").Name("update-routine")
	r.HandleFunc("/routines/{id}", handler.HandleDeleteRoutine).Methods("DELETE", "OPTIONS").Name("delete-routine")
	r.HandleFunc("/routines/{id}/items", handler.HandleAddItem).Methods("POST", "OPTIONS").Name("new-item")
	r.HandleFunc("/routines/{id}/items/{itemId}", handler.HandleUpdateItem).Methods("PUT", "OPTIONS").Name("update-item")
	r.HandleFunc("/routines/{id}/items/{itemId}", handler.HandleDeleteItem).Methods("DELETE", "OPTIONS").Name("delete-item")

	r.HandleFunc("/exercises", handler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", handler.HandleCreateExercise).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id}", handler.HandleGetExercise).Methods("GET", "OPTIONS").Name("get-exercise")

	r.HandleFunc("/variation-types", handler.HandleListVariationTypes).Methods("GET", "OPTIONS").Name("list-variation-types")
	r.HandleFunc("/variation-types", handler.HandleCreateVariationType).Methods("POST", "OPTIONS").Name("new-variation-type")
	r.HandleFunc("/variation-types/{id}", handler.HandleDeleteVariationType).Methods("DELETE", "OPTIONS").Name("delete-variation-type")
	r.HandleFunc("/variations", handler.HandleListVariations).Methods("GET", "OPTIONS").Name("list-variations")
}

func (handler *Handler) writeOK(w http.ResponseWriter, data any, statusCode int) {
	loading := handler.store.Loading()
	pkg.WriteJSON(w, envelope{OK: true, Data: data, Loading: &loading}, statusCode)
}

// writeFailed reports the store error of scope. A lost session turns into the login redirect.
func (handler *Handler) writeFailed(w http.ResponseWriter, scope store.Scope, statusCode int) {
	if !handler.store.Authenticated() && scope != store.ScopeAuth {
		writeLoginRedirect(w)
		return
	}
	loading := handler.store.Loading()
	pkg.WriteJSON(w, envelope{
		Error:   handler.store.Error(scope),
		Loading: &loading,
	}, statusCode)
}

func writeLoginRedirect(w http.ResponseWriter) {
	pkg.WriteJSON(w, envelope{Error: "Please log in", Redirect: LoginPath}, http.StatusUnauthorized)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	pkg.WriteJSON(w, envelope{Error: message}, http.StatusBadRequest)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errors.New("request body too large")
		}
		return errors.New("invalid JSON body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, false
	}
	return id, true
}

func queryID(r *http.Request, name string) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func (handler *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	handler.writeOK(w, handler.store.Snapshot(), http.StatusOK)
}

func (handler *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if !handler.store.Refresh(r.Context()) {
		handler.writeFailed(w, store.ScopeInitial, http.StatusBadGateway)
		return
	}
	handler.writeOK(w, handler.store.Snapshot(), http.StatusOK)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	user, ok := handler.store.Login(r.Context(), req.Username, req.Password)
	if !ok {
		handler.writeFailed(w, store.ScopeAuth, http.StatusUnauthorized)
		return
	}

	log.Debugf("view login: [%s]", user.Username)
	handler.writeOK(w, handler.store.Snapshot(), http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	// the local session is gone either way
	if !handler.store.Logout(r.Context()) {
		log.Warnf("view logout: backend logout failed: %s", handler.store.Error(store.ScopeAuth))
	}
	handler.writeOK(w, map[string]string{"redirect": LoginPath}, http.StatusOK)
}

func (handler *Handler) HandleListRoutines(w http.ResponseWriter, r *http.Request) {
	handler.writeOK(w, handler.store.Routines(), http.StatusOK)
}

func (handler *Handler) HandleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	var nr workouts.NewRoutine
	if err := decodeBody(r, &nr); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	routine, ok := handler.store.CreateRoutine(r.Context(), nr)
	if !ok {
		handler.writeFailed(w, store.ScopeForm, http.StatusUnprocessableEntity)
		return
	}
	handler.writeOK(w, routine, http.StatusCreated)
}

func (handler *Handler) HandleGetRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "error, id NaN")
		return
	}

	routine, ok := handler.store.LoadRoutineDetails(r.Context(), id)
	if !ok {
		statusCode := http.StatusBadGateway
		if handler.store.NotFound(store.ScopeRoutineDetail) {
			statusCode = http.StatusNotFound
		}
		handler.writeFailed(w, store.ScopeRoutineDetail, statusCode)
		return
	}
	handler.writeOK(w, routine, http.StatusOK)
}

func (handler *Handler) HandleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "error, id NaN")
		return
	}
	var update workouts.RoutineUpdate
	if err := decodeBody(r, &update); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	routine, ok := handler.store.UpdateRoutine(r.Context(), id, update)
	if !ok {
		handler.writeFailed(w, store.ScopeForm, http.StatusUnprocessableEntity)
		return
	}
	handler.writeOK(w, routine, http.StatusOK)
}

func (handler *Handler) HandleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "error, id NaN")
		return
	}

	if !handler.store.DeleteRoutine(r.Context(), id) {
		handler.writeFailed(w, store.ScopeForm, http.StatusUnprocessableEntity)
		return
	}
	handler.writeOK(w, map[string]int{"deleted": id}, http.StatusOK)
}

func (handler *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "error, id NaN")
		return
	}
	var ni workouts.NewRoutineItem
	if err := decodeBody(r, &ni); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	item, ok := handler.store.AddItemToRoutine(r.Context(), routineID, ni)
	if !ok {
		handler.writeFailed(w, store.ScopeForm, http.StatusUnprocessableEntity)
		return
	}
	handler.writeOK(w, item, http.StatusCreated)
}

func (handler *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "error, id NaN")
		return
	}
	itemID, ok := pathID(r, "itemId")
	if !ok {
		writeBadRequest(w, "error, item id NaN")
		return
	}
	var update workouts.RoutineItemUpdate
	if err := decodeBody(r, &update); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	item, ok := handler.store.UpdateItem(r.Context(), routineID, itemID, update)
	if !ok {
		handler.writeFailed(w, store.ScopeForm, http.StatusUnprocessableEntity)
		return
	}
	handler.writeOK(w, item, http.StatusOK)
}

func (handler *Handler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "error, id NaN")
		return
	}
	itemID, ok := pathID(r, "itemId")
	if !ok {
		writeBadRequest(w, "error, item id NaN")
		return
	}

	if !handler.store.DeleteItem(r.Context(), routineID, itemID) {
		handler.writeFailed(w, store.ScopeForm, http.StatusUnprocessableEntity)
		return
	}
	handler.writeOK(w, map[string]int{"deleted": itemID}, http.StatusOK)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := workouts.ExerciseFilter{
		Search:      query.Get("search"),
		MuscleGroup: query.Get("muscle_group"),
		Equipment:   query.Get("equipment"),
	}

	exercises, ok := handler.store.SearchExercises(r.Context(), filter)
	if !ok {
		handler.writeFailed(w, store.ScopeExerciseSearch, http.StatusBadGateway)
		return
	}
	handler.writeOK(w, exercises, http.StatusOK)
}

func (handler *Handler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "error, id NaN")
		return
	}

	exercise, ok := handler.store.GetExercise(r.Context(), id)
	if !ok {
		statusCode := http.StatusBadGateway
		if handler.store.NotFound(store.ScopeExerciseSearch) {
			statusCode = http.StatusNotFound
		}
		handler.writeFailed(w, store.ScopeExerciseSearch, statusCode)
		return
	}
	handler.writeOK(w, exercise, http.StatusOK)
}

func (handler *Handler) HandleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var ne workouts.NewExercise
	if err := decodeBody(r, &ne); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	exercise, ok := handler.store.CreateExercise(r.Context(), ne)
	if !ok {
		handler.writeFailed(w, store.ScopeForm, http.StatusUnprocessableEntity)
		return
	}
	handler.writeOK(w, exercise, http.StatusCreated)
}

func (handler *Handler) HandleListVariationTypes(w http.ResponseWriter, r *http.Request) {
	handler.writeOK(w, handler.store.VariationTypes(), http.StatusOK)
}

func (handler *Handler) HandleCreateVariationType(w http.ResponseWriter, r *http.Request) {
	var nv workouts.NewVariationType
	if err := decodeBody(r, &nv); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	vt, ok := handler.store.CreateVariationType(r.Context(), nv)
	if !ok {
		handler.writeFailed(w, store.ScopeForm, http.StatusUnprocessableEntity)
		return
	}
	handler.writeOK(w, vt, http.StatusCreated)
}

func (handler *Handler) HandleDeleteVariationType(w http.ResponseWriter, r *http.Request) {
	// default variation types have negative ids
	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "error, id NaN")
		return
	}

	if !handler.store.DeleteVariationType(r.Context(), id) {
		handler.writeFailed(w, store.ScopeForm, http.StatusUnprocessableEntity)
		return
	}
	handler.writeOK(w, map[string]int{"deleted": id}, http.StatusOK)
}

func (handler *Handler) HandleListVariations(w http.ResponseWriter, r *http.Request) {
	exerciseID, err := queryID(r, "exercise_id")
	if err != nil {
		writeBadRequest(w, "error, exercise_id NaN")
		return
	}
	routineID, err := queryID(r, "routine_id")
	if err != nil {
		writeBadRequest(w, "error, routine_id NaN")
		return
	}

	filter := store.VariationFilter{
		ExerciseID:    exerciseID,
		RoutineID:     routineID,
		VariationType: r.URL.Query().Get("variation_type"),
		Search:        r.URL.Query().Get("search"),
	}
	handler.writeOK(w, handler.store.Snapshot().Variations(filter), http.StatusOK)
}
