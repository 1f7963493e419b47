package devbackend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/workouts"
	"github.com/DrakeDamon/Workout-tracker-phase-4/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"golang.org/x/crypto/bcrypt"
)

const SessionCookieName = "session"

type User struct {
	workouts.User
	PasswordHash string
}

// NewUser hashes the password with the minimal bcrypt cost; it is meant for dev and test users only.
func NewUser(id int, username, email, password string) (User, error) {
	hash, err := pkg.HashPasswordWithCost(password, bcrypt.MinCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password of [%s]: %w", username, err)
	}
	return User{
		User: workouts.User{
			ID:       id,
			Username: username,
			Email:    email,
		},
		PasswordHash: hash,
	}, nil
}

type Params struct {
	Users      []User
	Exercises  []workouts.NewExercise
	SessionTTL time.Duration
	// DisableUserData turns off the /user-data bootstrap endpoint (it answers 404).
	DisableUserData bool
}

// Server is an in-memory implementation of the workouts REST API.
type Server struct {
	repo            *repo
	sessions        *SessionService
	users           map[string]User
	disableUserData bool

	httpServer *http.Server
}

func NewServer(params Params) *Server {
	exercises := params.Exercises
	if exercises == nil {
		exercises = SeedExercises()
	}
	ttl := params.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	users := make(map[string]User, len(params.Users))
	for _, u := range params.Users {
		users[u.Username] = u
	}

	return &Server{
		repo:            newRepo(exercises, workouts.DefaultVariationTypes()),
		sessions:        NewSessionService(ttl),
		users:           users,
		disableUserData: params.DisableUserData,
	}
}

// Router serves the API under the /api prefix.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("workouts-dev-backend"))

	apiRouter := r.PathPrefix("/api").Subrouter()
	h := newHandler(s.repo, s.sessions, s.users, s.disableUserData)
	h.setupRoutes(apiRouter)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Not found", http.StatusNotFound)
	})

	return r
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	s.httpServer = &http.Server{
		Handler:      s.Router(),
		Addr:         ipAndPort,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		log.Infof(" > dev backend listening on: [%s]", ipAndPort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("dev backend server error: %s", err)
		}
	}()
}

func (s *Server) GracefulShutdown() {
	if s.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Errorf("dev backend shutdown: %s", err)
	}
	log.Debugln("dev backend shut down")
}

// CleanSessionsPeriodically drops expired sessions until ctx is done.
func (s *Server) CleanSessionsPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.sessions.ScanAndClean(); removed > 0 {
				log.Infof("dev backend: %d expired sessions removed", removed)
			}
		}
	}
}
