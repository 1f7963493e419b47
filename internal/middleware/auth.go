package middleware

import (
	"net/http"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/tracing"
	"github.com/DrakeDamon/Workout-tracker-phase-4/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=auth.go -destination=auth_mocks_test.go -package=middleware_test

type sessionChecker interface {
	Authenticated() bool
}

// AuthMiddlewareHandler keeps logged out users away from the views that need a session.
// They get a 401 telling them where to log in.
type AuthMiddlewareHandler struct {
	sessionChecker sessionChecker
	loginPath      string
	allowedPaths   map[string]bool
}

func NewAuthMiddlewareHandler(sessionChecker sessionChecker, loginPath string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		sessionChecker: sessionChecker,
		loginPath:      loginPath,
		allowedPaths: map[string]bool{
			"/":        true,
			"/state":   true,
			"/login":   true,
			"/logout":  true,
			"/version": true,
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	return h.allowedPaths[path]
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions || h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			if !h.sessionChecker.Authenticated() {
				log.Tracef("[not logged in] [auth middleware] redirect to login => %s", r.URL.Path)
				pkg.WriteJSON(w, map[string]any{
					"ok":       false,
					"error":    "Please log in",
					"redirect": h.loginPath,
				}, http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
