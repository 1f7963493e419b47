package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/middleware"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/store"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/metrics"
	"github.com/DrakeDamon/Workout-tracker-phase-4/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const LoginPath = "/login"

// Server exposes one Store, so it serves the session of a single user. It is meant to
// listen on loopback only, next to the browser that uses it.
type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	store          *store.Store
	allowedOrigins []string
	versionInfo    string
	metricsAddr    string

	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Store          *store.Store
	AllowedOrigins []string
	VersionInfo    string
	// MetricsAddr is where /metrics is served; empty disables the metrics listener.
	MetricsAddr    string
	MetricsManager *metrics.Manager
	PromRegistry   *prometheus.Registry
	OtelShutdown   func()
}

func NewServer(params NewServerParams) *Server {
	metricsManager := params.MetricsManager
	if metricsManager == nil {
		metricsManager = metrics.NewTestManager()
	}
	return &Server{
		store:          params.Store,
		allowedOrigins: params.AllowedOrigins,
		versionInfo:    params.VersionInfo,
		metricsAddr:    params.MetricsAddr,
		metricsManager: metricsManager,
		promRegistry:   params.PromRegistry,
		otelShutdown:   params.OtelShutdown,
	}
}

// Router wires the views of the store with the middleware chain.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("view-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "OPTIONS")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET", "OPTIONS")

	handler := NewHandler(s.store)
	handler.SetupRoutes(r)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSON(w, envelope{Error: "not found"}, http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSON(w, envelope{Error: "method not allowed"}, http.StatusMethodNotAllowed)
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.store, LoginPath)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	// answers preflight requests, so every route also accepts OPTIONS
	r.Use(middleware.Cors(s.allowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(middleware.DefaultMaxRequestBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.Router(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	go func() {
		log.Infof(" > view server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("view server, listen and serve: %s", err)
		}
	}()

	if s.metricsAddr == "" || s.promRegistry == nil {
		log.Debugln("metrics server disabled")
		return
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	s.metricsHttpServer = &http.Server{
		Addr:    s.metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > metrics listening on: [%s]", s.metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debugln("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.otelShutdown != nil {
		s.otelShutdown()
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown view server")
		}
		log.Warnln("view server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
