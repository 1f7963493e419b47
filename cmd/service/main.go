package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/api"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/config"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/logging"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/store"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/metrics"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/telemetry/tracing"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/web"
	"github.com/DrakeDamon/Workout-tracker-phase-4/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "workouts-client",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using backend api: [%s]", cfg.ApiBaseURL)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	otelShutdown, err := tracing.HoneycombSetup(honeycombEnabled, "workouts-client")
	if err != nil {
		log.Fatalf("tracing setup: %s", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("workouts", "client", promRegistry)

	apiClient, err := api.NewClient(api.Params{
		BaseURL:        cfg.ApiBaseURL,
		Timeout:        cfg.ApiTimeout(),
		RetryDelay:     cfg.ApiRetryDelay(),
		MetricsManager: metricsManager,
	})
	if err != nil {
		log.Fatalf("new api client: %s", err)
	}

	workoutStore := store.New(apiClient, store.Params{
		UseUserDataEndpoint:    cfg.UseUserDataEndpoint,
		ExerciseSearchCacheTTL: time.Duration(cfg.ExerciseSearchCacheTTL) * time.Second,
		MetricsManager:         metricsManager,
	})

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	initTimeout := cfg.ApiTimeout()
	if initTimeout <= 0 {
		initTimeout = api.DefaultTimeout
	}
	// check-auth and the initial load, retries included
	initCtx, initCancel := context.WithTimeout(context.Background(), 4*initTimeout)
	if !workoutStore.Init(initCtx) {
		// not fatal, the views offer a manual retry
		log.Errorf("store init failed: auth [%s], initial load [%s]",
			workoutStore.Error(store.ScopeAuth), workoutStore.Error(store.ScopeInitial))
	}
	initCancel()

	metricsAddr := ""
	if cfg.PrometheusMetricsPort != "" {
		metricsAddr = net.JoinHostPort(cfg.PrometheusMetricsHost, cfg.PrometheusMetricsPort)
	}

	server := web.NewServer(web.NewServerParams{
		Store:          workoutStore,
		AllowedOrigins: cfg.AllowedOrigins,
		VersionInfo:    versionInfo,
		MetricsAddr:    metricsAddr,
		MetricsManager: metricsManager,
		PromRegistry:   promRegistry,
		OtelShutdown:   otelShutdown,
	})
	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)

	// go to sleep 🥱
	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
