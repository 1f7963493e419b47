package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/devbackend"
	"github.com/DrakeDamon/Workout-tracker-phase-4/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting dev backend ...")

	host := flag.String("host", "localhost", "host to listen on")
	port := flag.Int("port", 5555, "port to listen on")
	logLevel := flag.String("loglvl", "debug", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    *logLevel,
	})

	username := os.Getenv("WORKOUTS_DEV_USERNAME")
	password := os.Getenv("WORKOUTS_DEV_PASSWORD")
	if username == "" || password == "" {
		log.Warnln("dev user not set, use WORKOUTS_DEV_USERNAME and WORKOUTS_DEV_PASSWORD; using demo/demo")
		username, password = "demo", "demo"
	}

	user, err := devbackend.NewUser(1, username, username+"@localhost", password)
	if err != nil {
		log.Fatalf("create dev user: %s", err)
	}

	server := devbackend.NewServer(devbackend.Params{
		Users: []devbackend.User{user},
	})

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go server.CleanSessionsPeriodically(ctx, 10*time.Minute)

	server.Serve(*host, *port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}
