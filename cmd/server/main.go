package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/startline/internal/config"
	"github.com/iudanet/startline/internal/metrics"
	"github.com/iudanet/startline/internal/server"
	"github.com/iudanet/startline/internal/server/broadcast"
	"github.com/iudanet/startline/internal/server/handlers"
	"github.com/iudanet/startline/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	dotenvErr := config.LoadDotEnv()

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	if dotenvErr != nil {
		logger.Debug("Failed to load .env", "error", dotenvErr)
	}

	args := flag.Args()
	if len(args) > 0 && args[0] == "token" {
		err = issueToken(cfg, args[1:])
	} else {
		err = serve(cfg, logger)
	}
	if err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// serve поднимает HTTP сервер и блокируется до SIGINT/SIGTERM
func serve(cfg *config.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	var publisher broadcast.Publisher = broadcast.NopPublisher{}
	if cfg.NATSURL != "" {
		nats, err := broadcast.Connect(cfg.NATSURL, cfg.NATSSubject, logger)
		if err != nil {
			return err
		}
		publisher = nats
	} else {
		logger.Info("NATS URL not set, live tracking fan-out disabled")
	}
	defer publisher.Close()

	router := server.NewRouter(server.Deps{
		Logger:    logger,
		Store:     store,
		Publisher: publisher,
		Clock:     clockwork.NewRealClock(),
		Metrics:   metrics.NewServer(),
		JWT: handlers.JWTConfig{
			Secret:         []byte(cfg.JWTSecret),
			AccessTokenTTL: cfg.JWTTTL,
		},
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Startline server listening", "addr", cfg.Addr, "db", cfg.DBPath, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// issueToken печатает JWT для станции старта:
//
//	server token -organizer finish-1 -name "Finish line"
func issueToken(cfg *config.Server, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	organizer := fs.String("organizer", "", "Organizer (station) id")
	name := fs.String("name", "", "Display name of the station")
	ttl := fs.Duration("ttl", cfg.JWTTTL, "Token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *organizer == "" {
		return errors.New("token: -organizer is required")
	}

	token, expiresIn, err := handlers.GenerateAccessToken(handlers.JWTConfig{
		Secret:         []byte(cfg.JWTSecret),
		AccessTokenTTL: *ttl,
	}, *organizer, *name)
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires in %s\n", time.Duration(expiresIn)*time.Second)
	return nil
}

func printVersion() {
	fmt.Printf("Startline Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
