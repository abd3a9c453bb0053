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

	"github.com/iudanet/startline/internal/client/api"
	"github.com/iudanet/startline/internal/client/cli"
	"github.com/iudanet/startline/internal/client/connectivity"
	"github.com/iudanet/startline/internal/client/events"
	"github.com/iudanet/startline/internal/client/iocli"
	"github.com/iudanet/startline/internal/client/outbox"
	"github.com/iudanet/startline/internal/client/storage/boltdb"
	"github.com/iudanet/startline/internal/client/sync"
	"github.com/iudanet/startline/internal/clockoffset"
	"github.com/iudanet/startline/internal/config"
	"github.com/iudanet/startline/internal/metrics"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Момент нажатия фиксируется до любого ввода-вывода
	pressedAt := time.Now()

	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	if err := run(pressedAt, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(pressedAt time.Time, command string, args []string) error {
	dotenvErr := config.LoadDotEnv()

	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	if dotenvErr != nil {
		logger.Debug("Failed to load .env", "error", dotenvErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	clock := clockwork.NewRealClock()
	bus := events.NewBus()
	m := metrics.NewClient()
	apiClient := api.NewClient(cfg.ServerURL, cfg.AccessToken)

	estimator := clockoffset.NewEstimator(apiClient, boltStorage, clock, cfg.Estimator(), logger, m, bus)
	if err := estimator.Init(ctx); err != nil {
		return err
	}

	box := outbox.New(boltStorage, clock, logger, bus, m)
	if err := box.Load(ctx); err != nil {
		return err
	}
	defer box.Close()

	monitor := connectivity.NewMonitor(apiClient, clock, cfg.ConnectivityInterval, logger, bus)
	engine := sync.NewEngine(apiClient, box, monitor, clock, cfg.Sync(), logger, m, bus)
	defer engine.Close()

	stdio := iocli.NewStdio()
	c := cli.New(stdio, clock, box, estimator, engine, cfg.MaxRetries)

	if command == "run" {
		if stdio.IsInteractive() {
			// Чтение stdin не прерывается по ctx, поэтому оболочка живет вне
			// errgroup и при выходе оператора останавливает фоновые задачи
			shellCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() {
				defer cancel()
				if err := c.Serve(shellCtx); err != nil {
					logger.Error("Command prompt stopped", "error", err)
				}
			}()
			ctx = shellCtx
		}
		return runBackground(ctx, cfg, logger, bus, m, estimator, monitor, engine)
	}

	c.SetPressTime(pressedAt)
	return c.Run(ctx, command, args)
}

// runBackground держит оценку смещения, мониторинг сети и синхронизацию
// запущенными до сигнала завершения.
func runBackground(
	ctx context.Context,
	cfg *config.Client,
	logger *slog.Logger,
	bus *events.Bus,
	m *metrics.Client,
	estimator *clockoffset.Estimator,
	monitor *connectivity.Monitor,
	engine *sync.Engine,
) error {
	reconnects, unsubscribe := bus.Notify(events.TopicOnline)
	defer unsubscribe()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		estimator.Run(ctx, reconnects)
		return nil
	})
	g.Go(func() error {
		monitor.Run(ctx)
		return nil
	})
	g.Go(func() error {
		engine.Run(ctx)
		return nil
	})

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           m.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("Serving client metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	logger.Info("Start-control client running", "server", cfg.ServerURL)
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Start-control client stopped")
	return nil
}

func printVersion() {
	fmt.Printf("Startline Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
