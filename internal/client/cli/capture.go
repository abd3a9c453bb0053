package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/startline/internal/client/iocli"
	"github.com/iudanet/startline/internal/client/outbox"
	"github.com/iudanet/startline/internal/client/sync"
)

// runCapture фиксирует старт. Момент фиксации берется до разбора аргументов
// и до подтверждения, чтобы задержка оператора не попала во время старта.
func (c *Cli) runCapture(ctx context.Context, args []string) error {
	local := c.pressTime()

	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.SetOutput(c.io)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: startline capture [-y] <group> <target>[=<name>]...")
	}

	group := fs.Arg(0)
	targets, names, err := parseTargets(fs.Args()[1:])
	if err != nil {
		return err
	}

	corrected := c.estimator.CorrectTimestamp(local)

	if !*yes && c.io.IsInteractive() {
		ok, err := iocli.Confirm(c.io, fmt.Sprintf("Register start of %s for %s at %s?",
			group, strings.Join(targets, ", "), formatTime(corrected)))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			c.io.Println("Cancelled, nothing recorded.")
			return nil
		}
	}

	entry, err := c.outbox.Register(ctx, outbox.RegisterRequest{
		EventGroupID:      group,
		TargetIDs:         targets,
		TargetNames:       names,
		CapturedTimestamp: corrected,
	})
	if err != nil {
		return fmt.Errorf("failed to record start: %w", err)
	}

	c.io.Printf("✓ Start captured at %s\n", formatTime(entry.CapturedTimestamp))
	c.io.Printf("  Entry:  %s\n", entry.ID)
	c.io.Printf("  Offset: %d ms\n", c.estimator.Offset().Milliseconds())

	c.trySync(ctx, entry.ID)
	return nil
}

// runCorrect ставит в очередь правку уже существующих записей старта
func (c *Cli) runCorrect(ctx context.Context, args []string) error {
	local := c.pressTime()

	fs := flag.NewFlagSet("correct", flag.ContinueOnError)
	fs.SetOutput(c.io)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	at := fs.String("at", "", "Official start time (RFC3339); default is now")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: startline correct [-y] [--at TIME] <group> <target>=<recordID>...")
	}

	group := fs.Arg(0)
	targets, records, err := parsePairs(fs.Args()[1:])
	if err != nil {
		return err
	}

	startTime := c.estimator.CorrectTimestamp(local)
	if *at != "" {
		startTime, err = time.Parse(time.RFC3339Nano, *at)
		if err != nil {
			return fmt.Errorf("invalid --at time %q: %w", *at, err)
		}
	}

	if !*yes && c.io.IsInteractive() {
		ok, err := iocli.Confirm(c.io, fmt.Sprintf("Correct start of %s for %s to %s?",
			group, strings.Join(targets, ", "), formatTime(startTime)))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			c.io.Println("Cancelled, nothing recorded.")
			return nil
		}
	}

	entry, err := c.outbox.Register(ctx, outbox.RegisterRequest{
		EventGroupID:      group,
		TargetIDs:         targets,
		CorrectionTargets: records,
		IsCorrection:      true,
		CapturedTimestamp: startTime,
	})
	if err != nil {
		return fmt.Errorf("failed to record correction: %w", err)
	}

	c.io.Printf("✓ Correction queued: %s\n", formatTime(entry.CapturedTimestamp))
	c.io.Printf("  Entry: %s\n", entry.ID)

	c.trySync(ctx, entry.ID)
	return nil
}

// trySync делает одну попытку синхронизации. Ошибка не возвращается:
// запись уже надежно сохранена и будет отправлена позже.
func (c *Cli) trySync(ctx context.Context, id string) {
	err := c.syncService.SyncImmediately(ctx, id)
	switch {
	case err == nil:
		c.io.Println("✓ Synced with server")
	case errors.Is(err, sync.ErrOffline):
		c.io.Println("⚠️  Server is offline. The start is saved locally and will sync automatically.")
	case errors.Is(err, sync.ErrSyncInProgress):
		c.io.Println("Queued behind a running sync.")
	default:
		c.io.Printf("⚠️  Sync failed: %v\n", err)
		c.io.Println("The start is saved locally and will be retried.")
	}
}

// parseTargets разбирает аргументы вида target или target=name
func parseTargets(args []string) ([]string, map[string]string, error) {
	targets := make([]string, 0, len(args))
	names := make(map[string]string)

	for _, arg := range args {
		target, name, _ := strings.Cut(arg, "=")
		target = strings.TrimSpace(target)
		if target == "" {
			return nil, nil, fmt.Errorf("invalid target %q", arg)
		}
		targets = append(targets, target)
		if name = strings.TrimSpace(name); name != "" {
			names[target] = name
		}
	}
	return targets, names, nil
}

// parsePairs разбирает аргументы вида target=recordID
func parsePairs(args []string) ([]string, []string, error) {
	targets := make([]string, 0, len(args))
	records := make([]string, 0, len(args))

	for _, arg := range args {
		target, record, ok := strings.Cut(arg, "=")
		if !ok || target == "" || record == "" {
			return nil, nil, fmt.Errorf("invalid correction %q, expected <target>=<recordID>", arg)
		}
		targets = append(targets, target)
		records = append(records, record)
	}
	return targets, records, nil
}
