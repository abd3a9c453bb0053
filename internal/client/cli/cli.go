// Package cli implements the start-control commands: capturing a start,
// correcting it, and inspecting or driving the outbox.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iudanet/startline/internal/client/iocli"
	"github.com/iudanet/startline/internal/client/outbox"
	"github.com/iudanet/startline/internal/client/sync"
	"github.com/iudanet/startline/internal/clockoffset"
)

// timeLayout формат времени старта в выводе, с миллисекундами
const timeLayout = "2006-01-02 15:04:05.000 MST"

type Cli struct {
	io          iocli.IO
	clock       clockwork.Clock
	outbox      *outbox.Outbox
	estimator   *clockoffset.Estimator
	syncService sync.Service
	pressedAt   time.Time
	maxRetries  int
}

func New(
	io iocli.IO,
	clock clockwork.Clock,
	box *outbox.Outbox,
	estimator *clockoffset.Estimator,
	syncService sync.Service,
	maxRetries int,
) *Cli {
	return &Cli{
		io:          io,
		clock:       clock,
		outbox:      box,
		estimator:   estimator,
		syncService: syncService,
		maxRetries:  maxRetries,
	}
}

// SetPressTime fixes the local instant the next capture or correction is
// recorded at. It is consumed by one command; without it the command reads
// the clock itself.
func (c *Cli) SetPressTime(t time.Time) {
	c.pressedAt = t
}

func (c *Cli) pressTime() time.Time {
	if c.pressedAt.IsZero() {
		return c.clock.Now()
	}
	return c.pressedAt
}

// Run executes one command
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	// Момент нажатия действует только на одну команду
	defer c.SetPressTime(time.Time{})

	switch command {
	case "capture":
		return c.runCapture(ctx, args)
	case "correct":
		return c.runCorrect(ctx, args)
	case "status":
		return c.runStatus(ctx, args)
	case "list":
		return c.runList(ctx)
	case "sync":
		return c.runSync(ctx)
	case "resync":
		return c.runResync(ctx, args)
	case "offset":
		return c.runOffset(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func PrintUsage() {
	fmt.Println("Startline start-control client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  startline [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version                    Show version information")
	fmt.Println()
	fmt.Println("Configuration (environment or YAML file in STARTLINE_CONFIG):")
	fmt.Println("  STARTLINE_SERVER_URL         Server URL (default: http://localhost:8080)")
	fmt.Println("  STARTLINE_ACCESS_TOKEN       Organizer token issued by 'startline-server token'")
	fmt.Println("  STARTLINE_DB_PATH            Local database (default: startline-client.db)")
	fmt.Println("  STARTLINE_METRICS_ADDR       Expose metrics in 'run' mode, e.g. :9100")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  capture [-y] <group> <target>[=<name>]...")
	fmt.Println("                          Capture a start now for one or more targets")
	fmt.Println("  correct [-y] [--at TIME] <group> <target>=<recordID>...")
	fmt.Println("                          Correct existing start records (TIME is RFC3339)")
	fmt.Println("  status [target]         Show clock offset and outbox state")
	fmt.Println("  list                    List outbox entries")
	fmt.Println("  sync                    Sync all pending starts now")
	fmt.Println("  resync <id>             Force a failed entry back into sync")
	fmt.Println("  offset                  Estimate clock offset now")
	fmt.Println("  run                     Station daemon: offset, connectivity, sync; on a")
	fmt.Println("                          terminal it also reads commands from a prompt")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  startline capture race-2024 10k=\"10K\" 5k=\"5K\"")
	fmt.Println("  startline correct --at 2024-01-15T09:00:01.500Z race-2024 10k=3f2a...")
	fmt.Println("  startline status 10k")
}
