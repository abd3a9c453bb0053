package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/iudanet/startline/internal/models"
)

func (c *Cli) runStatus(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return c.printTargetStatus(args[0])
	}

	c.io.Println("=== Start Control Status ===")
	c.io.Println()

	state := c.estimator.State()
	c.io.Printf("Clock offset: %d ms\n", state.Offset.Milliseconds())
	if state.LastSyncAt != nil {
		c.io.Printf("Estimated at: %s\n", formatTime(*state.LastSyncAt))
	} else {
		c.io.Println("Estimated at: never (run 'startline offset')")
	}
	c.io.Println()

	counts := make(map[models.StartStatus]int)
	exhausted := 0
	for _, e := range c.outbox.List() {
		counts[e.Status]++
		if e.Exhausted(c.maxRetries) {
			exhausted++
		}
	}

	c.io.Printf("Pending: %d  Syncing: %d  Synced: %d  Error: %d\n",
		counts[models.StatusPending], counts[models.StatusSyncing],
		counts[models.StatusSynced], counts[models.StatusError])

	if exhausted > 0 {
		c.io.Printf("⚠️  %d entr(ies) reached the retry limit. Use 'startline resync <id>'.\n", exhausted)
	} else if counts[models.StatusPending]+counts[models.StatusError] == 0 {
		c.io.Println("✓ All starts synchronized with server")
	}
	return nil
}

func (c *Cli) printTargetStatus(targetID string) error {
	entry := c.outbox.GetStatusFor(targetID)
	if entry == nil {
		c.io.Printf("No pending start for %s\n", targetID)
		return nil
	}

	c.io.Printf("Target:   %s\n", targetID)
	c.io.Printf("Entry:    %s\n", entry.ID)
	c.io.Printf("Status:   %s\n", entry.Status)
	c.io.Printf("Start:    %s\n", formatTime(entry.CapturedTimestamp))
	c.io.Printf("Retries:  %d/%d\n", entry.RetryCount, c.maxRetries)
	if entry.LastError != "" {
		c.io.Printf("Error:    %s\n", entry.LastError)
	}
	return nil
}

func (c *Cli) runList(ctx context.Context) error {
	entries := c.outbox.List()
	if len(entries) == 0 {
		c.io.Println("Outbox is empty")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGROUP\tTARGETS\tSTART\tSTATUS\tRETRIES\tKIND")
	for _, e := range entries {
		kind := "start"
		if e.IsCorrection {
			kind = "correction"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			e.ID, e.EventGroupID, strings.Join(e.TargetIDs, ","),
			formatTime(e.CapturedTimestamp), e.Status, e.RetryCount, kind)
	}
	return w.Flush()
}
