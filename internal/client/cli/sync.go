package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/startline/internal/client/sync"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	result, err := c.syncService.SyncPendingStarts(ctx)
	if err != nil {
		if errors.Is(err, sync.ErrOffline) {
			return fmt.Errorf("server is not reachable, starts stay queued locally")
		}
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Printf("Attempted: %d\n", result.Attempted)
	c.io.Printf("Synced:    %d\n", result.Synced)
	if result.Failed > 0 {
		c.io.Printf("Failed:    %d (will be retried)\n", result.Failed)
		return nil
	}

	c.io.Println()
	c.io.Println("✓ Synchronization completed successfully!")
	return nil
}

func (c *Cli) runResync(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: startline resync <id>")
	}

	if err := c.syncService.ForceSync(ctx, args[0]); err != nil {
		return fmt.Errorf("resync failed: %w", err)
	}

	c.io.Printf("✓ Entry %s synced\n", args[0])
	return nil
}

func (c *Cli) runOffset(ctx context.Context) error {
	offset, err := c.estimator.EstimateOffset(ctx)
	if err != nil {
		c.io.Printf("⚠️  Estimation failed: %v\n", err)
		c.io.Printf("Keeping previous offset: %d ms\n", offset.Milliseconds())
		return nil
	}

	c.io.Printf("Clock offset: %d ms\n", offset.Milliseconds())
	switch {
	case offset > 0:
		c.io.Println("Local clock is ahead of the server.")
	case offset < 0:
		c.io.Println("Local clock is behind the server.")
	}
	return nil
}
