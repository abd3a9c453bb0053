package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const shellPrompt = "startline> "

// Serve reads commands from the operator until quit, EOF or ctx is done.
// The press time of every line is taken as soon as it is read, before the
// command is parsed. Command errors are printed and do not end the loop.
func (c *Cli) Serve(ctx context.Context) error {
	c.io.Println("Commands: capture, correct, status, list, sync, resync, offset, quit")

	for ctx.Err() == nil {
		line, err := c.io.ReadInput(shellPrompt)
		pressed := c.clock.Now()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "run":
			c.io.Println("Already running.")
			continue
		}

		c.SetPressTime(pressed)
		if err := c.Run(ctx, fields[0], fields[1:]); err != nil {
			c.io.Printf("Error: %v\n", err)
		}
	}
	return nil
}
