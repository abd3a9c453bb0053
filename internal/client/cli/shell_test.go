package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/startline/internal/client/iocli"
)

func TestCli_SetPressTime(t *testing.T) {
	tc := newTestCli(t, false)
	ctx := context.Background()

	// Кнопка нажата в 09:00:02 по локальным часам, команда выполнена позже
	tc.cli.SetPressTime(tc.clock.Now())
	tc.clock.Advance(3 * time.Second)

	require.NoError(t, tc.cli.Run(ctx, "capture", []string{"race-1", "10k"}))
	first := tc.outbox.GetStatusFor("10k")
	require.NotNil(t, first)
	assert.True(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC).Equal(first.CapturedTimestamp))

	// Следующая команда снова читает часы
	require.NoError(t, tc.cli.Run(ctx, "capture", []string{"race-1", "5k"}))
	second := tc.outbox.GetStatusFor("5k")
	require.NotNil(t, second)
	assert.True(t, time.Date(2024, 1, 15, 9, 0, 3, 0, time.UTC).Equal(second.CapturedTimestamp))
}

func TestCli_Serve(t *testing.T) {
	tc := newTestCli(t, false, "", "capture race-1 10k=10K", "bogus", "run", "list", "quit")

	require.NoError(t, tc.cli.Serve(context.Background()))

	entries := tc.outbox.List()
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"10k"}, entries[0].TargetIDs)
	assert.Len(t, tc.sync.SyncImmediatelyCalls(), 1)

	output := tc.out.String()
	assert.Contains(t, output, "Start captured at 2024-01-15 09:00:00.000 UTC")
	assert.Contains(t, output, "Error: unknown command: bogus")
	assert.Contains(t, output, "Already running.")
	assert.Contains(t, output, entries[0].ID)
}

func TestCli_Serve_KeepsPressTimeThroughConfirmation(t *testing.T) {
	tc := newTestCli(t, true)

	lines := []string{"capture race-1 10k", "quit"}
	tc.cli.io.(*iocli.IOMock).ReadInputFunc = func(prompt string) (string, error) {
		if strings.HasSuffix(prompt, "[Y/n]: ") {
			// Оператор подтверждает спустя 5 секунд
			tc.clock.Advance(5 * time.Second)
			return "y", nil
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}

	require.NoError(t, tc.cli.Serve(context.Background()))

	entries := tc.outbox.List()
	require.Len(t, entries, 1)
	assert.True(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC).Equal(entries[0].CapturedTimestamp))
}

func TestCli_Serve_Stops(t *testing.T) {
	t.Run("eof", func(t *testing.T) {
		tc := newTestCli(t, false)
		tc.cli.io.(*iocli.IOMock).ReadInputFunc = func(prompt string) (string, error) {
			return "", io.EOF
		}
		assert.NoError(t, tc.cli.Serve(context.Background()))
	})

	t.Run("read error", func(t *testing.T) {
		tc := newTestCli(t, false)
		tc.cli.io.(*iocli.IOMock).ReadInputFunc = func(prompt string) (string, error) {
			return "", errors.New("input closed")
		}
		assert.ErrorContains(t, tc.cli.Serve(context.Background()), "input closed")
	})

	t.Run("cancelled context", func(t *testing.T) {
		tc := newTestCli(t, false, "list")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, tc.cli.Serve(ctx))
		assert.Empty(t, tc.cli.io.(*iocli.IOMock).ReadInputCalls())
	})
}
