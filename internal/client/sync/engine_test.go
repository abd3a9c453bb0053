package sync

import (
	"context"
	"errors"
	"log/slog"
	"os"
	stdsync "sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/startline/internal/client/api"
	"github.com/iudanet/startline/internal/client/events"
	"github.com/iudanet/startline/internal/client/outbox"
	"github.com/iudanet/startline/internal/client/storage"
	"github.com/iudanet/startline/internal/clockoffset"
	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testConfig отключает задержки, чтобы тесты не зависели от таймеров
func testConfig() Config {
	return Config{
		MaxRetries:  5,
		BaseBackoff: 0,
		RetryDelay:  0,
		PurgeDelay:  3 * time.Second,
		Interval:    30 * time.Second,
	}
}

// fakeRemote имитирует серверное хранилище стартов с уникальностью по target_id
type fakeRemote struct {
	records map[string]*models.StartRecord // target_id -> запись
	byID    map[string]*models.StartRecord
	mu      stdsync.Mutex
}

func newFakeRemote() (*fakeRemote, *RemoteStoreMock) {
	f := &fakeRemote{
		records: make(map[string]*models.StartRecord),
		byID:    make(map[string]*models.StartRecord),
	}
	mock := &RemoteStoreMock{
		FindStartByTargetFunc: func(ctx context.Context, targetID string) (*models.StartRecord, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			rec, ok := f.records[targetID]
			if !ok {
				return nil, &clientapi.StatusError{StatusCode: 404, Message: "start not found"}
			}
			c := *rec
			return &c, nil
		},
		CreateStartFunc: func(ctx context.Context, req api.CreateStartRequest) (*models.StartRecord, error) {
			return f.create(req.TargetID, req.EventGroupID, req.Name, req.StartTime), nil
		},
		UpdateStartTimeFunc: func(ctx context.Context, id string, startTime time.Time) (*models.StartRecord, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			rec, ok := f.byID[id]
			if !ok {
				return nil, &clientapi.StatusError{StatusCode: 404, Message: "start not found"}
			}
			rec.StartTime = startTime
			c := *rec
			return &c, nil
		},
	}
	return f, mock
}

func (f *fakeRemote) create(targetID, group, name string, startTime time.Time) *models.StartRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := &models.StartRecord{
		ID:           "rec-" + targetID,
		TargetID:     targetID,
		EventGroupID: group,
		Name:         name,
		StartTime:    startTime,
	}
	f.records[targetID] = rec
	f.byID[rec.ID] = rec
	c := *rec
	return &c
}

func (f *fakeRemote) get(targetID string) (models.StartRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[targetID]
	if !ok {
		return models.StartRecord{}, false
	}
	return *rec, true
}

func memoryOutboxStorage() *storage.OutboxStorageMock {
	var (
		mu    stdsync.Mutex
		saved []*models.PendingStartEvent
	)
	return &storage.OutboxStorageMock{
		LoadOutboxFunc: func(ctx context.Context) ([]*models.PendingStartEvent, error) {
			mu.Lock()
			defer mu.Unlock()
			return saved, nil
		},
		SaveOutboxFunc: func(ctx context.Context, entries []*models.PendingStartEvent) error {
			mu.Lock()
			defer mu.Unlock()
			saved = entries
			return nil
		},
	}
}

type testEnv struct {
	clock  *clockwork.FakeClock
	outbox *outbox.Outbox
	remote *RemoteStoreMock
	fake   *fakeRemote
	bus    *events.Bus
	engine *Engine
}

func newTestEnv(t *testing.T, cfg Config, conn Connectivity) *testEnv {
	t.Helper()

	clock := clockwork.NewFakeClock()
	bus := events.NewBus()
	box := outbox.New(memoryOutboxStorage(), clock, setupTestLogger(), bus, nil)
	require.NoError(t, box.Load(context.Background()))
	t.Cleanup(box.Close)

	fake, remote := newFakeRemote()
	engine := NewEngine(remote, box, conn, clock, cfg, setupTestLogger(), nil, bus)
	t.Cleanup(engine.Close)

	return &testEnv{clock: clock, outbox: box, remote: remote, fake: fake, bus: bus, engine: engine}
}

func (env *testEnv) register(t *testing.T, ts time.Time, targets ...string) *models.PendingStartEvent {
	t.Helper()
	entry, err := env.outbox.Register(context.Background(), outbox.RegisterRequest{
		EventGroupID:      "race-1",
		TargetIDs:         targets,
		CapturedTimestamp: ts,
	})
	require.NoError(t, err)
	return entry
}

func (env *testEnv) status(t *testing.T, id string) *models.PendingStartEvent {
	t.Helper()
	entry, err := env.outbox.Get(id)
	require.NoError(t, err)
	return entry
}

var startTime = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func TestBackoff(t *testing.T) {
	tests := []struct {
		retryCount int
		expected   time.Duration
	}{
		{retryCount: 0, expected: 0},
		{retryCount: 1, expected: time.Second},
		{retryCount: 2, expected: 2 * time.Second},
		{retryCount: 3, expected: 4 * time.Second},
		{retryCount: 5, expected: 16 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Backoff(time.Second, tt.retryCount), "retry %d", tt.retryCount)
	}
	assert.Equal(t, time.Duration(0), Backoff(0, 3))
}

func TestSyncEntry_FindOrCreate(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	ctx := context.Background()

	// d2 уже существует на сервере
	env.fake.create("d2", "race-1", "5K", startTime.Add(-time.Hour))

	entry := env.register(t, startTime, "d1", "d2")
	require.NoError(t, env.engine.SyncEntry(ctx, entry.ID))

	require.Len(t, env.remote.CreateStartCalls(), 1)
	create := env.remote.CreateStartCalls()[0].Req
	assert.Equal(t, "d1", create.TargetID)
	assert.Equal(t, "race-1", create.EventGroupID)
	assert.Equal(t, "Start d1", create.Name)
	assert.True(t, startTime.Equal(create.StartTime))

	require.Len(t, env.remote.UpdateStartTimeCalls(), 1)
	assert.Equal(t, "rec-d2", env.remote.UpdateStartTimeCalls()[0].ID)

	rec, ok := env.fake.get("d2")
	require.True(t, ok)
	assert.True(t, startTime.Equal(rec.StartTime))

	got := env.status(t, entry.ID)
	assert.Equal(t, models.StatusSynced, got.Status)
	assert.Empty(t, got.LastError)
}

func TestSyncEntry_UsesTargetNames(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)

	entry, err := env.outbox.Register(context.Background(), outbox.RegisterRequest{
		EventGroupID:      "race-1",
		TargetIDs:         []string{"d1"},
		TargetNames:       map[string]string{"d1": "Half marathon"},
		CapturedTimestamp: startTime,
	})
	require.NoError(t, err)

	require.NoError(t, env.engine.SyncEntry(context.Background(), entry.ID))
	require.Len(t, env.remote.CreateStartCalls(), 1)
	assert.Equal(t, "Half marathon", env.remote.CreateStartCalls()[0].Req.Name)
}

func TestSyncEntry_IdempotentRetryAfterPartialFailure(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	ctx := context.Background()

	// Первая попытка создания d2 падает, d1 при этом уже создан
	failD2 := true
	create := env.remote.CreateStartFunc
	env.remote.CreateStartFunc = func(ctx context.Context, req api.CreateStartRequest) (*models.StartRecord, error) {
		if req.TargetID == "d2" && failD2 {
			failD2 = false
			return nil, errors.New("connection reset")
		}
		return create(ctx, req)
	}

	entry := env.register(t, startTime, "d1", "d2")

	err := env.engine.SyncEntry(ctx, entry.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target d2")

	failed := env.status(t, entry.ID)
	assert.Equal(t, models.StatusError, failed.Status)
	assert.Equal(t, 1, failed.RetryCount)
	assert.Contains(t, failed.LastError, "connection reset")

	// d1 остается на сервере, откат не выполняется
	_, ok := env.fake.get("d1")
	assert.True(t, ok)

	require.NoError(t, env.engine.SyncEntry(ctx, entry.ID))

	// При повторе d1 найден и обновлен, а не создан заново
	var createdTargets []string
	for _, call := range env.remote.CreateStartCalls() {
		createdTargets = append(createdTargets, call.Req.TargetID)
	}
	assert.Equal(t, []string{"d1", "d2", "d2"}, createdTargets)
	assert.Len(t, env.remote.UpdateStartTimeCalls(), 1)
	assert.Equal(t, "rec-d1", env.remote.UpdateStartTimeCalls()[0].ID)

	synced := env.status(t, entry.ID)
	assert.Equal(t, models.StatusSynced, synced.Status)
	assert.Equal(t, 1, synced.RetryCount)
}

func TestSyncEntry_Correction(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	ctx := context.Background()

	env.fake.create("d1", "race-1", "10K", startTime)
	env.fake.create("d2", "race-1", "5K", startTime)

	corrected := startTime.Add(1500 * time.Millisecond)
	entry, err := env.outbox.Register(ctx, outbox.RegisterRequest{
		EventGroupID:      "race-1",
		TargetIDs:         []string{"d1", "d2"},
		CorrectionTargets: []string{"rec-d1", "rec-d2"},
		IsCorrection:      true,
		CapturedTimestamp: corrected,
	})
	require.NoError(t, err)

	require.NoError(t, env.engine.SyncEntry(ctx, entry.ID))

	// Правка идет напрямую по id, без поиска и создания
	assert.Empty(t, env.remote.FindStartByTargetCalls())
	assert.Empty(t, env.remote.CreateStartCalls())

	calls := env.remote.UpdateStartTimeCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "rec-d1", calls[0].ID)
	assert.Equal(t, "rec-d2", calls[1].ID)
	assert.True(t, corrected.Equal(calls[0].StartTime))

	rec, _ := env.fake.get("d2")
	assert.True(t, corrected.Equal(rec.StartTime))
}

func TestSyncEntry_CorrectionOfMissingRecordFails(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	ctx := context.Background()

	entry, err := env.outbox.Register(ctx, outbox.RegisterRequest{
		EventGroupID:      "race-1",
		TargetIDs:         []string{"d1"},
		CorrectionTargets: []string{"rec-missing"},
		IsCorrection:      true,
		CapturedTimestamp: startTime,
	})
	require.NoError(t, err)

	err = env.engine.SyncEntry(ctx, entry.ID)
	assert.ErrorIs(t, err, clientapi.ErrNotFound)
	assert.Empty(t, env.remote.CreateStartCalls())
	assert.Equal(t, models.StatusError, env.status(t, entry.ID).Status)
}

func TestSyncEntry_LookupFailure(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)

	env.remote.FindStartByTargetFunc = func(ctx context.Context, targetID string) (*models.StartRecord, error) {
		return nil, &clientapi.StatusError{StatusCode: 500, Message: "database locked"}
	}

	entry := env.register(t, startTime, "d1")
	err := env.engine.SyncEntry(context.Background(), entry.ID)
	require.Error(t, err)

	// Ошибка поиска не должна приводить к созданию дубликата
	assert.Empty(t, env.remote.CreateStartCalls())
	assert.Contains(t, env.status(t, entry.ID).LastError, "database locked")
}

func TestSyncEntry_ReRegisteredDuringSync(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	find := env.remote.FindStartByTargetFunc
	env.remote.FindStartByTargetFunc = func(ctx context.Context, targetID string) (*models.StartRecord, error) {
		close(entered)
		<-release
		return find(ctx, targetID)
	}

	entry := env.register(t, startTime, "d1")

	done := make(chan error, 1)
	go func() { done <- env.engine.SyncEntry(ctx, entry.ID) }()

	<-entered
	newer := startTime.Add(2 * time.Second)
	again := env.register(t, newer, "d1")
	assert.Equal(t, entry.ID, again.ID)
	close(release)

	require.NoError(t, <-done)

	// Новое время еще не отправлено, запись остается в очереди
	got := env.status(t, entry.ID)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.True(t, newer.Equal(got.CapturedTimestamp))
}

func TestSyncPendingStarts_RetryCeiling(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	ctx := context.Background()

	env.remote.FindStartByTargetFunc = func(ctx context.Context, targetID string) (*models.StartRecord, error) {
		return nil, errors.New("network unreachable")
	}

	entry := env.register(t, startTime, "d1")

	for i := 1; i <= 5; i++ {
		result, err := env.engine.SyncPendingStarts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Attempted)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, i, env.status(t, entry.ID).RetryCount)
	}

	// После пятой ошибки запись больше не выбирается автоматически
	result, err := env.engine.SyncPendingStarts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Attempted)
	assert.Len(t, env.remote.FindStartByTargetCalls(), 5)

	got := env.status(t, entry.ID)
	assert.Equal(t, models.StatusError, got.Status)
	assert.True(t, got.Exhausted(5))

	// Ручной resync возвращает запись в работу
	assert.ErrorIs(t, env.engine.SyncImmediately(ctx, entry.ID), ErrRetriesExhausted)

	env.remote.FindStartByTargetFunc = func(ctx context.Context, targetID string) (*models.StartRecord, error) {
		return nil, clientapi.ErrNotFound
	}
	require.NoError(t, env.engine.ForceSync(ctx, entry.ID))
	assert.Equal(t, models.StatusSynced, env.status(t, entry.ID).Status)
}

func TestSyncPendingStarts_SkipsWhenOffline(t *testing.T) {
	online := false
	conn := &ConnectivityMock{OnlineFunc: func() bool { return online }}
	env := newTestEnv(t, testConfig(), conn)

	entry := env.register(t, startTime, "d1")

	result, err := env.engine.SyncPendingStarts(context.Background())
	assert.ErrorIs(t, err, ErrOffline)
	assert.Nil(t, result)
	assert.Empty(t, env.remote.FindStartByTargetCalls())
	assert.Equal(t, models.StatusPending, env.status(t, entry.ID).Status)

	online = true
	result, err = env.engine.SyncPendingStarts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
}

func TestSyncPendingStarts_InFlightGuard(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	find := env.remote.FindStartByTargetFunc
	env.remote.FindStartByTargetFunc = func(ctx context.Context, targetID string) (*models.StartRecord, error) {
		select {
		case <-entered:
		default:
			close(entered)
		}
		<-release
		return find(ctx, targetID)
	}

	env.register(t, startTime, "d1")

	type outcome struct {
		result *SyncResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := env.engine.SyncPendingStarts(ctx)
		done <- outcome{r, err}
	}()

	<-entered
	_, err := env.engine.SyncPendingStarts(ctx)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(release)
	first := <-done
	require.NoError(t, first.err)
	assert.Equal(t, 1, first.result.Attempted)
	assert.Equal(t, 1, first.result.Synced)
	assert.Len(t, env.remote.CreateStartCalls(), 1)
}

func TestSyncPendingStarts_BackoffBeforeRetry(t *testing.T) {
	cfg := testConfig()
	cfg.BaseBackoff = time.Second
	env := newTestEnv(t, cfg, nil)
	ctx := context.Background()

	entry := env.register(t, startTime, "d1")
	_, err := env.outbox.Update(ctx, entry.ID, func(e *models.PendingStartEvent) {
		e.Status = models.StatusError
		e.RetryCount = 2
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := env.engine.SyncPendingStarts(ctx)
		done <- err
	}()

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, env.clock.BlockUntilContext(waitCtx, 1))

	// После двух ошибок ожидание base * 2^(2-1) = 2s
	env.clock.Advance(time.Second)
	assert.Empty(t, env.remote.FindStartByTargetCalls())
	env.clock.Advance(time.Second)

	require.NoError(t, <-done)
	assert.Equal(t, models.StatusSynced, env.status(t, entry.ID).Status)
}

func TestSyncPendingStarts_FollowUpAfterFailure(t *testing.T) {
	cfg := testConfig()
	cfg.RetryDelay = 10 * time.Second
	env := newTestEnv(t, cfg, nil)
	ctx := context.Background()

	fail := true
	find := env.remote.FindStartByTargetFunc
	var mu stdsync.Mutex
	env.remote.FindStartByTargetFunc = func(ctx context.Context, targetID string) (*models.StartRecord, error) {
		mu.Lock()
		shouldFail := fail
		fail = false
		mu.Unlock()
		if shouldFail {
			return nil, errors.New("timeout")
		}
		return find(ctx, targetID)
	}

	entry := env.register(t, startTime, "d1")

	result, err := env.engine.SyncPendingStarts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)

	env.clock.Advance(10 * time.Second)

	require.Eventually(t, func() bool {
		e, err := env.outbox.Get(entry.ID)
		return err == nil && e.Status == models.StatusSynced
	}, time.Second, 5*time.Millisecond)
}

func TestSyncPendingStarts_PurgesAfterDelay(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)

	entry := env.register(t, startTime, "d1")

	var completed []SyncResult
	env.bus.Subscribe(events.TopicSyncCompleted, func(ev events.Event) {
		completed = append(completed, ev.Payload.(SyncResult))
	})

	result, err := env.engine.SyncPendingStarts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	require.Len(t, completed, 1)
	assert.Equal(t, 1, completed[0].Synced)

	// Синхронизированная запись видна до окончания grace периода
	assert.Equal(t, models.StatusSynced, env.status(t, entry.ID).Status)

	env.clock.Advance(3 * time.Second)
	require.Eventually(t, func() bool { return len(env.outbox.List()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestSyncImmediately(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)
	ctx := context.Background()

	entry := env.register(t, startTime, "d1")
	require.NoError(t, env.engine.SyncImmediately(ctx, entry.ID))
	assert.Equal(t, models.StatusSynced, env.status(t, entry.ID).Status)

	// Повторный вызов для synced записи ничего не делает
	require.NoError(t, env.engine.SyncImmediately(ctx, entry.ID))
	assert.Len(t, env.remote.FindStartByTargetCalls(), 1)

	assert.ErrorIs(t, env.engine.SyncImmediately(ctx, "missing"), storage.ErrOutboxEntryNotFound)
}

func TestSyncImmediately_FailureLeavesEntryToLoop(t *testing.T) {
	cfg := testConfig()
	cfg.RetryDelay = 10 * time.Second
	env := newTestEnv(t, cfg, nil)
	ctx := context.Background()

	env.remote.FindStartByTargetFunc = func(ctx context.Context, targetID string) (*models.StartRecord, error) {
		return nil, errors.New("timeout")
	}

	entry := env.register(t, startTime, "d1")
	require.Error(t, env.engine.SyncImmediately(ctx, entry.ID))
	require.Len(t, env.remote.FindStartByTargetCalls(), 1)

	// Повторного прохода по таймеру нет, запись ждет периодического цикла
	env.clock.Advance(10 * time.Second)
	assert.Never(t, func() bool { return len(env.remote.FindStartByTargetCalls()) > 1 }, 100*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, models.StatusError, env.status(t, entry.ID).Status)
	assert.Equal(t, 1, env.status(t, entry.ID).RetryCount)
}

func TestRun_SyncsOnRegistration(t *testing.T) {
	env := newTestEnv(t, testConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		env.engine.Run(ctx)
		close(stopped)
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, env.clock.BlockUntilContext(waitCtx, 1))

	entry := env.register(t, startTime, "d1")

	require.Eventually(t, func() bool {
		e, err := env.outbox.Get(entry.ID)
		return err == nil && e.Status == models.StatusSynced
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped
}

// TestCaptureToSync проходит путь от фиксации старта до записи на сервере:
// локальные часы спешат на 2 секунды, старт общий для двух дистанций.
func TestCaptureToSync(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testConfig(), nil)

	source := &clockoffset.TimeSourceMock{
		ServerTimeFunc: func(ctx context.Context) (time.Time, error) {
			return env.clock.Now().Add(-2 * time.Second), nil
		},
	}
	offsets := &storage.OffsetStorageMock{
		SaveOffsetFunc: func(ctx context.Context, state models.ClockOffsetState) error { return nil },
	}
	estimator := clockoffset.NewEstimator(source, offsets, env.clock,
		clockoffset.Config{Samples: 3, ProbeTimeout: time.Second}, setupTestLogger(), nil, env.bus)

	offset, err := estimator.EstimateOffset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, offset)

	// d2 уже заведен на сервере заранее
	env.fake.create("d2", "race-1", "5K", time.Time{})

	local := env.clock.Now()
	entry := env.register(t, estimator.CorrectTimestamp(local), "d1", "d2")
	expected := local.Add(-2 * time.Second)

	require.NotNil(t, env.outbox.GetStatusFor("d1"))

	result, err := env.engine.SyncPendingStarts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)

	for _, target := range []string{"d1", "d2"} {
		rec, ok := env.fake.get(target)
		require.True(t, ok, target)
		assert.True(t, expected.Equal(rec.StartTime), "%s: expected %v, got %v", target, expected, rec.StartTime)
	}
	assert.Len(t, env.remote.CreateStartCalls(), 1)
	assert.Len(t, env.remote.UpdateStartTimeCalls(), 1)
	assert.Equal(t, models.StatusSynced, env.status(t, entry.ID).Status)

	env.clock.Advance(3 * time.Second)
	require.Eventually(t, func() bool { return env.outbox.GetStatusFor("d1") == nil && len(env.outbox.List()) == 0 },
		time.Second, 5*time.Millisecond)
}
