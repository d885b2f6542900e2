//go:build unit

package monitor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
)

// fakeSystemAPI is a hand-rolled stub; the concurrency tests need call
// counters and blocking hooks that a recorded-expectation mock makes awkward.
type fakeSystemAPI struct {
	healthCalls atomic.Int64
	infoCalls   atomic.Int64
	cpuCalls    atomic.Int64
	memoryCalls atomic.Int64
	healthErr   error
	infoErr     error
	onStressCPU func(ctx context.Context) (dto.CPUStressResult, error)
	onStressMem func(ctx context.Context) (dto.MemoryStressResult, error)
	blockHealth func(ctx context.Context)
}

func (f *fakeSystemAPI) Health(ctx context.Context) (dto.HealthStatus, error) {
	f.healthCalls.Add(1)

	if f.blockHealth != nil {
		f.blockHealth(ctx)
	}

	if f.healthErr != nil {
		return dto.HealthStatus{}, f.healthErr
	}

	return dto.HealthStatus{Status: "UP", Application: "Skyline Demo"}, nil
}

func (f *fakeSystemAPI) Ready(context.Context) (dto.ReadyStatus, error) {
	return dto.ReadyStatus{Status: "READY"}, nil
}

func (f *fakeSystemAPI) SystemInfo(ctx context.Context) (dto.SystemInfo, error) {
	f.infoCalls.Add(1)

	if f.infoErr != nil {
		return dto.SystemInfo{}, f.infoErr
	}

	return dto.SystemInfo{Processors: 8, TotalMemoryMB: 8192, UsedMemoryMB: 2048}, nil
}

func (f *fakeSystemAPI) StressCPU(ctx context.Context, seconds int) (dto.CPUStressResult, error) {
	f.cpuCalls.Add(1)

	if f.onStressCPU != nil {
		return f.onStressCPU(ctx)
	}

	return dto.CPUStressResult{DurationMS: int64(seconds) * 1000, PrimesFound: 1229, Status: "completed"}, nil
}

func (f *fakeSystemAPI) StressMemory(ctx context.Context, sizeMB int) (dto.MemoryStressResult, error) {
	f.memoryCalls.Add(1)

	if f.onStressMem != nil {
		return f.onStressMem(ctx)
	}

	return dto.MemoryStressResult{MemoryAllocatedMB: sizeMB, BlocksCreated: sizeMB, Status: "completed"}, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}

		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("condition not reached in time")
}

func TestMonitor_StartPollsImmediately(t *testing.T) {
	api := &fakeSystemAPI{}
	m := New(api, WithPollInterval(time.Hour))

	session := m.Start(context.Background())
	defer session.Stop()

	waitFor(t, func() bool { return m.Snapshot().HealthKnown && m.Snapshot().InfoKnown })

	snapshot := m.Snapshot()
	assert.Equal(t, "UP", snapshot.Health.Status)
	assert.EqualValues(t, 8192, snapshot.Info.TotalMemoryMB)
	assert.False(t, snapshot.FetchedAt.IsZero())
}

func TestMonitor_PartialFailureDegrades(t *testing.T) {
	api := &fakeSystemAPI{healthErr: errors.New("connection refused")}
	m := New(api, WithPollInterval(time.Hour))

	session := m.Start(context.Background())
	defer session.Stop()

	waitFor(t, func() bool { return m.Snapshot().InfoKnown })

	snapshot := m.Snapshot()
	assert.False(t, snapshot.HealthKnown)
	assert.True(t, snapshot.InfoKnown)
	assert.EqualValues(t, 8192, snapshot.Info.TotalMemoryMB)
}

func TestMonitor_StopHaltsPolling(t *testing.T) {
	api := &fakeSystemAPI{}
	m := New(api, WithPollInterval(20*time.Millisecond))

	session := m.Start(context.Background())

	waitFor(t, func() bool { return api.healthCalls.Load() >= 2 })

	session.Stop()
	calls := api.healthCalls.Load()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, calls, api.healthCalls.Load())
}

func TestMonitor_StopDiscardsInFlightResponse(t *testing.T) {
	api := &fakeSystemAPI{
		healthErr: errors.New("cancelled"),
		infoErr:   errors.New("cancelled"),
		blockHealth: func(ctx context.Context) {
			<-ctx.Done()
		},
	}
	m := New(api, WithPollInterval(time.Hour))

	session := m.Start(context.Background())

	waitFor(t, func() bool { return api.healthCalls.Load() >= 1 })

	session.Stop()

	assert.True(t, m.Snapshot().FetchedAt.IsZero())
}

func TestMonitor_RunStress(t *testing.T) {
	t.Run("out_of_range_rejected_before_network", func(t *testing.T) {
		tests := []struct {
			name      string
			kind      StressKind
			magnitude int
			field     string
		}{
			{name: "cpu_too_high", kind: KindCPU, magnitude: 600, field: "seconds"},
			{name: "cpu_zero", kind: KindCPU, magnitude: 0, field: "seconds"},
			{name: "memory_too_low", kind: KindMemory, magnitude: 5, field: "sizeMB"},
			{name: "memory_too_high", kind: KindMemory, magnitude: 2000, field: "sizeMB"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				api := &fakeSystemAPI{}
				m := New(api)

				err := m.RunStress(context.Background(), tt.kind, tt.magnitude)

				var ve exception.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.field, ve.Field)
				assert.Zero(t, api.cpuCalls.Load())
				assert.Zero(t, api.memoryCalls.Load())
			})
		}
	})

	t.Run("caches_last_result_per_kind", func(t *testing.T) {
		api := &fakeSystemAPI{}
		m := New(api)

		require.NoError(t, m.RunStress(context.Background(), KindCPU, 5))
		require.NoError(t, m.RunStress(context.Background(), KindMemory, 100))

		cpu, ok := m.LastCPU()
		require.True(t, ok)
		assert.Equal(t, int64(5000), cpu.DurationMS)

		mem, ok := m.LastMemory()
		require.True(t, ok)
		assert.Equal(t, 100, mem.MemoryAllocatedMB)
	})

	t.Run("new_run_overwrites_cached_result", func(t *testing.T) {
		api := &fakeSystemAPI{}
		m := New(api)

		require.NoError(t, m.RunStress(context.Background(), KindCPU, 5))
		require.NoError(t, m.RunStress(context.Background(), KindCPU, 10))

		cpu, ok := m.LastCPU()
		require.True(t, ok)
		assert.Equal(t, int64(10000), cpu.DurationMS)
	})

	t.Run("kinds_have_independent_busy_flags", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})

		api := &fakeSystemAPI{
			onStressCPU: func(ctx context.Context) (dto.CPUStressResult, error) {
				close(started)
				<-release

				return dto.CPUStressResult{Status: "completed"}, nil
			},
		}
		m := New(api)

		done := make(chan error, 1)
		go func() {
			done <- m.RunStress(context.Background(), KindCPU, 5)
		}()

		<-started
		assert.True(t, m.Busy(KindCPU))

		// Same kind is refused while running; the other kind is not.
		assert.ErrorIs(t, m.RunStress(context.Background(), KindCPU, 5), ErrStressInFlight)
		assert.NoError(t, m.RunStress(context.Background(), KindMemory, 100))

		close(release)
		assert.NoError(t, <-done)
		assert.False(t, m.Busy(KindCPU))
	})

	t.Run("failure_clears_busy_and_keeps_cache", func(t *testing.T) {
		api := &fakeSystemAPI{}
		m := New(api)

		require.NoError(t, m.RunStress(context.Background(), KindCPU, 5))

		api.onStressCPU = func(context.Context) (dto.CPUStressResult, error) {
			return dto.CPUStressResult{}, exception.RequestError{Kind: exception.RequestErrorTimeout}
		}

		err := m.RunStress(context.Background(), KindCPU, 5)
		assert.True(t, exception.IsRequestError(err))
		assert.False(t, m.Busy(KindCPU))

		cpu, ok := m.LastCPU()
		require.True(t, ok)
		assert.Equal(t, "completed", cpu.Status)
	})

	t.Run("schedules_repoll_when_session_active", func(t *testing.T) {
		api := &fakeSystemAPI{}
		m := New(api, WithPollInterval(time.Hour), WithRepollDelay(10*time.Millisecond))

		session := m.Start(context.Background())
		defer session.Stop()

		waitFor(t, func() bool { return api.healthCalls.Load() == 1 })

		require.NoError(t, m.RunStress(context.Background(), KindCPU, 5))

		waitFor(t, func() bool { return api.healthCalls.Load() >= 2 })
	})

	t.Run("no_repoll_without_session", func(t *testing.T) {
		api := &fakeSystemAPI{}
		m := New(api, WithRepollDelay(10*time.Millisecond))

		require.NoError(t, m.RunStress(context.Background(), KindCPU, 5))

		time.Sleep(50 * time.Millisecond)
		assert.Zero(t, api.healthCalls.Load())
	})
}

func TestSession_Refresh(t *testing.T) {
	api := &fakeSystemAPI{}
	m := New(api, WithPollInterval(time.Hour))

	session := m.Start(context.Background())
	defer session.Stop()

	waitFor(t, func() bool { return api.healthCalls.Load() == 1 })

	session.Refresh()
	assert.EqualValues(t, 2, api.healthCalls.Load())
}
