// Package monitor drives the operational dashboard: a periodic poll of the
// backend's health and system info, and on-demand CPU/memory stress
// invocations with per-kind busy flags and last-result caching.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
	"github.com/skylinedemo/skyline-console/internal/pkg/gateway"
)

// StressKind selects which backend stress endpoint to exercise.
type StressKind string

const (
	KindCPU    StressKind = "cpu"
	KindMemory StressKind = "memory"
)

// Magnitude bounds. Out-of-range input is rejected locally, before any
// request is issued.
const (
	CPUMinSeconds = 1
	CPUMaxSeconds = 300
	MemoryMinMB   = 10
	MemoryMaxMB   = 1000
)

const (
	defaultPollInterval = 30 * time.Second
	defaultRepollDelay  = 2 * time.Second
)

// ErrStressInFlight guards against starting a stress run of a kind that is
// still running. The two kinds are independent of each other.
var ErrStressInFlight = errors.New("a stress test of this kind is already running")

// Snapshot is the dashboard's view of the backend, replaced wholesale on each
// poll. A branch that failed to fetch leaves its Known flag false and its
// value zero; the other branch is unaffected.
type Snapshot struct {
	Health      dto.HealthStatus
	HealthKnown bool
	Info        dto.SystemInfo
	InfoKnown   bool
	FetchedAt   time.Time
}

// Monitor owns the snapshot and the stress bookkeeping. At most one polling
// session is active at a time; the session handle owns the timer lifecycle.
type Monitor struct {
	api          gateway.SystemAPI
	pollInterval time.Duration
	repollDelay  time.Duration

	mu         sync.RWMutex
	snapshot   Snapshot
	busy       map[StressKind]bool
	lastCPU    *dto.CPUStressResult
	lastMemory *dto.MemoryStressResult
	session    *Session
}

// Option tweaks monitor timing, mainly for tests.
type Option func(*Monitor)

func WithPollInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.pollInterval = d
		}
	}
}

func WithRepollDelay(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.repollDelay = d
		}
	}
}

func New(api gateway.SystemAPI, opts ...Option) *Monitor {
	m := &Monitor{
		api:          api,
		pollInterval: defaultPollInterval,
		repollDelay:  defaultRepollDelay,
		busy:         make(map[StressKind]bool),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Session is the handle to an active polling loop. Stop cancels the pending
// periodic trigger; no fetch is issued afterwards, and in-flight responses
// are discarded instead of written.
type Session struct {
	monitor *Monitor
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// Start performs an immediate fetch and then re-fetches on the poll interval
// until the session is stopped or ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) *Session {
	sessionCtx, cancel := context.WithCancel(ctx)

	session := &Session{
		monitor: m,
		ctx:     sessionCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	go session.run()

	return session
}

func (s *Session) run() {
	defer close(s.done)

	s.monitor.refresh(s.ctx)

	ticker := time.NewTicker(s.monitor.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.monitor.refresh(s.ctx)
		case <-s.ctx.Done():
			return
		}
	}
}

// Stop deactivates the session and waits for the polling loop to exit.
func (s *Session) Stop() {
	s.cancel()
	<-s.done

	s.monitor.mu.Lock()
	if s.monitor.session == s {
		s.monitor.session = nil
	}
	s.monitor.mu.Unlock()
}

// Refresh triggers an immediate re-fetch outside the periodic schedule.
func (s *Session) Refresh() {
	s.monitor.refresh(s.ctx)
}

type branchResult struct {
	name  string
	apply func(*Snapshot)
	err   error
}

// refresh fans out the health and system-info fetches concurrently and joins
// on both. A failed branch degrades to "unknown" instead of failing the
// whole action. The assembled snapshot replaces the previous one, unless the
// session was torn down while the fetches were in flight.
func (m *Monitor) refresh(ctx context.Context) {
	results := make(chan branchResult, 2)

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		health, err := m.api.Health(ctx)
		results <- branchResult{
			name: "health",
			apply: func(s *Snapshot) {
				s.Health = health
				s.HealthKnown = true
			},
			err: err,
		}
	}()

	go func() {
		defer wg.Done()

		info, err := m.api.SystemInfo(ctx)
		results <- branchResult{
			name: "system_info",
			apply: func(s *Snapshot) {
				s.Info = info
				s.InfoKnown = true
			},
			err: err,
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	snapshot := Snapshot{FetchedAt: time.Now()}

	for result := range results {
		if result.err != nil {
			slog.WarnContext(ctx, "dashboard fetch degraded",
				slog.String("branch", result.name),
				slog.Any("error", result.err))

			continue
		}

		result.apply(&snapshot)
	}

	// Liveness guard: a late join must not write into torn-down state.
	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot = snapshot
}

// Snapshot returns the latest monitoring snapshot.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snapshot
}

// Busy reports whether a stress run of the given kind is in flight.
func (m *Monitor) Busy(kind StressKind) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.busy[kind]
}

// LastCPU returns the cached result of the most recent CPU run, if any.
func (m *Monitor) LastCPU() (dto.CPUStressResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastCPU == nil {
		return dto.CPUStressResult{}, false
	}

	return *m.lastCPU, true
}

// LastMemory returns the cached result of the most recent memory run, if any.
func (m *Monitor) LastMemory() (dto.MemoryStressResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastMemory == nil {
		return dto.MemoryStressResult{}, false
	}

	return *m.lastMemory, true
}

// RunStress invokes one stress endpoint. The magnitude is seconds for CPU and
// megabytes for memory; out-of-range values are rejected locally. Each kind
// has its own busy flag, so CPU and memory runs never block each other, and
// a failure of one kind leaves the other kind's flag and cached result
// alone. A completed run overwrites the cached result for its kind and
// schedules one snapshot re-poll after a short delay so the effect becomes
// visible.
func (m *Monitor) RunStress(ctx context.Context, kind StressKind, magnitude int) error {
	if err := validateMagnitude(kind, magnitude); err != nil {
		return err
	}

	if !m.setBusy(kind) {
		return ErrStressInFlight
	}
	defer m.clearBusy(kind)

	switch kind {
	case KindCPU:
		result, err := m.api.StressCPU(ctx, magnitude)
		if err != nil {
			return fmt.Errorf("cpu stress: %w", err)
		}

		m.mu.Lock()
		m.lastCPU = &result
		m.mu.Unlock()

	case KindMemory:
		result, err := m.api.StressMemory(ctx, magnitude)
		if err != nil {
			return fmt.Errorf("memory stress: %w", err)
		}

		m.mu.Lock()
		m.lastMemory = &result
		m.mu.Unlock()

	default:
		return exception.ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown stress kind %q", kind)}
	}

	m.scheduleRepoll()

	return nil
}

func validateMagnitude(kind StressKind, magnitude int) error {
	switch kind {
	case KindCPU:
		if magnitude < CPUMinSeconds || magnitude > CPUMaxSeconds {
			return exception.ValidationError{
				Field:  "seconds",
				Reason: fmt.Sprintf("must be between %d and %d", CPUMinSeconds, CPUMaxSeconds),
			}
		}
	case KindMemory:
		if magnitude < MemoryMinMB || magnitude > MemoryMaxMB {
			return exception.ValidationError{
				Field:  "sizeMB",
				Reason: fmt.Sprintf("must be between %d and %d", MemoryMinMB, MemoryMaxMB),
			}
		}
	}

	return nil
}

// scheduleRepoll re-fetches the snapshot once after the configured delay,
// against the currently active session. If no session is polling, there is
// nothing consuming the snapshot and the re-poll is skipped. The periodic
// poll may race with this one; both are idempotent reads, so the later
// response simply wins.
func (m *Monitor) scheduleRepoll() {
	m.mu.RLock()
	session := m.session
	m.mu.RUnlock()

	if session == nil {
		return
	}

	go func() {
		select {
		case <-time.After(m.repollDelay):
			m.refresh(session.ctx)
		case <-session.ctx.Done():
		}
	}()
}

func (m *Monitor) setBusy(kind StressKind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busy[kind] {
		return false
	}

	m.busy[kind] = true

	return true
}

func (m *Monitor) clearBusy(kind StressKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.busy[kind] = false
}
