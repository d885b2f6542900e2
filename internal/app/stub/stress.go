package stub

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/skylinedemo/skyline-console/internal/app/dto"
	"github.com/skylinedemo/skyline-console/internal/pkg/exception"
)

const stubVersion = "1.0.0"

// Health reports the stub as a healthy backend with an in-memory database.
func (s *Service) Health(_ context.Context) (dto.HealthStatus, error) {
	return dto.HealthStatus{
		Status:      "UP",
		Application: "Skyline Stub",
		Version:     stubVersion,
		Database: dto.DatabaseStatus{
			Status: "UP",
			Type:   "In-Memory",
		},
	}, nil
}

// Ready reports readiness.
func (s *Service) Ready(_ context.Context) (dto.ReadyStatus, error) {
	return dto.ReadyStatus{
		Status:  "READY",
		Message: "Application is ready to serve requests",
	}, nil
}

// SystemInfo snapshots the stub process's own memory picture.
func (s *Service) SystemInfo(_ context.Context) (dto.SystemInfo, error) {
	var stats runtime.MemStats

	runtime.ReadMemStats(&stats)

	const mb = 1024 * 1024

	total := int64(stats.HeapSys / mb)
	used := int64(stats.HeapInuse / mb)

	return dto.SystemInfo{
		Processors:    runtime.NumCPU(),
		TotalMemoryMB: total,
		FreeMemoryMB:  total - used,
		MaxMemoryMB:   int64(stats.Sys / mb),
		UsedMemoryMB:  used,
	}, nil
}

// StressCPU burns CPU hunting primes below 10000 until the requested number
// of seconds has elapsed.
func (s *Service) StressCPU(ctx context.Context, seconds int) (dto.CPUStressResult, error) {
	if seconds < 1 || seconds > 300 {
		return dto.CPUStressResult{}, exception.BusinessError{
			Message:    fmt.Sprintf("seconds must be between 1 and 300, got %d", seconds),
			StatusCode: http.StatusBadRequest,
		}
	}

	start := time.Now()
	deadline := start.Add(time.Duration(seconds) * time.Second)
	count := 0

	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			break
		}

		for i := 2; i < 10000; i++ {
			if isPrime(i) {
				count++
			}
		}
	}

	return dto.CPUStressResult{
		Type:        "CPU Stress Test",
		DurationMS:  time.Since(start).Milliseconds(),
		PrimesFound: count,
		Status:      "completed",
	}, nil
}

// StressMemory allocates sizeMB one-megabyte blocks, touches them so they are
// really resident, holds them briefly, then lets them go.
func (s *Service) StressMemory(ctx context.Context, sizeMB int) (dto.MemoryStressResult, error) {
	if sizeMB < 10 || sizeMB > 1000 {
		return dto.MemoryStressResult{}, exception.BusinessError{
			Message:    fmt.Sprintf("sizeMB must be between 10 and 1000, got %d", sizeMB),
			StatusCode: http.StatusBadRequest,
		}
	}

	start := time.Now()
	blocks := make([][]byte, 0, sizeMB)

	for i := 0; i < sizeMB; i++ {
		block := make([]byte, 1024*1024)
		for j := 0; j < len(block); j += 1024 {
			block[j] = byte(j % 256)
		}

		blocks = append(blocks, block)
	}

	select {
	case <-time.After(s.memoryHold):
	case <-ctx.Done():
	}

	created := len(blocks)
	blocks = nil //nolint:ineffassign,wastedassign // release before GC hint
	runtime.GC()

	return dto.MemoryStressResult{
		Type:              "Memory Stress Test",
		DurationMS:        time.Since(start).Milliseconds(),
		MemoryAllocatedMB: sizeMB,
		BlocksCreated:     created,
		Status:            "completed",
	}, nil
}

// Metrics renders a minimal plaintext exposition.
func (s *Service) Metrics(_ context.Context) (string, error) {
	s.mu.RLock()
	flights := len(s.flights)
	reservations := len(s.reservations)
	s.mu.RUnlock()

	return fmt.Sprintf(`# HELP skyline_stub_flights Flights in the fixture inventory.
# TYPE skyline_stub_flights gauge
skyline_stub_flights %d
# HELP skyline_stub_reservations Reservations currently held.
# TYPE skyline_stub_reservations gauge
skyline_stub_reservations %d
`, flights, reservations), nil
}

func isPrime(n int) bool {
	if n <= 1 {
		return false
	}

	if n <= 3 {
		return true
	}

	if n%2 == 0 || n%3 == 0 {
		return false
	}

	for i := 5; i*i <= n; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}

	return true
}
