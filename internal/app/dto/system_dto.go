package dto

import "math"

// SystemInfo is the backend's processor/memory snapshot, replaced wholesale
// on each poll.
type SystemInfo struct {
	Processors    int   `json:"processors"`
	TotalMemoryMB int64 `json:"total_memory_mb"`
	FreeMemoryMB  int64 `json:"free_memory_mb"`
	MaxMemoryMB   int64 `json:"max_memory_mb"`
	UsedMemoryMB  int64 `json:"used_memory_mb"`
}

// UsagePercent returns used/total rounded to the nearest whole percent.
func (s SystemInfo) UsagePercent() int {
	if s.TotalMemoryMB == 0 {
		return 0
	}

	return int(math.Round(float64(s.UsedMemoryMB) / float64(s.TotalMemoryMB) * 100))
}

// AvailablePercent returns free/total rounded to the nearest whole percent.
func (s SystemInfo) AvailablePercent() int {
	if s.TotalMemoryMB == 0 {
		return 0
	}

	return int(math.Round(float64(s.FreeMemoryMB) / float64(s.TotalMemoryMB) * 100))
}

// DatabaseStatus is the nested database block of the health response.
type DatabaseStatus struct {
	Status string `json:"status"`
	Type   string `json:"type,omitempty"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

// HealthStatus is transient; each poll replaces the previous one.
type HealthStatus struct {
	Status      string         `json:"status"`
	Application string         `json:"application,omitempty"`
	Version     string         `json:"version,omitempty"`
	Database    DatabaseStatus `json:"database"`
}

// ReadyStatus is the readiness probe response.
type ReadyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CPUStressResult is the payload of a completed CPU stress invocation.
type CPUStressResult struct {
	Type        string `json:"type"`
	DurationMS  int64  `json:"duration_ms"`
	PrimesFound int    `json:"primes_found"`
	Status      string `json:"status"`
}

// MemoryStressResult is the payload of a completed memory stress invocation.
type MemoryStressResult struct {
	Type              string `json:"type"`
	DurationMS        int64  `json:"duration_ms"`
	MemoryAllocatedMB int    `json:"memory_allocated_mb"`
	BlocksCreated     int    `json:"blocks_created"`
	Status            string `json:"status"`
	Error             string `json:"error,omitempty"`
}
