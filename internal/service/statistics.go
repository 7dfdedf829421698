package service

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	"connplanner/internal/repository"
)

// StatisticsService assembles the operational snapshot exposed at the
// statistics endpoint: record counts, connection pool numbers and Go
// runtime figures.
type StatisticsService struct {
	Repo      repository.Repository
	SQL       *sql.DB
	StartedAt time.Time
}

type PerformanceSnapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Uptime    string        `json:"uptime"`
	Database  DatabaseStats `json:"database"`
	Runtime   RuntimeStats  `json:"runtime"`
}

type DatabaseStats struct {
	TotalRecords map[string]int64 `json:"total_records"`
	Pool         PoolStats        `json:"connection_pool"`
}

type PoolStats struct {
	Open    int   `json:"open"`
	InUse   int   `json:"in_use"`
	Idle    int   `json:"idle"`
	WaitCnt int64 `json:"wait_count"`
}

type RuntimeStats struct {
	Goroutines  int    `json:"goroutines"`
	HeapAllocMB uint64 `json:"heap_alloc_mb"`
	HeapSysMB   uint64 `json:"heap_sys_mb"`
	GCCycles    uint32 `json:"gc_cycles"`
	GoVersion   string `json:"go_version"`
	NumCPU      int    `json:"num_cpu"`
}

func (s *StatisticsService) Snapshot(ctx context.Context) (*PerformanceSnapshot, error) {
	counts, err := s.Repo.RecordCounts(ctx)
	if err != nil {
		return nil, err
	}

	snap := &PerformanceSnapshot{
		Timestamp: time.Now().UTC(),
		Uptime:    formatUptime(time.Since(s.StartedAt)),
		Database:  DatabaseStats{TotalRecords: counts},
	}

	if s.SQL != nil {
		stats := s.SQL.Stats()
		snap.Database.Pool = PoolStats{
			Open:    stats.OpenConnections,
			InUse:   stats.InUse,
			Idle:    stats.Idle,
			WaitCnt: stats.WaitCount,
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	snap.Runtime = RuntimeStats{
		Goroutines:  runtime.NumGoroutine(),
		HeapAllocMB: mem.HeapAlloc / (1 << 20),
		HeapSysMB:   mem.HeapSys / (1 << 20),
		GCCycles:    mem.NumGC,
		GoVersion:   runtime.Version(),
		NumCPU:      runtime.NumCPU(),
	}
	return snap, nil
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
