package service

import (
	"context"
	"testing"
	"time"

	"connplanner/internal/models"
)

func TestStatisticsSnapshot(t *testing.T) {
	repo := newStubRepo()
	ctx := context.Background()
	conn := &models.Connection{Name: "prod"}
	if err := repo.CreateConnectionTx(ctx, nil, conn); err != nil {
		t.Fatalf("seed connection: %v", err)
	}

	svc := &StatisticsService{
		Repo:      repo,
		StartedAt: time.Now().UTC().Add(-time.Minute),
	}
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Database.TotalRecords["connections"] != 1 {
		t.Fatalf("expected 1 connection in record counts, got %d", snap.Database.TotalRecords["connections"])
	}
	if snap.Runtime.Goroutines <= 0 || snap.Runtime.GoVersion == "" {
		t.Fatalf("runtime stats missing: %+v", snap.Runtime)
	}
	if snap.Uptime == "" {
		t.Fatalf("uptime missing")
	}
}
