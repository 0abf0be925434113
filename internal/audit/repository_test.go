package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meokisama/toolkit-core/internal/recon"
	"github.com/meokisama/toolkit-core/internal/unit"
)

const testSchema = `
CREATE TABLE comparison_runs (
    id TEXT PRIMARY KEY,
    db_board_type TEXT NOT NULL,
    db_can_id TEXT NOT NULL,
    db_ip_address TEXT NOT NULL,
    net_board_type TEXT NOT NULL,
    net_can_id TEXT NOT NULL,
    net_ip_address TEXT NOT NULL,
    is_equal INTEGER NOT NULL DEFAULT 0,
    difference_count INTEGER NOT NULL DEFAULT 0,
    report TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL
);
`

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return NewSQLiteRepository(db)
}

func testUnit(ip string) unit.Unit {
	return unit.Unit{BoardType: "RCU-8", CANID: "12", IPAddress: ip}
}

func TestCreate_GeneratesIDAndDerivesOutcome(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	run := &Run{
		DatabaseUnit: testUnit("192.168.1.10"),
		NetworkUnit:  testUnit("192.168.1.10"),
		Report: recon.Report{Differences: []recon.Difference{
			{Kind: recon.KindField, Domain: "Curtain", Message: "Curtain 5 Runtime: DB=10, Network=12"},
		}},
	}

	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if run.ID == "" {
		t.Error("Create() did not generate an ID")
	}
	if len(run.ID) < 4 || run.ID[:4] != "run-" {
		t.Errorf("ID = %q, want run- prefix", run.ID)
	}
	if run.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}
	if run.IsEqual {
		t.Error("IsEqual = true for run with differences")
	}
	if run.DifferenceCount != 1 {
		t.Errorf("DifferenceCount = %d, want 1", run.DifferenceCount)
	}
}

func TestList_RoundTripsReport(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	orig := &Run{
		DatabaseUnit: testUnit("192.168.1.10"),
		NetworkUnit:  testUnit("192.168.1.11"),
		Report: recon.Report{Differences: []recon.Difference{
			{Kind: recon.KindField, Domain: "Schedule", Message: "Schedule 3 Time: DB=07:30, Network=07:45"},
			{Kind: recon.KindPresence, Domain: "KNX", Message: "KNX 10: Only exists in DB unit"},
		}},
	}
	if err := repo.Create(ctx, orig); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	result, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 || len(result.Runs) != 1 {
		t.Fatalf("Total = %d, len(Runs) = %d, want 1 and 1", result.Total, len(result.Runs))
	}

	got := result.Runs[0]
	if got.ID != orig.ID {
		t.Errorf("ID = %q, want %q", got.ID, orig.ID)
	}
	if got.DatabaseUnit != orig.DatabaseUnit {
		t.Errorf("DatabaseUnit = %+v, want %+v", got.DatabaseUnit, orig.DatabaseUnit)
	}
	if got.NetworkUnit.IPAddress != "192.168.1.11" {
		t.Errorf("NetworkUnit.IPAddress = %q, want %q", got.NetworkUnit.IPAddress, "192.168.1.11")
	}
	if got.IsEqual {
		t.Error("IsEqual = true, want false")
	}
	if got.DifferenceCount != 2 {
		t.Errorf("DifferenceCount = %d, want 2", got.DifferenceCount)
	}
	if len(got.Report.Differences) != 2 {
		t.Fatalf("len(Report.Differences) = %d, want 2", len(got.Report.Differences))
	}
	if got.Report.Differences[0].Message != "Schedule 3 Time: DB=07:30, Network=07:45" {
		t.Errorf("first difference = %q", got.Report.Differences[0].Message)
	}
	if got.Report.Differences[1].Kind != recon.KindPresence {
		t.Errorf("second difference kind = %q, want %q", got.Report.Differences[1].Kind, recon.KindPresence)
	}
}

func TestList_OnlyUnequalFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	equal := &Run{
		DatabaseUnit: testUnit("192.168.1.10"),
		NetworkUnit:  testUnit("192.168.1.10"),
	}
	unequal := &Run{
		DatabaseUnit: testUnit("192.168.1.20"),
		NetworkUnit:  testUnit("192.168.1.20"),
		Report: recon.Report{Differences: []recon.Difference{
			{Kind: recon.KindCount, Domain: "Scene", Message: "Valid Scene count: DB=3, Network=2"},
		}},
	}
	for _, run := range []*Run{equal, unequal} {
		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.List(ctx, Filter{OnlyUnequal: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 {
		t.Errorf("Total = %d, want 1", result.Total)
	}
	if len(result.Runs) != 1 || result.Runs[0].ID != unequal.ID {
		t.Errorf("Runs = %+v, want only the unequal run", result.Runs)
	}
}

func TestList_OrderAndPagination(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := &Run{
			DatabaseUnit: testUnit("192.168.1.10"),
			NetworkUnit:  testUnit("192.168.1.10"),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, run); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.List(ctx, Filter{Limit: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	if len(result.Runs) != 2 {
		t.Fatalf("len(Runs) = %d, want 2", len(result.Runs))
	}
	// Most recent first
	if !result.Runs[0].CreatedAt.After(result.Runs[1].CreatedAt) {
		t.Errorf("runs not ordered newest first: %v then %v",
			result.Runs[0].CreatedAt, result.Runs[1].CreatedAt)
	}

	page2, err := repo.List(ctx, Filter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List() page 2 error = %v", err)
	}
	if len(page2.Runs) != 1 {
		t.Errorf("page 2 len(Runs) = %d, want 1", len(page2.Runs))
	}
}

func TestList_ClampsLimit(t *testing.T) {
	repo := newTestRepo(t)

	result, err := repo.List(context.Background(), Filter{Limit: 9999, Offset: -5})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Limit != 200 {
		t.Errorf("Limit = %d, want clamp to 200", result.Limit)
	}
	if result.Offset != 0 {
		t.Errorf("Offset = %d, want clamp to 0", result.Offset)
	}
	if len(result.Runs) != 0 {
		t.Errorf("len(Runs) = %d, want 0", len(result.Runs))
	}
}
