package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meokisama/toolkit-core/internal/recon"
)

// TestResolveConfigPath verifies flag > environment > default precedence.
func TestResolveConfigPath(t *testing.T) {
	originalEnv := os.Getenv("TOOLKIT_CONFIG")
	defer os.Setenv("TOOLKIT_CONFIG", originalEnv)

	os.Unsetenv("TOOLKIT_CONFIG")
	if got := resolveConfigPath(""); got != defaultConfigPath {
		t.Errorf("resolveConfigPath(\"\") = %q, want %q", got, defaultConfigPath)
	}

	os.Setenv("TOOLKIT_CONFIG", "/env/config.yaml")
	if got := resolveConfigPath(""); got != "/env/config.yaml" {
		t.Errorf("resolveConfigPath(\"\") = %q, want env value", got)
	}

	if got := resolveConfigPath("/flag/config.yaml"); got != "/flag/config.yaml" {
		t.Errorf("resolveConfigPath(flag) = %q, want flag value", got)
	}
}

// TestRunServe_InvalidConfig verifies serve fails with a bad config path.
func TestRunServe_InvalidConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := runServe(ctx, "/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("runServe should fail with invalid config path")
	}
}

// seedProjectDB creates a minimal project database with one unit.
func seedProjectDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "project.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("opening seed database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE units (
			id INTEGER PRIMARY KEY,
			board_type TEXT NOT NULL,
			can_id TEXT NOT NULL,
			ip_address TEXT NOT NULL,
			mode TEXT NOT NULL DEFAULT '',
			can_load INTEGER NOT NULL DEFAULT 0,
			recovery_mode INTEGER NOT NULL DEFAULT 0,
			description TEXT
		)`,
		`CREATE TABLE devices (
			id INTEGER PRIMARY KEY,
			kind TEXT NOT NULL,
			address INTEGER NOT NULL
		)`,
		`INSERT INTO units (id, board_type, can_id, ip_address, mode)
		 VALUES (1, 'RCU-16', '1.1.1', '10.0.0.10', 'Master')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seeding database: %v", err)
		}
	}
	return path
}

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}
	return path
}

// TestRunCompare_UnmatchedUnits verifies both unmatched directions are
// reported and the differences exit path is taken.
func TestRunCompare_UnmatchedUnits(t *testing.T) {
	projectPath := seedProjectDB(t)
	snapshotPath := writeSnapshot(t, `{
		"unit": {"boardType": "RCU-8", "canId": "9.9.9", "ipAddress": "10.0.0.99"}
	}`)

	var out bytes.Buffer
	err := runCompare(context.Background(), &out, projectPath, []string{snapshotPath}, false)
	if !errors.Is(err, errDifferencesFound) {
		t.Fatalf("err = %v, want errDifferencesFound", err)
	}

	text := out.String()
	if !strings.Contains(text, "RCU-16 1.1.1 @ 10.0.0.10: only in project database") {
		t.Errorf("missing project-only line in output:\n%s", text)
	}
	if !strings.Contains(text, "RCU-8 9.9.9 @ 10.0.0.99: only in network snapshots") {
		t.Errorf("missing network-only line in output:\n%s", text)
	}
}

// TestRunCompare_JSONOutput verifies the machine-readable shape.
func TestRunCompare_JSONOutput(t *testing.T) {
	projectPath := seedProjectDB(t)
	snapshotPath := writeSnapshot(t, `{
		"unit": {"boardType": "RCU-8", "canId": "9.9.9", "ipAddress": "10.0.0.99"}
	}`)

	var out bytes.Buffer
	err := runCompare(context.Background(), &out, projectPath, []string{snapshotPath}, true)
	if !errors.Is(err, errDifferencesFound) {
		t.Fatalf("err = %v, want errDifferencesFound", err)
	}

	var result compareResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if len(result.Summaries) != 0 {
		t.Errorf("summaries = %d, want 0", len(result.Summaries))
	}
	if len(result.UnmatchedProject) != 1 || len(result.UnmatchedNetwork) != 1 {
		t.Errorf("unmatched = %v / %v, want one each",
			result.UnmatchedProject, result.UnmatchedNetwork)
	}
}

// TestRunCompare_MissingProject verifies a clear failure for a missing
// project database.
func TestRunCompare_MissingProject(t *testing.T) {
	snapshotPath := writeSnapshot(t, `{"unit": {"ipAddress": "10.0.0.1"}}`)

	var out bytes.Buffer
	err := runCompare(context.Background(), &out, "/nonexistent/project.db", []string{snapshotPath}, false)
	if err == nil || errors.Is(err, errDifferencesFound) {
		t.Fatalf("err = %v, want open failure", err)
	}
}

// TestRunCompare_BadSnapshot verifies decode failures abort the run.
func TestRunCompare_BadSnapshot(t *testing.T) {
	projectPath := seedProjectDB(t)
	snapshotPath := writeSnapshot(t, `not json`)

	var out bytes.Buffer
	err := runCompare(context.Background(), &out, projectPath, []string{snapshotPath}, false)
	if err == nil || errors.Is(err, errDifferencesFound) {
		t.Fatalf("err = %v, want decode failure", err)
	}
}

// TestHasDifferences covers the exit-code decision.
func TestHasDifferences(t *testing.T) {
	equal := recon.Summary{}
	unequal := recon.Summary{Aggregate: recon.Report{Differences: []recon.Difference{
		{Kind: recon.KindField, Message: "Curtain 1 Runtime: DB=10, Network=12"},
	}}}

	tests := []struct {
		name   string
		result compareResult
		want   bool
	}{
		{"all equal", compareResult{Summaries: []recon.Summary{equal}}, false},
		{"one unequal", compareResult{Summaries: []recon.Summary{equal, unequal}}, true},
		{"unmatched project", compareResult{UnmatchedProject: []string{"a"}}, true},
		{"unmatched network", compareResult{UnmatchedNetwork: []string{"b"}}, true},
		{"empty", compareResult{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasDifferences(&tt.result); got != tt.want {
				t.Errorf("hasDifferences = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestNewRootCmd verifies the command tree wiring.
func TestNewRootCmd(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	if !names["serve"] || !names["compare"] {
		t.Errorf("commands = %v, want serve and compare", names)
	}
}
