package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meokisama/toolkit-core/internal/infrastructure/config"
	"github.com/meokisama/toolkit-core/internal/infrastructure/database"
	"github.com/meokisama/toolkit-core/internal/infrastructure/logging"
	"github.com/meokisama/toolkit-core/internal/netsnap"
	"github.com/meokisama/toolkit-core/internal/recon"
	"github.com/meokisama/toolkit-core/internal/store"
	"github.com/meokisama/toolkit-core/internal/unit"
)

// errDifferencesFound signals the batch-mode exit code: at least one
// unit differed or could not be matched.
var errDifferencesFound = errors.New("differences found")

// compareResult is the JSON output shape of the compare subcommand.
type compareResult struct {
	Summaries        []recon.Summary `json:"summaries"`
	UnmatchedProject []string        `json:"unmatched_project"`
	UnmatchedNetwork []string        `json:"unmatched_network"`
}

// newCompareCmd builds the compare subcommand.
func newCompareCmd() *cobra.Command {
	var (
		projectPath string
		snapshots   []string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run a one-shot batch comparison",
		Long: `Compare reads the project database and one or more snapshot files,
matches units by identity, and prints every difference found.

The exit code is 0 when all units match and 1 when any unit differs
or cannot be paired.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd.Context(), cmd.OutOrStdout(), projectPath, snapshots, asJSON)
		},
	}

	cmd.Flags().StringVar(&projectPath, "project", config.Default().Project.Path,
		"path to the project database")
	cmd.Flags().StringArrayVar(&snapshots, "snapshot", nil,
		"snapshot file to compare (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false,
		"emit machine-readable JSON instead of text")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

// runCompare performs the batch comparison and renders the result.
func runCompare(ctx context.Context, out io.Writer, projectPath string, snapshotPaths []string, asJSON bool) error {
	// Diagnostics go to stderr so stdout stays clean for the report.
	log := logging.New(config.LoggingConfig{Level: "warn", Format: "text", Output: "stderr"}, version)

	projectDB, err := database.OpenReadOnly(projectPath)
	if err != nil {
		return fmt.Errorf("opening project database: %w", err)
	}
	defer projectDB.Close() //nolint:errcheck // read-only handle, nothing to flush

	provider := store.New(projectDB.DB)

	resolver, err := provider.LoadResolver(ctx)
	if err != nil {
		return fmt.Errorf("loading device resolver: %w", err)
	}
	engine := recon.NewEngine(log.Logger, resolver)

	snapshots, err := loadSnapshots(snapshotPaths)
	if err != nil {
		return err
	}

	projectUnits, err := provider.Units(ctx)
	if err != nil {
		return fmt.Errorf("reading project units: %w", err)
	}

	result, err := compareAll(ctx, provider, engine, projectUnits, snapshots)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else {
		renderText(out, result)
	}

	if hasDifferences(result) {
		return errDifferencesFound
	}
	return nil
}

// loadSnapshots decodes every snapshot file.
func loadSnapshots(paths []string) ([]*netsnap.Snapshot, error) {
	snapshots := make([]*netsnap.Snapshot, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot: %w", err)
		}
		snap, err := netsnap.Decode(f)
		f.Close() //nolint:errcheck,gosec // read-only handle
		if err != nil {
			return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// compareAll matches units and runs the engine over every pair.
func compareAll(ctx context.Context, provider *store.Provider, engine *recon.Engine, projectUnits []store.Unit, snapshots []*netsnap.Snapshot) (*compareResult, error) {
	dbUnits := make([]unit.Unit, len(projectUnits))
	idByKey := make(map[string]int64, len(projectUnits))
	for i, u := range projectUnits {
		dbUnits[i] = u.Unit
		if _, dup := idByKey[u.Key()]; !dup {
			idByKey[u.Key()] = u.ID
		}
	}

	netUnits := make([]unit.Unit, len(snapshots))
	treesByKey := make(map[string]recon.DomainTrees, len(snapshots))
	for i, snap := range snapshots {
		netUnits[i] = snap.Unit
		if _, dup := treesByKey[snap.Unit.Key()]; !dup {
			treesByKey[snap.Unit.Key()] = snap.Trees
		}
	}

	matches := recon.FindMatches(dbUnits, netUnits)

	result := &compareResult{
		Summaries:        make([]recon.Summary, 0, len(matches)),
		UnmatchedProject: []string{},
		UnmatchedNetwork: []string{},
	}

	matchedKeys := make(map[string]bool, len(matches))
	for _, m := range matches {
		matchedKeys[m.Database.Key()] = true

		dbTrees, err := provider.DomainTrees(ctx, idByKey[m.Database.Key()])
		if err != nil {
			return nil, fmt.Errorf("reading configuration for %s: %w", m.Database.Key(), err)
		}

		summary := engine.Compare(m.Database, m.Network, dbTrees, treesByKey[m.Network.Key()])
		result.Summaries = append(result.Summaries, summary)
	}

	for _, u := range dbUnits {
		if !matchedKeys[u.Key()] {
			result.UnmatchedProject = append(result.UnmatchedProject, u.Key())
		}
	}
	seen := make(map[string]bool, len(netUnits))
	for _, u := range netUnits {
		if !matchedKeys[u.Key()] && !seen[u.Key()] {
			seen[u.Key()] = true
			result.UnmatchedNetwork = append(result.UnmatchedNetwork, u.Key())
		}
	}

	return result, nil
}

// hasDifferences reports whether any unit differed or went unmatched.
// An unmatched unit is itself a mismatch between the two sides.
func hasDifferences(result *compareResult) bool {
	for _, s := range result.Summaries {
		if !s.IsEqual() {
			return true
		}
	}
	return len(result.UnmatchedProject) > 0 || len(result.UnmatchedNetwork) > 0
}

// renderText prints the human-readable report.
func renderText(out io.Writer, result *compareResult) {
	for _, s := range result.Summaries {
		if s.IsEqual() {
			fmt.Fprintf(out, "%s: OK\n", s.DatabaseUnit.Key())
			continue
		}
		fmt.Fprintf(out, "%s: %d difference(s)\n", s.DatabaseUnit.Key(), len(s.Aggregate.Differences))
		for _, msg := range s.Aggregate.Messages() {
			fmt.Fprintf(out, "  %s\n", msg)
		}
	}
	for _, key := range result.UnmatchedProject {
		fmt.Fprintf(out, "%s: only in project database\n", key)
	}
	for _, key := range result.UnmatchedNetwork {
		fmt.Fprintf(out, "%s: only in network snapshots\n", key)
	}
}
