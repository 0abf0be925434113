// Package audit persists comparison run history to the audit database.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meokisama/toolkit-core/internal/recon"
	"github.com/meokisama/toolkit-core/internal/unit"
)

// Run represents one recorded unit comparison.
type Run struct {
	ID string `json:"id"`

	DatabaseUnit unit.Unit `json:"database_unit"`
	NetworkUnit  unit.Unit `json:"network_unit"`

	IsEqual         bool `json:"is_equal"`
	DifferenceCount int  `json:"difference_count"`

	// Report is the aggregate difference report for the run. Stored as
	// JSON so historical runs can be re-rendered without re-comparing.
	Report recon.Report `json:"report"`

	CreatedAt time.Time `json:"created_at"`
}

// Filter controls which comparison runs to return.
type Filter struct {
	OnlyUnequal bool // return only runs that found differences
	Limit       int  // default 50, max 200
	Offset      int  // pagination offset
}

// ListResult contains the paginated run results.
type ListResult struct {
	Runs   []Run `json:"runs"`
	Total  int   `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Repository defines the interface for comparison run persistence.
type Repository interface {
	Create(ctx context.Context, run *Run) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository stores comparison runs in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new comparison run repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a comparison run. The ID and CreatedAt are generated
// if empty; IsEqual and DifferenceCount are derived from the report.
func (r *SQLiteRepository) Create(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = "run-" + uuid.NewString()[:8]
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.IsEqual = run.Report.IsEqual()
	run.DifferenceCount = len(run.Report.Differences)

	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("marshalling comparison report: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO comparison_runs
		 (id, db_board_type, db_can_id, db_ip_address,
		  net_board_type, net_can_id, net_ip_address,
		  is_equal, difference_count, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.DatabaseUnit.BoardType, run.DatabaseUnit.CANID, run.DatabaseUnit.IPAddress,
		run.NetworkUnit.BoardType, run.NetworkUnit.CANID, run.NetworkUnit.IPAddress,
		boolToInt(run.IsEqual), run.DifferenceCount, string(reportJSON),
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting comparison run: %w", err)
	}

	return nil
}

// List returns comparison runs matching the filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	// Clamp limit.
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 { //nolint:mnd // max page size for run queries
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var conditions []string
	var args []any

	if filter.OnlyUnequal {
		conditions = append(conditions, "is_equal = 0")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Get total count.
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM comparison_runs %s", where) //nolint:gosec // WHERE built from fixed conditions, not user input
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting comparison runs: %w", err)
	}

	// Get paginated results.
	query := fmt.Sprintf( //nolint:gosec // WHERE built from fixed conditions, not user input
		`SELECT id, db_board_type, db_can_id, db_ip_address,
		        net_board_type, net_can_id, net_ip_address,
		        is_equal, difference_count, report, created_at
		 FROM comparison_runs %s ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		where,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comparison runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var isEqual int
		var reportJSON, createdAt string

		if err := rows.Scan(&run.ID,
			&run.DatabaseUnit.BoardType, &run.DatabaseUnit.CANID, &run.DatabaseUnit.IPAddress,
			&run.NetworkUnit.BoardType, &run.NetworkUnit.CANID, &run.NetworkUnit.IPAddress,
			&isEqual, &run.DifferenceCount, &reportJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning comparison run: %w", err)
		}

		run.IsEqual = isEqual != 0

		if reportJSON != "" {
			// Report parse failure is tolerated: the scalar columns still
			// describe the run outcome.
			_ = json.Unmarshal([]byte(reportJSON), &run.Report) //nolint:errcheck // Legacy rows may carry partial reports
		}

		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing comparison run timestamp %q: %w", createdAt, err)
		}
		run.CreatedAt = t

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comparison runs: %w", err)
	}

	if runs == nil {
		runs = []Run{}
	}

	return &ListResult{
		Runs:   runs,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// boolToInt converts a bool for an INTEGER column.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
