package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meokisama/toolkit-core/internal/recon"
	"github.com/meokisama/toolkit-core/internal/unit"
)

// Unit is a project-database unit row: the shared identity plus the
// row id used to scope the domain tables.
type Unit struct {
	ID int64
	unit.Unit
}

// Provider reads units and domain trees from the project database.
// The connection should be opened via database.OpenReadOnly.
type Provider struct {
	db *sql.DB
}

// New creates a provider over an open project database connection.
func New(db *sql.DB) *Provider {
	return &Provider{db: db}
}

// Units returns every unit in the project, ordered by IP address.
func (p *Provider) Units(ctx context.Context) ([]Unit, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, board_type, can_id, ip_address, mode, can_load, recovery_mode, description
		FROM units
		ORDER BY ip_address`)
	if err != nil {
		return nil, fmt.Errorf("querying units: %w", err)
	}
	defer rows.Close()

	var units []Unit
	for rows.Next() {
		var u Unit
		var canLoad, recoveryMode int
		var description sql.NullString
		if err := rows.Scan(&u.ID, &u.BoardType, &u.CANID, &u.IPAddress, &u.Mode,
			&canLoad, &recoveryMode, &description); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		u.CanLoad = canLoad
		u.RecoveryMode = recoveryMode
		if description.Valid {
			u.Description = description.String
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}
	return units, nil
}

// UnitByID returns one unit, or ErrUnitNotFound.
func (p *Provider) UnitByID(ctx context.Context, id int64) (*Unit, error) {
	var u Unit
	var canLoad, recoveryMode int
	var description sql.NullString
	err := p.db.QueryRowContext(ctx, `
		SELECT id, board_type, can_id, ip_address, mode, can_load, recovery_mode, description
		FROM units
		WHERE id = ?`, id).
		Scan(&u.ID, &u.BoardType, &u.CANID, &u.IPAddress, &u.Mode,
			&canLoad, &recoveryMode, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying unit %d: %w", id, err)
	}
	u.CanLoad = canLoad
	u.RecoveryMode = recoveryMode
	if description.Valid {
		u.Description = description.String
	}
	return &u, nil
}

// resolverKey identifies one device lookup entry.
type resolverKey struct {
	deviceID int
	kind     recon.DeviceKind
}

// deviceResolver is a preloaded device-id → address map.
type deviceResolver map[resolverKey]int

// ResolveAddress implements recon.AddressResolver.
func (r deviceResolver) ResolveAddress(deviceID int, kind recon.DeviceKind) (int, bool) {
	addr, ok := r[resolverKey{deviceID: deviceID, kind: kind}]
	return addr, ok
}

// LoadResolver loads the devices table into an in-memory address
// resolver. The engine's resolver interface is synchronous and
// error-free, so the lookup table is materialised up front; project
// device tables are small (hundreds of rows at most).
func (p *Provider) LoadResolver(ctx context.Context) (recon.AddressResolver, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, kind, address FROM devices`)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	resolver := make(deviceResolver)
	for rows.Next() {
		var id, address int
		var kind string
		if err := rows.Scan(&id, &kind, &address); err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		resolver[resolverKey{deviceID: id, kind: recon.DeviceKind(kind)}] = address
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}
	return resolver, nil
}
