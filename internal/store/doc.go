// Package store reads unit configuration from the editor's project
// database.
//
// The project database is the commissioning editor's SQLite file and is
// always opened read-only: the toolkit audits it, it never writes to
// it. The store exposes the units it contains and, per unit, the
// database-side domain trees the comparison engine consumes.
//
// # Schema expectations
//
// One row per unit in units; every domain table carries a unit_id
// foreign key. Slot-keyed domains (inputs, outputs, rs485) store dense
// slot arrays ordered by their slot/channel column, matching the fixed
// arrays on the physical unit. Ordered child references (multi-scene
// and sequence members) carry a sort_order column; the store preserves
// that order because the device executes references in stored order.
// Inputs' group assignments and rs485 slave tables are stored as JSON
// columns in the network-native shape.
//
// # Usage
//
//	db, err := database.OpenReadOnly(cfg.Project.Path)
//	if err != nil {
//	    return err
//	}
//	provider := store.New(db.DB)
//
//	units, err := provider.Units(ctx)
//	trees, err := provider.DomainTrees(ctx, units[0].ID)
//	resolver, err := provider.LoadResolver(ctx)
package store
