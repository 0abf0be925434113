package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/meokisama/toolkit-core/internal/recon"
)

// DomainTrees loads every database-side domain tree for one unit.
// Records keep the project database's snake_case field names; the
// comparators' field tables own the mapping to network names.
func (p *Provider) DomainTrees(ctx context.Context, unitID int64) (recon.DomainTrees, error) {
	var trees recon.DomainTrees
	var err error

	loaders := []struct {
		name string
		load func(context.Context, int64) ([]recon.Record, error)
		dst  *[]recon.Record
	}{
		{"rs485", p.rs485Channels, &trees.RS485},
		{"inputs", p.inputSlots, &trees.Inputs},
		{"outputs", p.outputSlots, &trees.Outputs},
		{"scenes", p.scenes, &trees.Scenes},
		{"multi-scenes", p.multiScenes, &trees.MultiScenes},
		{"schedules", p.schedules, &trees.Schedules},
		{"curtains", p.curtains, &trees.Curtains},
		{"knx", p.knxPoints, &trees.KNX},
		{"sequences", p.sequences, &trees.Sequences},
	}

	for _, l := range loaders {
		if *l.dst, err = l.load(ctx, unitID); err != nil {
			return recon.DomainTrees{}, fmt.Errorf("loading %s for unit %d: %w", l.name, unitID, err)
		}
	}

	return trees, nil
}

// rs485Channels loads the unit's RS485 channels ordered by channel slot.
// The slave table is a JSON column in the network-native inner shape
// apart from its snake_case field names.
func (p *Provider) rs485Channels(ctx context.Context, unitID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT config_type, baud_rate, parity, stop_bit, slave_cfg
		FROM rs485
		WHERE unit_id = ?
		ORDER BY channel`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []recon.Record
	for rows.Next() {
		var configType, baudRate, parity, stopBit int
		var slaveCfg sql.NullString
		if err := rows.Scan(&configType, &baudRate, &parity, &stopBit, &slaveCfg); err != nil {
			return nil, err
		}
		records = append(records, recon.Record{
			"config_type": configType,
			"baud_rate":   baudRate,
			"parity":      parity,
			"stop_bit":    stopBit,
			"slave_cfg":   parseJSONList(slaveCfg),
		})
	}
	return records, rows.Err()
}

// inputSlots loads the unit's input slots ordered by slot.
func (p *Provider) inputSlots(ctx context.Context, unitID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT function_value, ramp, preset, led_status, auto_mode, delay_off, multi_group_config
		FROM inputs
		WHERE unit_id = ?
		ORDER BY slot`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []recon.Record
	for rows.Next() {
		var functionValue, ramp, preset, ledStatus, autoMode, delayOff int
		var groupCfg sql.NullString
		if err := rows.Scan(&functionValue, &ramp, &preset, &ledStatus, &autoMode, &delayOff, &groupCfg); err != nil {
			return nil, err
		}
		records = append(records, recon.Record{
			"function_value":     functionValue,
			"ramp":               ramp,
			"preset":             preset,
			"led_status":         ledStatus,
			"auto_mode":          autoMode,
			"delay_off":          delayOff,
			"multi_group_config": parseJSONList(groupCfg),
		})
	}
	return records, rows.Err()
}

// outputSlots loads the unit's output slots ordered by slot. device_id
// is the editor's device reference, resolved to a physical address by
// the engine through the store's resolver.
func (p *Provider) outputSlots(ctx context.Context, unitID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT type, device_id, delay_on, delay_off, min_dim, max_dim, auto_trigger,
		       fan_type, temperature_type, power_mode, window_check
		FROM outputs
		WHERE unit_id = ?
		ORDER BY slot`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []recon.Record
	for rows.Next() {
		var typ, delayOn, delayOff, minDim, maxDim, autoTrigger int
		var fanType, temperatureType, powerMode, windowCheck int
		var deviceID sql.NullInt64
		if err := rows.Scan(&typ, &deviceID, &delayOn, &delayOff, &minDim, &maxDim, &autoTrigger,
			&fanType, &temperatureType, &powerMode, &windowCheck); err != nil {
			return nil, err
		}
		rec := recon.Record{
			"type":             typ,
			"delay_on":         delayOn,
			"delay_off":        delayOff,
			"min_dim":          minDim,
			"max_dim":          maxDim,
			"auto_trigger":     autoTrigger,
			"fan_type":         fanType,
			"temperature_type": temperatureType,
			"power_mode":       powerMode,
			"window_check":     windowCheck,
		}
		if deviceID.Valid {
			rec["device_id"] = int(deviceID.Int64)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// scenes loads the unit's scenes with their item lists. Items carry no
// meaningful storage order; the comparator matches them by composite
// key.
func (p *Provider) scenes(ctx context.Context, unitID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, address
		FROM scenes
		WHERE unit_id = ?
		ORDER BY address`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type sceneRow struct {
		id      int64
		address int
	}
	var sceneRows []sceneRow
	for rows.Next() {
		var s sceneRow
		if err := rows.Scan(&s.id, &s.address); err != nil {
			return nil, err
		}
		sceneRows = append(sceneRows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var records []recon.Record
	for _, s := range sceneRows {
		items, err := p.sceneItems(ctx, s.id)
		if err != nil {
			return nil, err
		}
		records = append(records, recon.Record{
			"address": s.address,
			"items":   items,
		})
	}
	return records, nil
}

// sceneItems loads one scene's items.
func (p *Provider) sceneItems(ctx context.Context, sceneID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT object_value, item_address, item_value, delay
		FROM scene_items
		WHERE scene_id = ?`, sceneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []recon.Record
	for rows.Next() {
		var objectValue, itemAddress, delay int
		var itemValue string
		if err := rows.Scan(&objectValue, &itemAddress, &itemValue, &delay); err != nil {
			return nil, err
		}
		items = append(items, recon.Record{
			"object_value": objectValue,
			"item_address": itemAddress,
			"item_value":   itemValue,
			"delay":        delay,
		})
	}
	return items, rows.Err()
}

// multiScenes loads the unit's multi-scenes with their ordered scene
// references.
func (p *Provider) multiScenes(ctx context.Context, unitID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, address, type
		FROM multi_scenes
		WHERE unit_id = ?
		ORDER BY address`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type msRow struct {
		id      int64
		address int
		typ     int
	}
	var msRows []msRow
	for rows.Next() {
		var m msRow
		if err := rows.Scan(&m.id, &m.address, &m.typ); err != nil {
			return nil, err
		}
		msRows = append(msRows, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var records []recon.Record
	for _, m := range msRows {
		members, err := p.orderedMembers(ctx,
			`SELECT scene_address FROM multi_scene_members WHERE multi_scene_id = ? ORDER BY sort_order`,
			m.id, "scene_address")
		if err != nil {
			return nil, err
		}
		records = append(records, recon.Record{
			"address": m.address,
			"type":    m.typ,
			"scenes":  members,
		})
	}
	return records, nil
}

// sequences loads the unit's sequences with their ordered multi-scene
// references.
func (p *Provider) sequences(ctx context.Context, unitID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, address
		FROM sequences
		WHERE unit_id = ?
		ORDER BY address`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type seqRow struct {
		id      int64
		address int
	}
	var seqRows []seqRow
	for rows.Next() {
		var s seqRow
		if err := rows.Scan(&s.id, &s.address); err != nil {
			return nil, err
		}
		seqRows = append(seqRows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var records []recon.Record
	for _, s := range seqRows {
		members, err := p.orderedMembers(ctx,
			`SELECT multi_scene_address FROM sequence_members WHERE sequence_id = ? ORDER BY sort_order`,
			s.id, "multi_scene_address")
		if err != nil {
			return nil, err
		}
		records = append(records, recon.Record{
			"address":      s.address,
			"multi_scenes": members,
		})
	}
	return records, nil
}

// orderedMembers loads one parent's child reference rows, preserving
// the stored order.
func (p *Provider) orderedMembers(ctx context.Context, query string, parentID int64, field string) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []recon.Record
	for rows.Next() {
		var address int
		if err := rows.Scan(&address); err != nil {
			return nil, err
		}
		members = append(members, recon.Record{field: address})
	}
	return members, rows.Err()
}

// schedules loads the unit's schedules. days is a JSON array of day
// names; the scene references have no order on the device and load
// unordered.
func (p *Provider) schedules(ctx context.Context, unitID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, enabled, time, days
		FROM schedules
		WHERE unit_id = ?
		ORDER BY name`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type schedRow struct {
		id      int64
		name    string
		enabled int
		time    string
		days    sql.NullString
	}
	var schedRows []schedRow
	for rows.Next() {
		var s schedRow
		if err := rows.Scan(&s.id, &s.name, &s.enabled, &s.time, &s.days); err != nil {
			return nil, err
		}
		schedRows = append(schedRows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var records []recon.Record
	for _, s := range schedRows {
		scenes, err := p.orderedMembers(ctx,
			`SELECT scene_address FROM schedule_scenes WHERE schedule_id = ? ORDER BY scene_address`,
			s.id, "scene_address")
		if err != nil {
			return nil, err
		}
		records = append(records, recon.Record{
			"name":    s.name,
			"enabled": s.enabled,
			"time":    s.time,
			"days":    parseJSONList(s.days),
			"scenes":  scenes,
		})
	}
	return records, nil
}

// curtains loads the unit's curtain configurations. Group references
// are nullable; NULL loads as an absent ref so the comparators' unset
// equivalence applies.
func (p *Provider) curtains(ctx context.Context, unitID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT address, type, runtime, open_group, close_group, stop_group,
		       pause_period, reversal_delay
		FROM curtains
		WHERE unit_id = ?
		ORDER BY address`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []recon.Record
	for rows.Next() {
		var address, typ, runtime, pausePeriod, reversalDelay int
		var openGroup, closeGroup, stopGroup sql.NullInt64
		if err := rows.Scan(&address, &typ, &runtime, &openGroup, &closeGroup, &stopGroup,
			&pausePeriod, &reversalDelay); err != nil {
			return nil, err
		}
		records = append(records, recon.Record{
			"address":        address,
			"type":           typ,
			"runtime":        runtime,
			"open_group":     nullableRef(openGroup),
			"close_group":    nullableRef(closeGroup),
			"stop_group":     nullableRef(stopGroup),
			"pause_period":   pausePeriod,
			"reversal_delay": reversalDelay,
		})
	}
	return records, rows.Err()
}

// knxPoints loads the unit's KNX point configurations.
func (p *Provider) knxPoints(ctx context.Context, unitID int64) ([]recon.Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT address, type, factor, feedback, knx_group, rcu_group,
		       knx_switch_group, knx_dimming_group
		FROM knx
		WHERE unit_id = ?
		ORDER BY address`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []recon.Record
	for rows.Next() {
		var address, typ, factor, feedback int
		var knxGroup sql.NullString
		var rcuGroup, knxSwitchGroup, knxDimmingGroup sql.NullInt64
		if err := rows.Scan(&address, &typ, &factor, &feedback, &knxGroup, &rcuGroup,
			&knxSwitchGroup, &knxDimmingGroup); err != nil {
			return nil, err
		}
		rec := recon.Record{
			"address":           address,
			"type":              typ,
			"factor":            factor,
			"feedback":          feedback,
			"rcu_group":         nullableRef(rcuGroup),
			"knx_switch_group":  nullableRef(knxSwitchGroup),
			"knx_dimming_group": nullableRef(knxDimmingGroup),
		}
		// KNX group addresses are stored as text ("1/2/3"); NULL and
		// empty both mean unset.
		if knxGroup.Valid {
			rec["knx_group"] = knxGroup.String
		} else {
			rec["knx_group"] = nil
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// nullableRef converts a nullable integer reference to the engine's
// unset convention.
func nullableRef(v sql.NullInt64) any {
	if !v.Valid {
		return nil
	}
	return int(v.Int64)
}

// parseJSONList decodes a JSON array column. NULL, empty, and malformed
// values all load as an empty list so a bad row degrades to an empty
// comparison rather than an error.
func parseJSONList(v sql.NullString) []any {
	if !v.Valid || v.String == "" {
		return nil
	}
	var out []any
	if err := json.Unmarshal([]byte(v.String), &out); err != nil {
		return nil
	}
	return out
}
