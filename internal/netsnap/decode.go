package netsnap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/meokisama/toolkit-core/internal/recon"
	"github.com/meokisama/toolkit-core/internal/unit"
)

// Decoder errors.
var (
	// ErrInvalidSnapshot is returned when the document is not valid JSON
	// or not an object.
	ErrInvalidSnapshot = errors.New("netsnap: invalid snapshot document")

	// ErrMissingUnit is returned when the unit identity section is
	// absent or carries no IP address.
	ErrMissingUnit = errors.New("netsnap: snapshot has no unit identity")
)

// Snapshot is one decoded unit capture.
type Snapshot struct {
	Unit  unit.Unit
	Trees recon.DomainTrees
}

// Decode reads and decodes one snapshot document.
func Decode(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("netsnap: reading snapshot: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes one snapshot document from memory.
func DecodeBytes(data []byte) (*Snapshot, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	root := recon.Record(doc)

	u, err := decodeUnit(root.Child("unit"))
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Unit: u,
		Trees: recon.DomainTrees{
			RS485:       root.List("rs485"),
			Inputs:      root.List("inputs"),
			Outputs:     root.List("outputs"),
			Scenes:      root.List("scenes"),
			MultiScenes: root.List("multiScenes"),
			Schedules:   root.List("schedules"),
			Curtains:    root.List("curtains"),
			KNX:         root.List("knx"),
			Sequences:   root.List("sequences"),
		},
	}, nil
}

// decodeUnit extracts the unit identity section. CanLoad and
// RecoveryMode keep their raw values: the scanner emits booleans on
// recent firmware and 0/1 integers on older firmware, and the engine's
// coercion rule handles both.
func decodeUnit(rec recon.Record) (unit.Unit, error) {
	if len(rec) == 0 || rec.Str("ipAddress") == "" {
		return unit.Unit{}, ErrMissingUnit
	}

	return unit.Unit{
		BoardType:    rec.Str("boardType"),
		CANID:        canID(rec),
		IPAddress:    rec.Str("ipAddress"),
		Mode:         rec.Str("mode"),
		CanLoad:      rec.Val("canLoad"),
		RecoveryMode: rec.Val("recoveryMode"),
		Description:  rec.Str("description"),
	}, nil
}

// canID normalises the CAN identifier to a string. Older scanner
// builds emit it as a JSON number.
func canID(rec recon.Record) string {
	if s := rec.Str("canId"); s != "" {
		return s
	}
	if rec.Has("canId") {
		return formatCANNumber(rec.Num("canId"))
	}
	return ""
}

// formatCANNumber renders a numeric CAN id without a decimal point.
func formatCANNumber(n float64) string {
	return fmt.Sprintf("%d", int(n))
}
