// Package unit defines the Unit type shared by the reconciliation engine,
// the project store, and the network snapshot decoder.
//
// A Unit is one physical automation controller. Its identity on the
// installation is the triple (board type, CAN identifier, IP address);
// the remaining fields are configuration that the engine compares but
// does not use for matching.
package unit

import "fmt"

// Unit represents one automation controller.
//
// CanLoad and RecoveryMode are deliberately `any`: the project database
// stores them as 0/1 integers while the wire decoder produces booleans.
// The engine compares them through its boolean/int coercion rule rather
// than forcing one representation here.
type Unit struct {
	// Identity triple.
	BoardType string `json:"board_type"`
	CANID     string `json:"can_id"`
	IPAddress string `json:"ip_address"`

	// Compared configuration.
	Mode         string `json:"mode"`
	CanLoad      any    `json:"can_load,omitempty"`
	RecoveryMode any    `json:"recovery_mode,omitempty"`

	// Description is editor-only metadata; never compared.
	Description string `json:"description,omitempty"`
}

// Key returns a short human-readable identity string, used in logs and
// audit records. Format: "<board type> <can id> @ <ip>".
func (u Unit) Key() string {
	return fmt.Sprintf("%s %s @ %s", u.BoardType, u.CANID, u.IPAddress)
}

// SameIdentity reports whether two units refer to the same physical
// controller: exact equality of the identity triple.
func (u Unit) SameIdentity(o Unit) bool {
	return u.BoardType == o.BoardType &&
		u.CANID == o.CANID &&
		u.IPAddress == o.IPAddress
}
