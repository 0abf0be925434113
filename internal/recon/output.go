package recon

import (
	"fmt"
	"strconv"
)

// Output slot comparison.
//
// Outputs are slot-keyed like inputs. The detailed field set depends on
// what the slot drives: lighting-style outputs (relay, dimmer, analog)
// and air-conditioner outputs carry different configuration, selected by
// the slot's own type field. Type itself is always compared first.
//
// Address reconciliation is asymmetric: the database stores a device
// reference that must be resolved to a physical address through the
// caller-supplied AddressResolver, while the wire decoder exposes the
// address directly under config.address. Zero and "unresolved" both
// normalise to unassigned, and two unassigned sides are equal — that is
// the majority case and must not flood the report.

// DeviceKind partitions the address lookup the resolver performs.
type DeviceKind string

// Device kinds for output address resolution.
const (
	DeviceKindLighting       DeviceKind = "lighting"
	DeviceKindAirConditioner DeviceKind = "air_conditioner"
)

// AddressResolver resolves a database device reference to the physical
// address configured for that device. The boolean is false when the
// device id is unknown.
//
// The engine never reads the project database itself; the caller supplies
// this lookup.
type AddressResolver interface {
	ResolveAddress(deviceID int, kind DeviceKind) (int, bool)
}

// Output slot types. Zero is the unused sentinel.
const (
	outputTypeRelay          = 1
	outputTypeDimmer         = 2
	outputTypeAnalog         = 3
	outputTypeAirConditioner = 4
)

// outputLightingFields applies to relay, dimmer, and analog slots.
var outputLightingFields = []fieldSpec{
	{Label: "Delay On", DB: "delay_on", Net: "delayOn", Kind: kindNumber},
	{Label: "Delay Off", DB: "delay_off", Net: "delayOff", Kind: kindNumber},
	{Label: "Min Dim", DB: "min_dim", Net: "minDim", Kind: kindNumber},
	{Label: "Max Dim", DB: "max_dim", Net: "maxDim", Kind: kindNumber},
	{Label: "Auto Trigger", DB: "auto_trigger", Net: "autoTrigger", Kind: kindFlag},
}

// outputAirConFields applies to air-conditioner slots.
var outputAirConFields = []fieldSpec{
	{Label: "Fan Type", DB: "fan_type", Net: "fanType", Kind: kindNumber},
	{Label: "Temperature Type", DB: "temperature_type", Net: "temperatureType", Kind: kindNumber},
	{Label: "Power Mode", DB: "power_mode", Net: "powerMode", Kind: kindNumber},
	{Label: "Window Check", DB: "window_check", Net: "windowCheck", Kind: kindFlag},
}

// CompareOutputs compares the output slot configuration of one unit pair.
// resolver may be nil, in which case every database device reference is
// treated as unresolved.
func CompareOutputs(db, net []Record, resolver AddressResolver) Report {
	var rep Report

	n := len(db)
	if len(net) > n {
		n = len(net)
	}

	for i := 0; i < n; i++ {
		key := strconv.Itoa(i + 1)

		switch {
		case i >= len(net):
			rep.addPresence("Output", key, "DB")
		case i >= len(db):
			rep.addPresence("Output", key, "Network")
		default:
			dbRec, netRec := db[i], net[i]
			dbType := dbRec.Int("type")
			netType := netRec.Int("type")
			if dbType == 0 && netType == 0 {
				continue // unused on both sides
			}

			if dbType != netType {
				rep.addFieldDiff("Output", key, "Type", dbRec.Val("type"), netRec.Val("type"))
			}

			// The intended (database) type selects the detailed set;
			// when the database slot is unused the network type decides.
			typeForFields := dbType
			if typeForFields == 0 {
				typeForFields = netType
			}
			if typeForFields == outputTypeAirConditioner {
				compareFields(&rep, "Output", key, outputAirConFields, dbRec, netRec)
			} else {
				compareFields(&rep, "Output", key, outputLightingFields, dbRec, netRec)
			}

			compareOutputAddress(&rep, key, typeForFields, dbRec, netRec, resolver)
		}
	}

	return rep
}

// compareOutputAddress reconciles the slot's assigned device address.
func compareOutputAddress(rep *Report, key string, slotType int, dbRec, netRec Record, resolver AddressResolver) {
	deviceID := dbRec.Int("device_id")

	kind := DeviceKindLighting
	if slotType == outputTypeAirConditioner {
		kind = DeviceKindAirConditioner
	}

	dbAddr := 0
	resolved := false
	if deviceID > 0 && resolver != nil {
		if addr, ok := resolver.ResolveAddress(deviceID, kind); ok {
			dbAddr, resolved = addr, true
		}
	}

	netAddr := netRec.Child("config").Int("address")

	dbAssigned := resolved && dbAddr > 0
	netAssigned := netAddr > 0
	if !dbAssigned && !netAssigned {
		return // both unassigned: the majority case, not a difference
	}
	if dbAssigned && netAssigned && dbAddr == netAddr {
		return
	}

	dbText := "unassigned"
	if dbAssigned {
		dbText = fmt.Sprintf("%d (device_id=%d)", dbAddr, deviceID)
	}
	netText := "unassigned"
	if netAssigned {
		netText = strconv.Itoa(netAddr)
	}

	rep.addf(KindField, "Output %s Address: DB=%s, Network=%s", key, dbText, netText)
}
