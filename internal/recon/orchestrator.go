package recon

import (
	"fmt"
	"log/slog"

	"github.com/meokisama/toolkit-core/internal/unit"
)

// Domain names, in the fixed order the orchestrator invokes the
// comparators. The order is part of the output contract: aggregate
// reports are reproducible across calls and across processes.
const (
	DomainRS485      = "RS485"
	DomainInput      = "Input"
	DomainOutput     = "Output"
	DomainScene      = "Scene"
	DomainMultiScene = "Multi-Scene"
	DomainSchedule   = "Schedule"
	DomainCurtain    = "Curtain"
	DomainKNX        = "KNX"
	DomainSequence   = "Sequence"
)

// DomainOrder is the fixed invocation and aggregation order.
var DomainOrder = []string{
	DomainRS485,
	DomainInput,
	DomainOutput,
	DomainScene,
	DomainMultiScene,
	DomainSchedule,
	DomainCurtain,
	DomainKNX,
	DomainSequence,
}

// DomainTrees carries one side's per-domain record collections, already
// scoped to the owning unit by the data provider. The engine does not
// filter by ownership itself.
type DomainTrees struct {
	RS485       []Record
	Inputs      []Record
	Outputs     []Record
	Scenes      []Record
	MultiScenes []Record
	Schedules   []Record
	Curtains    []Record
	KNX         []Record
	Sequences   []Record
}

// unitScalars is the unit-level scalar field set. CanLoad and RecoveryMode
// use the boolean/int duality; the rest compare strictly.
var unitScalars = []struct {
	label   string
	value   func(unit.Unit) any
	coerced bool
}{
	{label: "Board Type", value: func(u unit.Unit) any { return u.BoardType }},
	{label: "CAN ID", value: func(u unit.Unit) any { return u.CANID }},
	{label: "IP Address", value: func(u unit.Unit) any { return u.IPAddress }},
	{label: "Mode", value: func(u unit.Unit) any { return u.Mode }},
	{label: "Can Load", value: func(u unit.Unit) any { return u.CanLoad }, coerced: true},
	{label: "Recovery Mode", value: func(u unit.Unit) any { return u.RecoveryMode }, coerced: true},
}

// Engine runs all domain comparators for matched unit pairs.
//
// The engine itself is stateless and safe for concurrent use; resolver
// and logger are the only collaborators, and both must tolerate
// concurrent calls.
type Engine struct {
	log      *slog.Logger
	resolver AddressResolver
}

// NewEngine creates an engine. log may be nil (slog.Default is used);
// resolver may be nil, in which case output device references never
// resolve.
func NewEngine(log *slog.Logger, resolver AddressResolver) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{log: log, resolver: resolver}
}

// Compare produces the aggregate comparison for one matched unit pair.
//
// Unit-level scalars are compared first, then every domain in
// DomainOrder. Each domain runs inside a failure boundary: a panic in
// one comparator becomes a single "<Domain>: comparison failed (...)"
// entry and the remaining domains still run, so one domain's bug can
// never hide the others' results.
func (e *Engine) Compare(dbUnit, netUnit unit.Unit, db, net DomainTrees) Summary {
	summary := Summary{
		DatabaseUnit: dbUnit,
		NetworkUnit:  netUnit,
		Unit:         e.compareUnitScalars(dbUnit, netUnit),
		Domains:      make(map[string]Report, len(DomainOrder)),
	}

	for _, d := range summary.Unit.Differences {
		summary.Aggregate.Differences = append(summary.Aggregate.Differences, Difference{
			Kind:    d.Kind,
			Domain:  "Unit",
			Message: "Unit: " + d.Message,
		})
	}

	for _, domain := range DomainOrder {
		rep := e.runDomain(domain, func() Report {
			return e.compareDomain(domain, db, net)
		})
		summary.Domains[domain] = rep

		for _, d := range rep.Differences {
			summary.Aggregate.Differences = append(summary.Aggregate.Differences, Difference{
				Kind:    d.Kind,
				Domain:  domain,
				Message: domain + ": " + d.Message,
			})
		}
	}

	return summary
}

// compareDomain dispatches to the domain's comparator.
func (e *Engine) compareDomain(domain string, db, net DomainTrees) Report {
	switch domain {
	case DomainRS485:
		return CompareRS485(db.RS485, net.RS485)
	case DomainInput:
		return CompareInputs(db.Inputs, net.Inputs)
	case DomainOutput:
		return CompareOutputs(db.Outputs, net.Outputs, e.resolver)
	case DomainScene:
		return CompareScenes(db.Scenes, net.Scenes)
	case DomainMultiScene:
		return CompareMultiScenes(db.MultiScenes, net.MultiScenes)
	case DomainSchedule:
		return CompareSchedules(db.Schedules, net.Schedules, e.log)
	case DomainCurtain:
		return CompareCurtains(db.Curtains, net.Curtains)
	case DomainKNX:
		return CompareKNX(db.KNX, net.KNX)
	case DomainSequence:
		return CompareSequences(db.Sequences, net.Sequences)
	default:
		return Report{}
	}
}

// runDomain is the per-domain failure boundary.
func (e *Engine) runDomain(domain string, fn func() Report) (rep Report) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("domain comparison failed", "domain", domain, "panic", r)
			rep = Report{Differences: []Difference{{
				Kind:    KindFailure,
				Message: fmt.Sprintf("%s: comparison failed (%v)", domain, r),
			}}}
		}
	}()
	return fn()
}

// compareUnitScalars compares the unit-level scalar fields.
func (e *Engine) compareUnitScalars(dbUnit, netUnit unit.Unit) Report {
	var rep Report
	key := dbUnit.IPAddress

	for _, f := range unitScalars {
		dbVal := f.value(dbUnit)
		netVal := f.value(netUnit)

		var equal bool
		if f.coerced {
			equal = truthy(dbVal) == truthy(netVal)
		} else {
			equal = fmt.Sprint(dbVal) == fmt.Sprint(netVal)
		}
		if !equal {
			rep.addFieldDiff("Unit", key, f.label, dbVal, netVal)
		}
	}

	return rep
}
