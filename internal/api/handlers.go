package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/meokisama/toolkit-core/internal/audit"
	"github.com/meokisama/toolkit-core/internal/infrastructure/mqtt"
	"github.com/meokisama/toolkit-core/internal/netsnap"
	"github.com/meokisama/toolkit-core/internal/recon"
	"github.com/meokisama/toolkit-core/internal/unit"
)

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   s.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// UnitResponse is one project unit in API responses.
type UnitResponse struct {
	ID int64 `json:"id"`
	unit.Unit
}

// UnitListResponse is the unit list payload.
type UnitListResponse struct {
	Units []UnitResponse `json:"units"`
	Count int            `json:"count"`
}

// handleListUnits returns the units defined in the project database.
func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.project.Units(r.Context())
	if err != nil {
		s.logger.Error("listing project units", "error", err)
		writeInternalError(w, "failed to read project units")
		return
	}

	resp := UnitListResponse{Units: make([]UnitResponse, 0, len(units))}
	for _, u := range units {
		resp.Units = append(resp.Units, UnitResponse{ID: u.ID, Unit: u.Unit})
	}
	resp.Count = len(resp.Units)

	writeJSON(w, http.StatusOK, resp)
}

// CompareResponse is the comparison result payload. Unmatched units are
// reported by identity key so the operator sees exactly which side is
// missing them.
type CompareResponse struct {
	Runs             []audit.Run `json:"runs"`
	UnmatchedProject []string    `json:"unmatched_project"`
	UnmatchedNetwork []string    `json:"unmatched_network"`
}

// handleCompare runs the comparison engine over uploaded network
// snapshots.
//
// The body is one snapshot document or a JSON array of them. Each
// snapshot's unit is matched against the project by exact identity;
// every matched pair is compared, persisted to the run history, and
// (when a publisher is configured) announced over MQTT.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, "reading request body: "+err.Error())
		return
	}

	snapshots, err := decodeSnapshots(body)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if len(snapshots) == 0 {
		writeBadRequest(w, "no snapshots in request")
		return
	}

	ctx := r.Context()

	projectUnits, err := s.project.Units(ctx)
	if err != nil {
		s.logger.Error("listing project units", "error", err)
		writeInternalError(w, "failed to read project units")
		return
	}

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

	resp := CompareResponse{
		Runs:             make([]audit.Run, 0, len(matches)),
		UnmatchedProject: []string{},
		UnmatchedNetwork: []string{},
	}

	matchedKeys := make(map[string]bool, len(matches))
	for _, m := range matches {
		matchedKeys[m.Database.Key()] = true

		dbTrees, err := s.project.DomainTrees(ctx, idByKey[m.Database.Key()])
		if err != nil {
			s.logger.Error("loading domain trees", "unit", m.Database.Key(), "error", err)
			writeInternalError(w, "failed to read project configuration for "+m.Database.Key())
			return
		}

		summary := s.engine.Compare(m.Database, m.Network, dbTrees, treesByKey[m.Network.Key()])

		run := audit.Run{
			DatabaseUnit: m.Database,
			NetworkUnit:  m.Network,
			Report:       summary.Aggregate,
		}
		if err := s.runs.Create(ctx, &run); err != nil {
			s.logger.Error("persisting comparison run", "unit", m.Database.Key(), "error", err)
			writeInternalError(w, "failed to record comparison run")
			return
		}

		s.publishRun(run)
		resp.Runs = append(resp.Runs, run)
	}

	for _, u := range dbUnits {
		if !matchedKeys[u.Key()] {
			resp.UnmatchedProject = append(resp.UnmatchedProject, u.Key())
		}
	}
	seenNet := make(map[string]bool, len(netUnits))
	for _, u := range netUnits {
		if !matchedKeys[u.Key()] && !seenNet[u.Key()] {
			seenNet[u.Key()] = true
			resp.UnmatchedNetwork = append(resp.UnmatchedNetwork, u.Key())
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// publishRun announces a completed run over MQTT. Publish failures are
// logged, never surfaced: the run is already persisted and the broker
// is an optional observer.
func (s *Server) publishRun(run audit.Run) {
	if s.publisher == nil || !s.publisher.IsConnected() {
		return
	}
	topic := mqtt.Topics{}.AuditCompleted(run.NetworkUnit.IPAddress)
	if err := s.publisher.PublishJSON(topic, run); err != nil {
		s.logger.Warn("publishing audit event", "topic", topic, "error", err)
	}
}

// decodeSnapshots accepts one snapshot object or an array of them.
func decodeSnapshots(body []byte) ([]*netsnap.Snapshot, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var docs []json.RawMessage
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, err
		}
		snapshots := make([]*netsnap.Snapshot, 0, len(docs))
		for _, doc := range docs {
			snap, err := netsnap.DecodeBytes(doc)
			if err != nil {
				return nil, err
			}
			snapshots = append(snapshots, snap)
		}
		return snapshots, nil
	}

	snap, err := netsnap.DecodeBytes(trimmed)
	if err != nil {
		return nil, err
	}
	return []*netsnap.Snapshot{snap}, nil
}

// handleListRuns returns the comparison run history, newest first.
//
// Query parameters: only_unequal (bool), limit, offset.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := audit.Filter{}

	q := r.URL.Query()
	if v := q.Get("only_unequal"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeBadRequest(w, "only_unequal must be a boolean")
			return
		}
		filter.OnlyUnequal = b
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeBadRequest(w, "limit must be an integer")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeBadRequest(w, "offset must be an integer")
			return
		}
		filter.Offset = n
	}

	result, err := s.runs.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing comparison runs", "error", err)
		writeInternalError(w, "failed to read run history")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
