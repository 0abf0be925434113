package recon

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Schedule comparison.
//
// Schedules use a derived key: the project database encodes the logical
// schedule index in the record name ("Schedule 3"), while the wire
// decoder exposes an explicit scheduleIndex field. Records whose name
// does not match the pattern cannot be paired and are excluded, not
// reported.
//
// Unlike multi-scene and sequence references, a schedule's scene
// references carry no trigger ordering on the device, so they are
// compared as an unordered set.

// scheduleNamePattern extracts the index from a database schedule name.
var scheduleNamePattern = regexp.MustCompile(`^Schedule\s+(\d+)$`)

// weekDayIndex maps day names (case-insensitive, full or three-letter) to
// their Monday-first position in the 7-element vector.
var weekDayIndex = map[string]int{
	"monday": 0, "mon": 0,
	"tuesday": 1, "tue": 1,
	"wednesday": 2, "wed": 2,
	"thursday": 3, "thu": 3,
	"friday": 4, "fri": 4,
	"saturday": 5, "sat": 5,
	"sunday": 6, "sun": 6,
}

// weekDayNames renders the vector back to names for difference messages.
var weekDayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// CompareSchedules compares the schedule configuration of one unit pair.
//
// A malformed day-name list on one record is logged and skips only that
// record's day-of-week sub-comparison; the rest of the schedule and all
// other schedules still compare. log may be nil.
func CompareSchedules(db, net []Record, log *slog.Logger) Report {
	if log == nil {
		log = slog.Default()
	}
	var rep Report

	dbByIdx := make(map[int]Record, len(db))
	for _, r := range db {
		idx, ok := parseScheduleIndex(r.Str("name"))
		if !ok {
			continue
		}
		if _, exists := dbByIdx[idx]; !exists {
			dbByIdx[idx] = r
		}
	}

	netByIdx := make(map[int]Record, len(net))
	for _, r := range net {
		idx := r.Int("scheduleIndex")
		if _, exists := netByIdx[idx]; !exists {
			netByIdx[idx] = r
		}
	}

	compareByAddress(&rep, "Schedule", dbByIdx, netByIdx, func(key string, dbRec, netRec Record) {
		if truthy(dbRec.Val("enabled")) != truthy(netRec.Val("enabled")) {
			rep.addFieldDiff("Schedule", key, "Enabled", dbRec.Val("enabled"), netRec.Val("enabled"))
		}

		compareScheduleTime(&rep, key, dbRec, netRec, log)
		compareScheduleDays(&rep, key, dbRec, netRec, log)
		compareScheduleScenes(&rep, key, dbRec, netRec)
	})

	return rep
}

// parseScheduleIndex recovers the logical index from a database-side
// schedule name.
func parseScheduleIndex(name string) (int, bool) {
	m := scheduleNamePattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return idx, true
}

// compareScheduleTime decomposes the database-side "HH:MM" string and
// compares it against the network-side hour and minute fields. The
// difference message renders both sides in HH:MM form.
func compareScheduleTime(rep *Report, key string, dbRec, netRec Record, log *slog.Logger) {
	hour, minute, err := parseClock(dbRec.Str("time"))
	if err != nil {
		log.Warn("skipping schedule time comparison",
			"schedule", key, "time", dbRec.Str("time"), "error", err)
		return
	}

	netHour := netRec.Int("hour")
	netMinute := netRec.Int("minute")
	if hour != netHour || minute != netMinute {
		rep.addFieldDiff("Schedule", key, "Time",
			fmt.Sprintf("%02d:%02d", hour, minute),
			fmt.Sprintf("%02d:%02d", netHour, netMinute))
	}
}

// parseClock parses an "HH:MM" string.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("recon: invalid time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("recon: invalid hour %q", parts[0])
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("recon: invalid minute %q", parts[1])
	}
	return hour, minute, nil
}

// compareScheduleDays converts the database-side day-name list into a
// Monday..Sunday boolean vector and compares it against the network-side
// weekDays vector. An unknown day name is a soft failure for this record
// only.
func compareScheduleDays(rep *Report, key string, dbRec, netRec Record, log *slog.Logger) {
	dbVec, err := dayVector(dbRec.Strs("days"))
	if err != nil {
		log.Warn("skipping schedule day comparison", "schedule", key, "error", err)
		return
	}

	var netVec [7]bool
	for i, b := range netRec.Bools("weekDays") {
		if i >= len(netVec) {
			break
		}
		netVec[i] = b
	}

	if dbVec != netVec {
		rep.addFieldDiff("Schedule", key, "Days", formatDays(dbVec), formatDays(netVec))
	}
}

// dayVector converts day names to the fixed Monday-first vector.
func dayVector(days []string) ([7]bool, error) {
	var vec [7]bool
	for _, day := range days {
		idx, ok := weekDayIndex[strings.ToLower(strings.TrimSpace(day))]
		if !ok {
			return vec, fmt.Errorf("recon: unknown day name %q", day)
		}
		vec[idx] = true
	}
	return vec, nil
}

// formatDays renders a day vector as "Mon,Wed,Fri", or "none".
func formatDays(vec [7]bool) string {
	var names []string
	for i, set := range vec {
		if set {
			names = append(names, weekDayNames[i])
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// compareScheduleScenes compares the referenced scene lists as unordered
// sets. A length mismatch is reported first; only equal lengths go on to
// the set check, which reports a single combined message.
func compareScheduleScenes(rep *Report, key string, dbRec, netRec Record) {
	dbRefs := memberAddresses(dbRec.List("scenes"), "scene_address")
	netRefs := intSlice(netRec.Nums("sceneAddresses"))

	if len(dbRefs) != len(netRefs) {
		rep.addf(KindCount, "Schedule %s Scene count: DB=%d, Network=%d",
			key, len(dbRefs), len(netRefs))
		return
	}

	sortedDB := append([]int(nil), dbRefs...)
	sortedNet := append([]int(nil), netRefs...)
	sort.Ints(sortedDB)
	sort.Ints(sortedNet)

	for i := range sortedDB {
		if sortedDB[i] != sortedNet[i] {
			rep.addFieldDiff("Schedule", key, "Scenes", formatIntList(sortedDB), formatIntList(sortedNet))
			return
		}
	}
}
