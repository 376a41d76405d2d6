package dashboard

import (
	"testing"
	"time"
)

func TestYearRangeBounds(t *testing.T) {
	rng := yearRange(2025)

	if rng.StartDate == nil || rng.EndDate == nil {
		t.Fatal("expected both bounds set")
	}
	if !rng.StartDate.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("start = %v", rng.StartDate)
	}
	if rng.EndDate.Year() != 2025 || rng.EndDate.Month() != time.December || rng.EndDate.Day() != 31 {
		t.Errorf("end = %v", rng.EndDate)
	}
}

func TestCurrentMonthRangeCoversToday(t *testing.T) {
	rng := currentMonthRange()
	n := time.Now()

	if rng.StartDate.Month() != n.Month() || rng.StartDate.Day() != 1 {
		t.Errorf("start = %v", rng.StartDate)
	}
	if n.Before(*rng.StartDate) || n.After(*rng.EndDate) {
		t.Errorf("now %v outside [%v, %v]", n, rng.StartDate, rng.EndDate)
	}
	if rng.EndDate.Month() != n.Month() {
		t.Errorf("end crossed into next month: %v", rng.EndDate)
	}
}

func TestSnapshotJSONAbsent(t *testing.T) {
	m := NewManager()
	if got := m.SnapshotJSON("org-none"); got != nil {
		t.Errorf("expected nil payload, got %s", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := NewManager()
	snap := &Snapshot{LoadedAt: time.Now()}

	m.snapMu.Lock()
	m.snapshots["org1"] = snap
	m.snapMu.Unlock()

	if got := m.Snapshot("org1"); got != snap {
		t.Error("expected the stored snapshot back")
	}
	if payload := m.SnapshotJSON("org1"); payload == nil {
		t.Error("expected serialized payload")
	}
}
