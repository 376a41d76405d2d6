package sessions

import (
	"testing"
	"time"

	"pitchpro/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfWeekMonday(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		// 2025-03-05 is a Wednesday.
		{time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC), date(2025, time.March, 3)},
		// Monday maps to itself.
		{date(2025, time.March, 3), date(2025, time.March, 3)},
		// Sunday belongs to the preceding Monday.
		{date(2025, time.March, 9), date(2025, time.March, 3)},
	}
	for _, tc := range cases {
		if got := StartOfWeek(tc.in); !got.Equal(tc.want) {
			t.Errorf("StartOfWeek(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRequiredMonthsSingleMonth(t *testing.T) {
	months := RequiredMonths(date(2025, time.March, 3))
	if len(months) != 1 || months[0] != (MonthYear{Month: 3, Year: 2025}) {
		t.Errorf("months = %v, want [{3 2025}]", months)
	}
}

func TestRequiredMonthsSpanningBoundary(t *testing.T) {
	// Week starting 2025-03-31 runs into April.
	months := RequiredMonths(date(2025, time.March, 31))
	if len(months) != 2 {
		t.Fatalf("months = %v, want two entries", months)
	}
	if months[0] != (MonthYear{Month: 3, Year: 2025}) || months[1] != (MonthYear{Month: 4, Year: 2025}) {
		t.Errorf("months = %v, want [{3 2025} {4 2025}]", months)
	}
}

func TestRequiredMonthsSpanningYear(t *testing.T) {
	months := RequiredMonths(date(2025, time.December, 29))
	if len(months) != 2 {
		t.Fatalf("months = %v, want two entries", months)
	}
	if months[1] != (MonthYear{Month: 1, Year: 2026}) {
		t.Errorf("second month = %v, want {1 2026}", months[1])
	}
}

func TestCalendarDocIDs(t *testing.T) {
	ids := CalendarDocIDs([]string{"P1", "P2"}, date(2025, time.March, 31))
	want := []string{"P1:3:2025", "P1:4:2025", "P2:3:2025", "P2:4:2025"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestMonthsBetweenQuarter(t *testing.T) {
	months := MonthsBetween(date(2025, time.January, 1), date(2025, time.March, 31))
	want := []MonthYear{{Month: 1, Year: 2025}, {Month: 2, Year: 2025}, {Month: 3, Year: 2025}}
	if len(months) != len(want) {
		t.Fatalf("months = %v, want %v", months, want)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("months[%d] = %v, want %v", i, months[i], want[i])
		}
	}
}

func TestMonthsBetweenAcrossYear(t *testing.T) {
	months := MonthsBetween(date(2025, time.November, 15), date(2026, time.February, 1))
	want := []MonthYear{{Month: 11, Year: 2025}, {Month: 12, Year: 2025}, {Month: 1, Year: 2026}, {Month: 2, Year: 2026}}
	if len(months) != len(want) {
		t.Fatalf("months = %v, want %v", months, want)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("months[%d] = %v, want %v", i, months[i], want[i])
		}
	}
}

func TestMonthsBetweenReversedIsEmpty(t *testing.T) {
	if months := MonthsBetween(date(2025, time.March, 1), date(2025, time.January, 1)); len(months) != 0 {
		t.Errorf("months = %v, want none", months)
	}
}

func TestCalendarDocIDsInRangeCoversEveryMonth(t *testing.T) {
	// A quarter-long list query must fetch the February and March docs,
	// not just the months around the start week.
	ids := CalendarDocIDsInRange([]string{"P1"}, date(2025, time.January, 1), date(2025, time.March, 31))
	want := []string{"P1:1:2025", "P1:2:2025", "P1:3:2025"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestCollectEntriesUniqueSessionIDs(t *testing.T) {
	docs := []models.CalendarDoc{
		{
			ID: "P1:3:2025",
			SessionEntries: []models.CalendarEntry{
				{SessionRef: "sessions/abc123"},
				{SessionRef: primitive.M{"id": "abc123"}}, // same session, different encoding
				{SessionRef: primitive.M{"path": "sessions/def456"}},
				{SessionRef: nil},
			},
		},
	}

	entries, ids := CollectEntries(docs)
	if len(entries) != 4 {
		t.Errorf("entries = %d, want 4", len(entries))
	}
	if len(ids) != 2 {
		t.Fatalf("unique ids = %v, want [abc123 def456]", ids)
	}
	if ids[0] != "abc123" || ids[1] != "def456" {
		t.Errorf("ids = %v, want [abc123 def456]", ids)
	}
	if entries[0].PitchID != "P1" {
		t.Errorf("pitch id = %q, want P1", entries[0].PitchID)
	}
}

func TestReconcileDeduplicatesRecurringBookings(t *testing.T) {
	entries := []Entry{
		{Entry: models.CalendarEntry{SessionRef: "sessions/abc123", SessionDate: date(2025, time.March, 5)}, DocID: "P1:3:2025", PitchID: "P1", Index: 0},
		{Entry: models.CalendarEntry{SessionRef: primitive.M{"id": "abc123"}, SessionDate: date(2025, time.March, 12)}, DocID: "P1:3:2025", PitchID: "P1", Index: 1},
	}

	items := Reconcile(entries, nil, map[string]string{"P1": "Main Pitch"}, models.DateRange{})
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 after dedup", len(items))
	}
	if items[0].ID != "abc123" {
		t.Errorf("id = %q, want abc123", items[0].ID)
	}
}

func TestReconcileSyntheticIDForUnresolvedRef(t *testing.T) {
	entries := []Entry{
		{Entry: models.CalendarEntry{SessionDate: date(2025, time.March, 5)}, DocID: "P1:3:2025", PitchID: "P1", Index: 2},
	}

	items := Reconcile(entries, nil, nil, models.DateRange{})
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].ID != "P1:3:2025-2" {
		t.Errorf("id = %q, want synthetic P1:3:2025-2", items[0].ID)
	}
	if items[0].BookedBy != "Unknown" {
		t.Errorf("owner = %q, want Unknown", items[0].BookedBy)
	}
	if items[0].Pitch != "Unknown Pitch" {
		t.Errorf("pitch = %q, want Unknown Pitch", items[0].Pitch)
	}
}

func TestReconcileMergesSessionDocFields(t *testing.T) {
	amount := 1500.0
	cache := map[string]models.SessionDoc{
		"abc123": {
			ID:              "abc123",
			SessionOwner:    models.SessionOwner{Name: "Jordan"},
			CollectedAmount: &amount,
			Status:          models.StatusConfirmed,
			SessionType:     models.TypePermanentWeekly,
		},
	}
	entries := []Entry{
		{
			Entry: models.CalendarEntry{
				SessionRef:  "sessions/abc123",
				SessionDate: date(2025, time.March, 5),
				SessionTime: &models.SessionTime{
					StartTime: primitive.M{"hour": 18, "minute": 30},
					EndTime:   primitive.M{"hour": 20, "minute": 0},
				},
				Status: models.StatusPending,
			},
			DocID: "P1:3:2025", PitchID: "P1",
		},
	}

	items := Reconcile(entries, cache, map[string]string{"P1": "Main Pitch"}, models.DateRange{})
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	got := items[0]
	if got.BookedBy != "Jordan" {
		t.Errorf("owner = %q, want Jordan", got.BookedBy)
	}
	if got.Amount == nil || *got.Amount != 1500 {
		t.Errorf("amount = %v, want 1500", got.Amount)
	}
	if got.Status != models.StatusConfirmed {
		t.Errorf("status = %q, want Confirmed (session doc wins over entry)", got.Status)
	}
	if got.Type != models.TypePermanentWeekly {
		t.Errorf("type = %q, want PermanentWeekly", got.Type)
	}
	if got.Time != "6:30 PM - 8:00 PM" {
		t.Errorf("time = %q, want 6:30 PM - 8:00 PM", got.Time)
	}
}

func TestReconcileCacheMissFallsBackToEntry(t *testing.T) {
	amount := 200.0
	entries := []Entry{
		{
			Entry: models.CalendarEntry{
				SessionRef:  "sessions/ghost",
				SessionDate: date(2025, time.March, 5),
				OwnerName:   "Walk-in",
				Amount:      &amount,
				Status:      models.StatusProcessing,
			},
			DocID: "P1:3:2025", PitchID: "P1",
		},
	}

	items := Reconcile(entries, map[string]models.SessionDoc{}, nil, models.DateRange{})
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].BookedBy != "Walk-in" || items[0].Status != models.StatusProcessing {
		t.Errorf("item = %+v, want entry-level fallbacks", items[0])
	}
	if items[0].Amount == nil || *items[0].Amount != 200 {
		t.Errorf("amount = %v, want 200", items[0].Amount)
	}
}

func TestReconcileRangeFilterEndOfDayInclusive(t *testing.T) {
	start := date(2025, time.March, 3)
	end := date(2025, time.March, 9)
	entries := []Entry{
		{Entry: models.CalendarEntry{SessionRef: "sessions/a", SessionDate: time.Date(2025, time.March, 9, 22, 0, 0, 0, time.UTC)}, DocID: "P1:3:2025", PitchID: "P1", Index: 0},
		{Entry: models.CalendarEntry{SessionRef: "sessions/b", SessionDate: date(2025, time.March, 10)}, DocID: "P1:3:2025", PitchID: "P1", Index: 1},
		{Entry: models.CalendarEntry{SessionRef: "sessions/c", SessionDate: date(2025, time.March, 2)}, DocID: "P1:3:2025", PitchID: "P1", Index: 2},
	}

	items := Reconcile(entries, nil, nil, models.DateRange{StartDate: &start, EndDate: &end})
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 (late evening on end date kept, outside days dropped)", len(items))
	}
	if items[0].ID != "a" {
		t.Errorf("id = %q, want a", items[0].ID)
	}
}

func TestReconcileSortsNewestFirst(t *testing.T) {
	entries := []Entry{
		{Entry: models.CalendarEntry{SessionRef: "sessions/old", SessionDate: date(2025, time.March, 1)}, DocID: "P1:3:2025", PitchID: "P1", Index: 0},
		{Entry: models.CalendarEntry{SessionRef: "sessions/new", SessionDate: date(2025, time.March, 20)}, DocID: "P1:3:2025", PitchID: "P1", Index: 1},
		{Entry: models.CalendarEntry{SessionRef: "sessions/mid", SessionDate: date(2025, time.March, 10)}, DocID: "P1:3:2025", PitchID: "P1", Index: 2},
	}

	items := Reconcile(entries, nil, nil, models.DateRange{})
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	for i, want := range []string{"new", "mid", "old"} {
		if items[i].ID != want {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, want)
		}
	}
}

func TestParseClockEncodings(t *testing.T) {
	ts := time.Date(2025, time.March, 5, 18, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		raw  any
		h, m int
		ok   bool
	}{
		{"time.Time", ts, 18, 30, true},
		{"primitive.DateTime", primitive.NewDateTimeFromTime(ts), 18, 30, true},
		{"rfc3339 string", "2025-03-05T18:30:00Z", 18, 30, true},
		{"hour minute doc", primitive.M{"hour": 18, "minute": 30}, 18, 30, true},
		{"hour only", primitive.M{"hour": int32(9)}, 9, 0, true},
		{"nil", nil, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, m, ok := parseClock(tc.raw)
			if h != tc.h || m != tc.m || ok != tc.ok {
				t.Errorf("parseClock(%v) = (%d, %d, %v), want (%d, %d, %v)", tc.raw, h, m, ok, tc.h, tc.m, tc.ok)
			}
		})
	}
}

func TestParseDateFallsBackToNow(t *testing.T) {
	restore := now
	fixed := date(2025, time.May, 2)
	now = func() time.Time { return fixed }
	defer func() { now = restore }()

	if got := parseDate(nil); !got.Equal(fixed) {
		t.Errorf("parseDate(nil) = %v, want now", got)
	}
	if got := parseDate("garbage"); !got.Equal(fixed) {
		t.Errorf("parseDate(garbage) = %v, want now", got)
	}
}
