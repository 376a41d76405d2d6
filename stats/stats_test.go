package stats

import (
	"testing"
	"time"

	"pitchpro/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func sampleRecords() []models.StatsRecord {
	return []models.StatsRecord{
		{
			ID:       "S1",
			PitchRef: "P1",
			DaysStats: []models.DayStat{
				{Date: date(2025, time.March, 5), TotalAmountCollected: 5000, TotalNoOfSessions: 2, ExpectedAmount: 6000},
				{Date: date(2025, time.April, 10), TotalAmountCollected: 3000, TotalNoOfSessions: 1, ExpectedAmount: 3000},
			},
		},
		{
			ID:       "S2",
			PitchRef: "P2",
			DaysStats: []models.DayStat{
				{Date: date(2025, time.March, 20), TotalAmountCollected: 2000, TotalNoOfSessions: 4, ExpectedAmount: 2500},
			},
		},
	}
}

func TestFilteredTotalsUnboundedIsIdentity(t *testing.T) {
	totals := FilteredTotals(models.DateRange{}, sampleRecords())

	if totals.TotalAmountCollected != 10000 {
		t.Errorf("collected = %v, want 10000", totals.TotalAmountCollected)
	}
	if totals.TotalNoOfSessions != 7 {
		t.Errorf("sessions = %v, want 7", totals.TotalNoOfSessions)
	}
	if totals.TotalAmountExpected != 11500 {
		t.Errorf("expected = %v, want 11500", totals.TotalAmountExpected)
	}
}

func TestFilteredTotalsMarchScenario(t *testing.T) {
	records := []models.StatsRecord{
		{
			ID:       "rec1",
			PitchRef: "P1",
			DaysStats: []models.DayStat{
				{Date: date(2025, time.March, 5), TotalAmountCollected: 5000, TotalNoOfSessions: 2, ExpectedAmount: 6000},
			},
		},
	}
	rng := models.DateRange{
		Type:      "Monthly",
		StartDate: datePtr(2025, time.March, 1),
		EndDate:   datePtr(2025, time.March, 31),
	}

	totals := FilteredTotals(rng, records)
	if totals.TotalAmountCollected != 5000 || totals.TotalNoOfSessions != 2 || totals.TotalAmountExpected != 6000 {
		t.Errorf("totals = %+v, want {5000 2 6000}", totals)
	}
}

func TestFilteredTotalsBoundsInclusive(t *testing.T) {
	records := sampleRecords()
	rng := models.DateRange{
		StartDate: datePtr(2025, time.March, 5),
		EndDate:   datePtr(2025, time.March, 20),
	}

	totals := FilteredTotals(rng, records)
	if totals.TotalAmountCollected != 7000 {
		t.Errorf("collected = %v, want 7000 (both boundary days included)", totals.TotalAmountCollected)
	}
}

func TestAggregateMatchesPerPitchSeries(t *testing.T) {
	records := sampleRecords()
	pitches := []models.Pitch{
		{ID: "P1", Name: "Pitch One"},
		{ID: "P2", Name: "Pitch Two"},
	}
	rng := models.DateRange{
		StartDate: datePtr(2025, time.January, 1),
		EndDate:   datePtr(2025, time.December, 31),
	}

	series := MonthlySeries(rng, records, pitches, MetricRevenue)
	var grouped float64
	for _, v := range TotalSeries(series) {
		grouped += v
	}

	ungrouped := FilteredTotals(rng, records).TotalAmountCollected
	if grouped != ungrouped {
		t.Errorf("per-pitch series sum = %v, ungrouped total = %v", grouped, ungrouped)
	}
}

func TestMonthlySeriesUnknownPitchExcluded(t *testing.T) {
	records := sampleRecords()
	// Only P1 is a known pitch; S2 (P2) must not appear in any series.
	pitches := []models.Pitch{{ID: "P1", Name: "Pitch One"}}

	series := MonthlySeries(models.DateRange{}, records, pitches, MetricRevenue)
	if len(series) != 1 {
		t.Fatalf("series count = %d, want 1", len(series))
	}
	if series[0].Data[time.March-1] != 5000 {
		t.Errorf("march value = %v, want 5000", series[0].Data[time.March-1])
	}

	// The ungrouped path still counts the orphaned record.
	if got := FilteredTotals(models.DateRange{}, records).TotalAmountCollected; got != 10000 {
		t.Errorf("ungrouped collected = %v, want 10000", got)
	}
}

func TestMonthlySeriesMetrics(t *testing.T) {
	records := sampleRecords()
	pitches := []models.Pitch{{ID: "P1", Name: "Pitch One"}}

	sessions := MonthlySeries(models.DateRange{}, records, pitches, MetricSessions)
	if sessions[0].Data[time.March-1] != 2 {
		t.Errorf("sessions march = %v, want 2", sessions[0].Data[time.March-1])
	}

	expected := MonthlySeries(models.DateRange{}, records, pitches, MetricExpected)
	if expected[0].Data[time.April-1] != 3000 {
		t.Errorf("expected april = %v, want 3000", expected[0].Data[time.April-1])
	}
}

func TestAvgMonthlyRevenueExcludesCurrentMonth(t *testing.T) {
	restore := now
	now = func() time.Time { return date(2025, time.March, 15) }
	defer func() { now = restore }()

	// All data in the current month: no qualifying months, average is 0.
	records := []models.StatsRecord{
		{
			ID:       "S1",
			PitchRef: "P1",
			DaysStats: []models.DayStat{
				{Date: date(2025, time.March, 5), TotalAmountCollected: 5000},
				{Date: date(2025, time.March, 6), TotalAmountCollected: 4000},
			},
		},
	}
	rng := models.DateRange{
		StartDate: datePtr(2025, time.January, 1),
		EndDate:   datePtr(2025, time.December, 31),
	}

	if got := AvgMonthlyRevenue(rng, records); got != 0 {
		t.Errorf("avg = %v, want 0 when all data is current-month", got)
	}
}

func TestAvgMonthlyRevenueAveragesDistinctMonths(t *testing.T) {
	restore := now
	now = func() time.Time { return date(2025, time.June, 1) }
	defer func() { now = restore }()

	records := []models.StatsRecord{
		{
			ID:       "S1",
			PitchRef: "P1",
			DaysStats: []models.DayStat{
				{Date: date(2025, time.January, 10), TotalAmountCollected: 1000},
				{Date: date(2025, time.January, 20), TotalAmountCollected: 2000},
				{Date: date(2025, time.February, 5), TotalAmountCollected: 3000},
				// Current month, excluded.
				{Date: date(2025, time.June, 1), TotalAmountCollected: 9999},
			},
		},
	}

	got := AvgMonthlyRevenue(models.DateRange{}, records)
	if got != 3000 {
		t.Errorf("avg = %v, want 3000 ((1000+2000+3000)/2 months)", got)
	}
}

func TestPitchColorDeterministic(t *testing.T) {
	ids := []string{"P1", "abc123", "2FXgnS5SW6KqZX0BePTI", ""}
	for _, id := range ids {
		first := PitchColor(id)
		second := PitchColor(id)
		if first != second {
			t.Errorf("PitchColor(%q) unstable: %q vs %q", id, first, second)
		}
		found := false
		for _, c := range palette {
			if c == first {
				found = true
			}
		}
		if !found {
			t.Errorf("PitchColor(%q) = %q not in palette", id, first)
		}
	}
}

func TestNormalizeStatsDocDaysArray(t *testing.T) {
	doc := models.StatsDoc{
		ID:        "doc1",
		StartDate: date(2025, time.March, 1),
		EndDate:   date(2025, time.March, 31),
		PitchRef:  "pitches/P1",
		DaysStats: []models.RawDayStat{
			{Date: date(2025, time.March, 5), TotalAmountCollected: 100, TotalNoOfSessions: 1},
			{Date: date(2025, time.March, 6), TotalAmountCollectedCC: 200, TotalNoOfSessionsCC: 2, ExpectedAmountCC: 250},
		},
	}

	rec := NormalizeStatsDoc(doc)
	if rec.PitchRef != "P1" {
		t.Errorf("pitch_ref = %q, want P1", rec.PitchRef)
	}
	if len(rec.DaysStats) != 2 {
		t.Fatalf("days = %d, want 2", len(rec.DaysStats))
	}
	if rec.DaysStats[0].TotalAmountCollected != 100 {
		t.Errorf("snake_case day collected = %v, want 100", rec.DaysStats[0].TotalAmountCollected)
	}
	if rec.DaysStats[1].TotalAmountCollected != 200 || rec.DaysStats[1].ExpectedAmount != 250 {
		t.Errorf("camelCase day = %+v", rec.DaysStats[1])
	}
}

func TestNormalizeStatsDocFlatTotals(t *testing.T) {
	collected := 750.0
	sessions := 3
	doc := models.StatsDoc{
		ID:                   "doc2",
		StartDate:            date(2025, time.February, 1),
		PitchRef:             "P2",
		TotalAmountCollected: &collected,
		TotalNoOfSessions:    &sessions,
	}

	rec := NormalizeStatsDoc(doc)
	if len(rec.DaysStats) != 1 {
		t.Fatalf("days = %d, want 1 synthetic day", len(rec.DaysStats))
	}
	day := rec.DaysStats[0]
	if !day.Date.Equal(date(2025, time.February, 1)) {
		t.Errorf("synthetic day date = %v, want start_date", day.Date)
	}
	if day.TotalAmountCollected != 750 || day.TotalNoOfSessions != 3 {
		t.Errorf("synthetic day = %+v", day)
	}
	if day.ExpectedAmount != 750 {
		t.Errorf("expected = %v, want fallback to collected", day.ExpectedAmount)
	}
}

func TestNormalizeStatsDocMissingDateDefaultsToNow(t *testing.T) {
	restore := now
	fixed := date(2025, time.May, 2)
	now = func() time.Time { return fixed }
	defer func() { now = restore }()

	doc := models.StatsDoc{
		ID:        "doc3",
		PitchRef:  "P1",
		DaysStats: []models.RawDayStat{{TotalAmountCollected: 10}},
	}
	rec := NormalizeStatsDoc(doc)
	if !rec.DaysStats[0].Date.Equal(fixed) {
		t.Errorf("date = %v, want now fallback", rec.DaysStats[0].Date)
	}
}
