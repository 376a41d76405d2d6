package stats

import (
	"fmt"
	"time"

	"pitchpro/models"
)

// Metric selects which day-stat field a chart series sums.
type Metric int

const (
	MetricRevenue Metric = iota
	MetricSessions
	MetricExpected
)

// now is swapped out by tests; AvgMonthlyRevenue treats the current
// calendar month as partial data.
var now = time.Now

// InRange reports whether date falls within the range; a nil bound is
// unbounded on that side, both bounds inclusive.
func InRange(date time.Time, rng models.DateRange) bool {
	if rng.StartDate != nil && date.Before(*rng.StartDate) {
		return false
	}
	if rng.EndDate != nil && date.After(*rng.EndDate) {
		return false
	}
	return true
}

// FilteredTotals sums every day stat that falls inside the range across all
// records, regardless of pitch.
func FilteredTotals(rng models.DateRange, records []models.StatsRecord) models.StatsTotals {
	var totals models.StatsTotals
	for _, rec := range records {
		for _, day := range rec.DaysStats {
			if !InRange(day.Date, rng) {
				continue
			}
			totals.TotalAmountCollected += day.TotalAmountCollected
			totals.TotalNoOfSessions += day.TotalNoOfSessions
			totals.TotalAmountExpected += day.ExpectedAmount
		}
	}
	return totals
}

// AvgMonthlyRevenue averages collected revenue over the distinct months with
// qualifying data, excluding the current calendar month as incomplete.
// Returns 0 when no full month qualifies.
func AvgMonthlyRevenue(rng models.DateRange, records []models.StatsRecord) float64 {
	current := now()
	currentKey := monthKey(current)

	var total float64
	months := make(map[string]struct{})

	for _, rec := range records {
		for _, day := range rec.DaysStats {
			key := monthKey(day.Date)
			if key == currentKey {
				continue
			}
			if !InRange(day.Date, rng) {
				continue
			}
			total += day.TotalAmountCollected
			months[key] = struct{}{}
		}
	}

	if len(months) == 0 {
		return 0
	}
	return total / float64(len(months))
}

// MonthlySeries buckets each pitch's in-range days into a 12-slot series
// indexed by calendar month. Records whose pitch_ref matches no known pitch
// contribute to no series.
func MonthlySeries(rng models.DateRange, records []models.StatsRecord, pitches []models.Pitch, metric Metric) []models.ChartSeries {
	series := make([]models.ChartSeries, 0, len(pitches))

	for _, pitch := range pitches {
		s := models.ChartSeries{
			Name:  pitch.Name,
			Color: pitch.Color,
		}
		if s.Color == "" {
			s.Color = PitchColor(pitch.ID)
		}

		for _, rec := range records {
			if rec.PitchRef != pitch.ID {
				continue
			}
			for _, day := range rec.DaysStats {
				if !InRange(day.Date, rng) {
					continue
				}
				m := int(day.Date.Month()) - 1
				switch metric {
				case MetricSessions:
					s.Data[m] += float64(day.TotalNoOfSessions)
				case MetricExpected:
					s.Data[m] += day.ExpectedAmount
				default:
					s.Data[m] += day.TotalAmountCollected
				}
			}
		}

		series = append(series, s)
	}

	return series
}

// TotalSeries sums a list of series index-wise; the aggregate all-pitches
// chart line.
func TotalSeries(series []models.ChartSeries) [12]float64 {
	var totals [12]float64
	for _, s := range series {
		for i, v := range s.Data {
			totals[i] += v
		}
	}
	return totals
}

var palette = []string{
	"#4A7C59", // primary green
	"#F59E0B", // amber
	"#EF4444", // red
	"#3B82F6", // blue
	"#8B5CF6", // purple
	"#10B981", // emerald
	"#F97316", // orange
	"#6366F1", // indigo
}

// PitchColor derives a stable display color from a pitch id. Pure function
// of the id; collisions between different ids are acceptable.
func PitchColor(pitchID string) string {
	var h int32
	for _, c := range pitchID {
		h = int32(c) + (h<<5 - h)
	}
	idx := int64(h)
	if idx < 0 {
		idx = -idx
	}
	return palette[idx%int64(len(palette))]
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}
