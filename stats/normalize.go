package stats

import (
	"time"

	"pitchpro/models"
)

// NormalizeStatsDoc folds either raw document shape into a StatsRecord:
// docs carrying a days_stats array map day by day, flat docs with
// document-level totals become a single synthetic day dated at start_date.
func NormalizeStatsDoc(doc models.StatsDoc) models.StatsRecord {
	pitchRef, _ := models.RefID(doc.PitchRef)
	rec := models.StatsRecord{
		ID:        doc.ID,
		StartDate: orNow(doc.StartDate),
		EndDate:   orNow(doc.EndDate),
		PitchRef:  pitchRef,
	}

	if len(doc.DaysStats) > 0 {
		rec.DaysStats = make([]models.DayStat, 0, len(doc.DaysStats))
		for _, raw := range doc.DaysStats {
			rec.DaysStats = append(rec.DaysStats, normalizeDay(raw))
		}
		return rec
	}

	if doc.TotalAmountCollected != nil || doc.TotalNoOfSessions != nil {
		day := models.DayStat{
			Date: rec.StartDate,
		}
		if doc.TotalAmountCollected != nil {
			day.TotalAmountCollected = *doc.TotalAmountCollected
		}
		if doc.TotalNoOfSessions != nil {
			day.TotalNoOfSessions = *doc.TotalNoOfSessions
		}
		if doc.ExpectedAmount != nil {
			day.ExpectedAmount = *doc.ExpectedAmount
		} else {
			day.ExpectedAmount = day.TotalAmountCollected
		}
		rec.DaysStats = []models.DayStat{day}
	}

	return rec
}

func normalizeDay(raw models.RawDayStat) models.DayStat {
	day := models.DayStat{
		Date: orNow(raw.Date),
		Day:  raw.Day,
	}
	day.TotalAmountCollected = pick(raw.TotalAmountCollectedCC, raw.TotalAmountCollected)
	day.TotalNoOfSessions = raw.TotalNoOfSessionsCC
	if day.TotalNoOfSessions == 0 {
		day.TotalNoOfSessions = raw.TotalNoOfSessions
	}
	day.ExpectedAmount = pick(raw.ExpectedAmountCC, raw.ExpectedAmount)
	return day
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return now()
	}
	return t
}

func pick(a, b float64) float64 {
	if a != 0 {
		return a
	}
	return b
}
