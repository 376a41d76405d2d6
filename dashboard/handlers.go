package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"pitchpro/models"
	"pitchpro/stats"
	"pitchpro/utils"

	"github.com/julienschmidt/httprouter"
)

// SelectOrganization switches the live stream to the organization in the
// URL and returns the freshly loaded snapshot.
func SelectOrganization(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")
	if orgID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Organization id is required")
		return
	}

	if err := DefaultManager.Select(orgID); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Organization not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, DefaultManager.Snapshot(orgID))
}

// GetSnapshot returns the last loaded snapshot without switching streams.
func GetSnapshot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")
	snap := DefaultManager.Snapshot(orgID)
	if snap == nil {
		utils.RespondWithError(w, http.StatusNotFound, "No snapshot loaded for this organization")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snap)
}

// GetKPIs computes the headline dashboard numbers from the current
// snapshot: this month's bookings and revenue plus the year-to-date
// monthly average.
func GetKPIs(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")
	snap := DefaultManager.Snapshot(orgID)
	if snap == nil {
		utils.RespondWithError(w, http.StatusNotFound, "No snapshot loaded for this organization")
		return
	}

	monthRange := currentMonthRange()
	yearRange := currentYearRange()

	monthly := stats.FilteredTotals(monthRange, snap.Stats)
	avg := stats.AvgMonthlyRevenue(yearRange, snap.Stats)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"monthlyBookings":   monthly.TotalNoOfSessions,
		"collectedRevenue":  monthly.TotalAmountCollected,
		"expectedRevenue":   monthly.TotalAmountExpected,
		"avgMonthlyRevenue": avg,
	})
}

// GetChartSeries returns the 12-month per-pitch series plus the aggregate
// line for the requested year and metric.
func GetChartSeries(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")
	snap := DefaultManager.Snapshot(orgID)
	if snap == nil {
		utils.RespondWithError(w, http.StatusNotFound, "No snapshot loaded for this organization")
		return
	}

	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}

	metric := stats.MetricRevenue
	switch r.URL.Query().Get("metric") {
	case "", "revenue":
	case "sessions":
		metric = stats.MetricSessions
	case "expected":
		metric = stats.MetricExpected
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown metric")
		return
	}

	rng := yearRange(year)
	series := stats.MonthlySeries(rng, snap.Stats, snap.Pitches, metric)
	total := stats.TotalSeries(series)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"year":   year,
		"series": series,
		"total":  total,
	})
}

func currentMonthRange() models.DateRange {
	n := time.Now()
	start := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, n.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return models.DateRange{Type: "month", StartDate: &start, EndDate: &end}
}

func currentYearRange() models.DateRange {
	return yearRange(time.Now().Year())
}

func yearRange(year int) models.DateRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.Local)
	return models.DateRange{Type: "year", StartDate: &start, EndDate: &end}
}
