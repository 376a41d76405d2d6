package reports

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"

	"pitchpro/db"
	"pitchpro/models"
	"pitchpro/stats"
	"pitchpro/utils"
)

// FinanceSummaryPDF renders a per-pitch revenue summary for the requested
// date range as a downloadable PDF.
func FinanceSummaryPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")

	start := utils.ParseDateParam(r, "start")
	end := utils.ParseDateParam(r, "end")
	rng := models.DateRange{StartDate: start, EndDate: end}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var org models.Organization
	if err := db.OrganizationsCollection.FindOne(ctx, bson.M{"_id": orgID}).Decode(&org); err != nil {
		http.Error(w, "Organization not found", http.StatusNotFound)
		return
	}

	pitchCur, err := db.PitchesCollection.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		http.Error(w, "Failed to load pitches", http.StatusInternalServerError)
		return
	}
	var pitches []models.Pitch
	if err := pitchCur.All(ctx, &pitches); err != nil {
		http.Error(w, "Failed to load pitches", http.StatusInternalServerError)
		return
	}

	statsCur, err := db.OrgStatsCollection.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	var rawStats []models.StatsDoc
	if err := statsCur.All(ctx, &rawStats); err != nil {
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}

	records := make([]models.StatsRecord, 0, len(rawStats))
	for _, doc := range rawStats {
		records = append(records, stats.NormalizeStatsDoc(doc))
	}

	totals := stats.FilteredTotals(rng, records)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 15, "Finance Summary", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Organization: %s\nPeriod: %s\nGenerated: %s",
		org.Name,
		rangeLabel(rng),
		time.Now().Format("02 Jan 2006 15:04"),
	), "", "L", false)
	pdf.Ln(5)

	// Headline totals
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 10, "Totals", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Sessions: %d", totals.TotalNoOfSessions), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Collected revenue: %.2f", totals.TotalAmountCollected), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Expected revenue: %.2f", totals.TotalAmountExpected), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Per-pitch table
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 10, "By pitch", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(70, 8, "Pitch", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Sessions", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Collected", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Expected", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, pitch := range pitches {
		var pitchRecords []models.StatsRecord
		for _, rec := range records {
			if rec.PitchRef == pitch.ID {
				pitchRecords = append(pitchRecords, rec)
			}
		}
		pt := stats.FilteredTotals(rng, pitchRecords)
		pdf.CellFormat(70, 8, pitch.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", pt.TotalNoOfSessions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", pt.TotalAmountCollected), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", pt.TotalAmountExpected), "1", 1, "R", false, 0, "")
	}

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, "Generated by PitchPro dashboard.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=finance-"+orgID+".pdf")
	w.Write(buf.Bytes())
}

func rangeLabel(rng models.DateRange) string {
	const layout = "02 Jan 2006"
	switch {
	case rng.StartDate != nil && rng.EndDate != nil:
		return rng.StartDate.Format(layout) + " to " + rng.EndDate.Format(layout)
	case rng.StartDate != nil:
		return "from " + rng.StartDate.Format(layout)
	case rng.EndDate != nil:
		return "until " + rng.EndDate.Format(layout)
	default:
		return "all time"
	}
}
