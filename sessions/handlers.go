package sessions

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pitchpro/db"
	"pitchpro/models"
	"pitchpro/organizations"
	"pitchpro/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// GetWeekCalendar returns the reconciled, deduplicated session list for one
// organization's visible week. Optional pitchId narrows to a single pitch.
func GetWeekCalendar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")

	weekStart := StartOfWeek(now())
	if t := utils.ParseDateParam(r, "weekStart"); t != nil {
		weekStart = StartOfWeek(*t)
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pitches, err := organizations.PitchesForOrg(ctx, orgID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load pitches")
		return
	}
	if pitchID := r.URL.Query().Get("pitchId"); pitchID != "" {
		filtered := pitches[:0]
		for _, p := range pitches {
			if p.ID == pitchID {
				filtered = append(filtered, p)
			}
		}
		pitches = filtered
	}

	rng := models.DateRange{StartDate: &weekStart, EndDate: &weekEnd}
	items, err := WeekSessions(ctx, pitches, weekStart, rng)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load sessions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"weekStart": weekStart,
		"weekEnd":   weekEnd,
		"sessions":  items,
	})
}

// ListSessions returns sessions for an arbitrary date range (defaults to the
// current week), reconciled across every month the range touches.
func ListSessions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")

	start := utils.ParseDateParam(r, "startDate")
	end := utils.ParseDateParam(r, "endDate")

	// Unbounded sides default to the current week; a bounded side extends
	// the calendar fetch to every month it touches.
	fetchStart := StartOfWeek(now())
	if start != nil {
		fetchStart = StartOfWeek(*start)
	}
	fetchEnd := fetchStart.AddDate(0, 0, 6)
	if end != nil && end.After(fetchEnd) {
		fetchEnd = *end
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	pitches, err := organizations.PitchesForOrg(ctx, orgID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load pitches")
		return
	}

	rng := models.DateRange{StartDate: start, EndDate: end}
	items, err := RangeSessions(ctx, pitches, fetchStart, fetchEnd, rng)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load sessions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"sessions": items, "count": len(items)})
}

// GetSessionDetail returns the canonical session document.
func GetSessionDetail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := ps.ByName("id")
	if sessionID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var doc models.SessionDoc
	if err := db.SessionsCollection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "session not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"session": doc})
}

// GetSessionQR renders a check-in QR code for a session.
func GetSessionQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := ps.ByName("id")
	if sessionID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var doc models.SessionDoc
	if err := db.SessionsCollection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "session not found")
		return
	}

	payload := fmt.Sprintf("sid=%s&no=%s&ts=%d", sessionID, doc.SessionNo, time.Now().Unix())
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
