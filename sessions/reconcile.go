package sessions

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pitchpro/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// now is swapped out by tests; missing session dates fall back to it.
var now = time.Now

// Entry pairs a calendar entry with its source document coordinates. The
// docId/index pair seeds the synthetic id when no session ref resolves.
type Entry struct {
	Entry   models.CalendarEntry
	DocID   string
	PitchID string
	Index   int
}

// CollectEntries flattens calendar documents into Entry values and returns
// the set of unique session ids they reference.
func CollectEntries(docs []models.CalendarDoc) ([]Entry, []string) {
	var entries []Entry
	seen := make(map[string]struct{})
	var ids []string

	for _, doc := range docs {
		pitchID := doc.ID
		if idx := strings.Index(doc.ID, ":"); idx >= 0 {
			pitchID = doc.ID[:idx]
		}
		for i, e := range doc.SessionEntries {
			entries = append(entries, Entry{Entry: e, DocID: doc.ID, PitchID: pitchID, Index: i})
			if id, ok := models.RefID(e.SessionRef); ok {
				if _, dup := seen[id]; !dup {
					seen[id] = struct{}{}
					ids = append(ids, id)
				}
			}
		}
	}
	return entries, ids
}

// Reconcile merges calendar entries with their session documents into a
// deduplicated, range-filtered, newest-first display list. An entry whose
// session lookup misses still yields a record with entry-level fallbacks.
func Reconcile(entries []Entry, cache map[string]models.SessionDoc, pitchNames map[string]string, rng models.DateRange) []models.SessionListItem {
	items := make([]models.SessionListItem, 0, len(entries))
	processed := make(map[string]struct{})

	for _, ref := range entries {
		e := ref.Entry

		sessionID, resolved := models.RefID(e.SessionRef)
		key := sessionID
		if !resolved {
			key = fmt.Sprintf("%s-%d", ref.DocID, ref.Index)
		}

		// A session referenced by multiple calendar entries (recurring
		// booking) appears once.
		if _, dup := processed[key]; dup {
			continue
		}
		processed[key] = struct{}{}

		date := parseDate(e.SessionDate)
		if !inRangeEndOfDay(date, rng) {
			continue
		}

		startHour, startMin := 0, 0
		endHour, endMin := 1, 0
		if e.SessionTime != nil {
			if h, m, ok := parseClock(e.SessionTime.StartTime); ok {
				startHour, startMin = h, m
			}
			if h, m, ok := parseClock(e.SessionTime.EndTime); ok {
				endHour, endMin = h, m
			}
		}

		owner := "Unknown"
		if e.OwnerName != "" {
			owner = e.OwnerName
		}
		amount := e.Amount
		status := e.Status
		if status == "" {
			status = models.StatusPending
		}
		sessionType := e.SessionType
		if sessionType == "" {
			sessionType = models.TypeSession
		}

		if resolved {
			if doc, hit := cache[sessionID]; hit {
				if name := ownerName(doc); name != "" {
					owner = name
				}
				if a := collectedAmount(doc); a != nil {
					amount = a
				}
				if doc.Status != "" {
					status = doc.Status
				}
				if st := sessionTypeOf(doc); st != "" {
					sessionType = st
				}
			}
		}

		pitchName := pitchNames[ref.PitchID]
		if pitchName == "" {
			pitchName = "Unknown Pitch"
		}

		items = append(items, models.SessionListItem{
			ID:        key,
			BookedBy:  owner,
			Pitch:     pitchName,
			PitchID:   ref.PitchID,
			Date:      date,
			Time:      formatTimeRange(startHour, startMin, endHour, endMin),
			StartHour: startHour,
			StartMin:  startMin,
			EndHour:   endHour,
			EndMin:    endMin,
			Type:      sessionType,
			Amount:    amount,
			Status:    status,
		})
	}

	// Newest first.
	sort.Slice(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items
}

func ownerName(doc models.SessionDoc) string {
	if doc.SessionOwner.Name != "" {
		return doc.SessionOwner.Name
	}
	return doc.OwnerName
}

func collectedAmount(doc models.SessionDoc) *float64 {
	if doc.CollectedAmount != nil {
		return doc.CollectedAmount
	}
	return doc.CollectedCC
}

func sessionTypeOf(doc models.SessionDoc) string {
	if doc.SessionType != "" {
		return doc.SessionType
	}
	return doc.SessionTypeCC
}

// inRangeEndOfDay applies the list filter: start bound inclusive, end bound
// extended to the end of its day.
func inRangeEndOfDay(date time.Time, rng models.DateRange) bool {
	if rng.StartDate != nil && date.Before(*rng.StartDate) {
		return false
	}
	if rng.EndDate != nil {
		end := rng.EndDate
		endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, end.Location())
		if date.After(endOfDay) {
			return false
		}
	}
	return true
}

// parseDate handles the session date encodings: native time, Mongo datetime,
// RFC3339 / date-only strings, millisecond timestamps. Missing or
// unparseable values fall back to now — a known source-data concession, not
// a correctness guarantee.
func parseDate(raw any) time.Time {
	switch v := raw.(type) {
	case time.Time:
		return v
	case primitive.DateTime:
		return v.Time()
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	case int64:
		return time.UnixMilli(v)
	case float64:
		return time.UnixMilli(int64(v))
	}
	return now()
}

// parseClock handles the time-of-day encodings: a full timestamp (clock part
// taken), or a structured {hour, minute} document.
func parseClock(raw any) (hour, minute int, ok bool) {
	switch v := raw.(type) {
	case time.Time:
		return v.Hour(), v.Minute(), true
	case primitive.DateTime:
		t := v.Time()
		return t.Hour(), t.Minute(), true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.Hour(), t.Minute(), true
		}
	case models.HourMinute:
		return v.Hour, v.Minute, true
	case map[string]any:
		return clockFromFields(v["hour"], v["minute"])
	case primitive.M:
		return clockFromFields(v["hour"], v["minute"])
	case primitive.D:
		m := v.Map()
		return clockFromFields(m["hour"], m["minute"])
	}
	return 0, 0, false
}

func clockFromFields(hour, minute any) (int, int, bool) {
	h, ok := asInt(hour)
	if !ok {
		return 0, 0, false
	}
	m, _ := asInt(minute)
	return h, m, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func formatTimeRange(sh, sm, eh, em int) string {
	return fmt.Sprintf("%s - %s", formatClock(sh, sm), formatClock(eh, em))
}

func formatClock(h, m int) string {
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, period)
}
