package sessions

import (
	"context"
	"log"
	"sync"
	"time"

	"pitchpro/db"
	"pitchpro/models"
	"pitchpro/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

const sessionFetchBatch = 50
const sessionCacheTTL = 5 * time.Minute

// FetchCalendarDocs loads only the sessionCalendar documents whose composite
// _id covers the visible week for the given pitches.
func FetchCalendarDocs(ctx context.Context, pitchIDs []string, weekStart time.Time) ([]models.CalendarDoc, error) {
	return fetchCalendarByIDs(ctx, CalendarDocIDs(pitchIDs, weekStart))
}

func fetchCalendarByIDs(ctx context.Context, ids []string) ([]models.CalendarDoc, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := db.SessionCalendarCol.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.CalendarDoc
	for cur.Next(ctx) {
		var doc models.CalendarDoc
		if err := cur.Decode(&doc); err != nil {
			log.Printf("[Sessions] calendar doc decode failed: %v", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, cur.Err()
}

// FetchSessionDocs resolves session documents for the given ids, in batches
// run concurrently within each batch; every batch joins before the next
// starts. A failed or missing fetch is a cache miss, never fatal. Results go
// through a Redis read-through cache.
func FetchSessionDocs(ctx context.Context, sessionIDs []string) map[string]models.SessionDoc {
	cache := make(map[string]models.SessionDoc, len(sessionIDs))
	var mu sync.Mutex

	var missed []string
	for _, id := range sessionIDs {
		var doc models.SessionDoc
		if rdx.FetchJSON("session:"+id, &doc) {
			cache[id] = doc
		} else {
			missed = append(missed, id)
		}
	}

	for start := 0; start < len(missed); start += sessionFetchBatch {
		end := start + sessionFetchBatch
		if end > len(missed) {
			end = len(missed)
		}

		var wg sync.WaitGroup
		for _, id := range missed[start:end] {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				var doc models.SessionDoc
				err := db.SessionsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
				if err != nil {
					log.Printf("[Sessions] fetch %s failed: %v", id, err)
					return
				}
				rdx.CacheJSON("session:"+id, doc, sessionCacheTTL)
				mu.Lock()
				cache[id] = doc
				mu.Unlock()
			}(id)
		}
		wg.Wait()
	}

	return cache
}

// WeekSessions runs the full reconciliation pass for one organization's
// pitches over the week starting at weekStart.
func WeekSessions(ctx context.Context, pitches []models.Pitch, weekStart time.Time, rng models.DateRange) ([]models.SessionListItem, error) {
	return RangeSessions(ctx, pitches, weekStart, weekStart.AddDate(0, 0, 6), rng)
}

// RangeSessions reconciles sessions over an arbitrary date span, fetching
// calendar docs for every month the span touches.
func RangeSessions(ctx context.Context, pitches []models.Pitch, start, end time.Time, rng models.DateRange) ([]models.SessionListItem, error) {
	pitchIDs := make([]string, 0, len(pitches))
	pitchNames := make(map[string]string, len(pitches))
	for _, p := range pitches {
		pitchIDs = append(pitchIDs, p.ID)
		pitchNames[p.ID] = p.Name
	}

	docs, err := fetchCalendarByIDs(ctx, CalendarDocIDsInRange(pitchIDs, start, end))
	if err != nil {
		return nil, err
	}

	entries, sessionIDs := CollectEntries(docs)
	cache := FetchSessionDocs(ctx, sessionIDs)

	return Reconcile(entries, cache, pitchNames, rng), nil
}
