package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"pitchpro/db"
	"pitchpro/models"
	"pitchpro/organizations"
	"pitchpro/sessions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RollupPreviousDay aggregates yesterday's non-cancelled sessions into a
// per-pitch day stat and upserts it into the monthly stats document.
func RollupPreviousDay() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	day := time.Now().AddDate(0, 0, -1)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	cur, err := db.OrganizationsCollection.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return err
	}

	for _, org := range orgs {
		if err := rollupOrg(ctx, org.ID, day); err != nil {
			log.Printf("[Scheduler] rollup for org %s failed: %v", org.ID, err)
		}
	}
	return nil
}

func rollupOrg(ctx context.Context, orgID string, day time.Time) error {
	pitches, err := organizations.PitchesForOrg(ctx, orgID)
	if err != nil {
		return err
	}
	if len(pitches) == 0 {
		return nil
	}

	weekStart := sessions.StartOfWeek(day)
	rng := models.DateRange{StartDate: &day, EndDate: &day}

	items, err := sessions.WeekSessions(ctx, pitches, weekStart, rng)
	if err != nil {
		return err
	}

	perPitch := make(map[string]models.DayStat)
	for _, item := range items {
		if item.Status == models.StatusCancelled {
			continue
		}
		stat := perPitch[item.PitchID]
		stat.Date = day
		stat.Day = day.Weekday().String()
		stat.TotalNoOfSessions++
		if item.Amount != nil {
			stat.TotalAmountCollected += *item.Amount
			stat.ExpectedAmount += *item.Amount
		}
		perPitch[item.PitchID] = stat
	}

	for pitchID, stat := range perPitch {
		if err := upsertDayStat(ctx, orgID, pitchID, day, stat); err != nil {
			return err
		}
	}
	return nil
}

// upsertDayStat replaces yesterday's entry inside the pitch's monthly stats
// document, creating the document on first write of the month.
func upsertDayStat(ctx context.Context, orgID, pitchID string, day time.Time, stat models.DayStat) error {
	docID := fmt.Sprintf("%s:%d:%d", pitchID, int(day.Month()), day.Year())
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	// Drop a stale entry for the same day before pushing the fresh one.
	_, err := db.OrgStatsCollection.UpdateOne(ctx,
		bson.M{"_id": docID},
		bson.M{"$pull": bson.M{"days_stats": bson.M{"date": day}}},
	)
	if err != nil {
		return err
	}

	_, err = db.OrgStatsCollection.UpdateOne(ctx,
		bson.M{"_id": docID},
		bson.M{
			"$set": bson.M{
				"organization_id": orgID,
				"pitch_ref":       pitchID,
				"start_date":      monthStart,
				"end_date":        monthEnd,
			},
			"$push": bson.M{"days_stats": stat},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
