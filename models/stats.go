package models

import "time"

// DayStat is one calendar day's aggregated booking activity for one pitch.
type DayStat struct {
	Date                 time.Time `json:"date" bson:"date"`
	TotalAmountCollected float64   `json:"totalAmountCollected" bson:"total_amount_collected"`
	TotalNoOfSessions    int       `json:"totalNoOfSessions" bson:"total_no_of_sessions"`
	ExpectedAmount       float64   `json:"expectedAmount" bson:"expected_amount"`
	Day                  string    `json:"day,omitempty" bson:"day,omitempty"`
}

// StatsRecord is a normalized batch of daily stats for one pitch.
type StatsRecord struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	PitchRef  string    `json:"pitch_ref"`
	DaysStats []DayStat `json:"days_stats"`
}

// StatsDoc is the raw document shape as stored. Two variants exist: docs
// carrying a days_stats array, and older flat docs with document-level
// totals only. NormalizeStatsDoc in the stats package folds both into a
// StatsRecord.
type StatsDoc struct {
	ID             string       `bson:"_id"`
	OrganizationID string       `bson:"organization_id,omitempty"`
	StartDate      time.Time    `bson:"start_date"`
	EndDate        time.Time    `bson:"end_date"`
	PitchRef       any          `bson:"pitch_ref"`
	DaysStats      []RawDayStat `bson:"days_stats,omitempty"`

	// Flat-document totals (variant 2).
	TotalAmountCollected *float64 `bson:"total_amount_collected,omitempty"`
	TotalNoOfSessions    *int     `bson:"total_no_of_sessions,omitempty"`
	ExpectedAmount       *float64 `bson:"expected_amount,omitempty"`
}

// RawDayStat tolerates both snake_case and camelCase field names; source
// documents were written by more than one producer.
type RawDayStat struct {
	Date time.Time `bson:"date,omitempty"`

	TotalAmountCollected   float64 `bson:"total_amount_collected,omitempty"`
	TotalAmountCollectedCC float64 `bson:"totalAmountCollected,omitempty"`
	TotalNoOfSessions      int     `bson:"total_no_of_sessions,omitempty"`
	TotalNoOfSessionsCC    int     `bson:"totalNoOfSessions,omitempty"`
	ExpectedAmount         float64 `bson:"expected_amount,omitempty"`
	ExpectedAmountCC       float64 `bson:"expectedAmount,omitempty"`

	Day string `bson:"day,omitempty"`
}

// StatsTotals are the dashboard KPIs derived from a filtered record set.
type StatsTotals struct {
	TotalAmountCollected float64 `json:"totalAmountCollected"`
	TotalNoOfSessions    int     `json:"totalNoOfSessions"`
	TotalAmountExpected  float64 `json:"totalAmountExpected"`
}

// ChartSeries is one pitch's 12-slot month-bucketed line.
type ChartSeries struct {
	Name  string      `json:"name"`
	Data  [12]float64 `json:"data"`
	Color string      `json:"color"`
}

// DateRange bounds a stats query; a nil bound is unbounded on that side.
type DateRange struct {
	Type      string     `json:"type,omitempty"` // Monthly, Yearly
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}
