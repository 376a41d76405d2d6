package models

import "time"

// Session statuses as stored in session documents.
const (
	StatusConfirmed  = "Confirmed"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
)

// Session types.
const (
	TypePermanentSession = "PermanentSession"
	TypePermanentWeekly  = "PermanentWeekly"
	TypeMonthly          = "Monthly"
	TypeSession          = "Session"
)

// SessionDoc is the full session document; the canonical source for owner
// name, collected amount, status and type.
type SessionDoc struct {
	ID              string       `bson:"_id" json:"id"`
	SessionNo       string       `bson:"session_no,omitempty" json:"sessionNo,omitempty"`
	SessionOwner    SessionOwner `bson:"session_owner,omitempty" json:"sessionOwner"`
	OwnerName       string       `bson:"ownerName,omitempty" json:"-"`
	CollectedAmount *float64     `bson:"collected_amount,omitempty" json:"collectedAmount,omitempty"`
	CollectedCC     *float64     `bson:"collectedAmount,omitempty" json:"-"`
	Status          string       `bson:"status,omitempty" json:"status"`
	SessionType     string       `bson:"session_type,omitempty" json:"sessionType"`
	SessionTypeCC   string       `bson:"sessionType,omitempty" json:"-"`
	PitchFee        float64      `bson:"pitch_fee,omitempty" json:"pitchFee,omitempty"`
}

type SessionOwner struct {
	Name    string `bson:"name,omitempty" json:"name"`
	UserRef string `bson:"user_ref,omitempty" json:"userRef,omitempty"`
}

// CalendarDoc is one per-pitch-per-month sessionCalendar document. Its _id
// is the composite key "{pitchId}:{month}:{year}".
type CalendarDoc struct {
	ID             string          `bson:"_id"`
	SessionEntries []CalendarEntry `bson:"session_entries,omitempty"`
}

// CalendarEntry is the lightweight per-booking record inside a CalendarDoc.
// SessionRef, SessionDate and the time fields come in several encodings;
// the sessions package normalizes them once at ingestion.
type CalendarEntry struct {
	SessionRef  any          `bson:"sessionRef,omitempty"`
	SessionDate any          `bson:"sessionDate,omitempty"`
	SessionTime *SessionTime `bson:"sessionTime,omitempty"`
	Status      string       `bson:"status,omitempty"`
	SessionType string       `bson:"sessionType,omitempty"`
	OwnerName   string       `bson:"ownerName,omitempty"`
	Amount      *float64     `bson:"amount,omitempty"`
}

type SessionTime struct {
	StartTime any `bson:"startTime,omitempty"`
	EndTime   any `bson:"endTime,omitempty"`
}

// HourMinute is a structured clock time, one of the supported encodings for
// CalendarEntry start/end times.
type HourMinute struct {
	Hour   int `bson:"hour" json:"hour"`
	Minute int `bson:"minute" json:"minute"`
}

// SessionListItem is the display-shaped record produced by the
// reconciliation pipeline.
type SessionListItem struct {
	ID        string    `json:"id"`
	BookedBy  string    `json:"bookedBy"`
	Pitch     string    `json:"pitch"`
	PitchID   string    `json:"pitchId"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	StartHour int       `json:"startHour"`
	StartMin  int       `json:"startMinute"`
	EndHour   int       `json:"endHour"`
	EndMin    int       `json:"endMinute"`
	Type      string    `json:"type"`
	Amount    *float64  `json:"amount"`
	Status    string    `json:"status"`
}
