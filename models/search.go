package models

// SearchRequest is the request contract for the hosted search index.
type SearchRequest struct {
	IndexName   string `json:"indexName"`
	Query       string `json:"query"`
	Filters     string `json:"filters,omitempty"`
	Page        int    `json:"page"`
	HitsPerPage int    `json:"hitsPerPage"`
}

// SearchResponse is the raw hit page returned by the index.
type SearchResponse struct {
	Hits    []map[string]any `json:"hits"`
	NbHits  int              `json:"nbHits"`
	NbPages int              `json:"nbPages"`
	Page    int              `json:"page"`
}

// SessionHit is the projection of a sessions-index hit.
type SessionHit struct {
	ObjectID        string  `json:"objectID"`
	SessionNo       string  `json:"sessionNo"`
	BookedBy        string  `json:"bookedBy"`
	PitchName       string  `json:"pitchName"`
	OrganizationID  string  `json:"organizationId"`
	DateMs          int64   `json:"dateTimestamp"`
	Time            string  `json:"time"`
	Type            string  `json:"type"`
	CollectedAmount float64 `json:"collectedAmount"`
	PitchFee        float64 `json:"pitchFee"`
	Status          string  `json:"status"`
	GroupName       string  `json:"groupName,omitempty"`
}

// GroupHit is the projection of a permanent-sessions (groups) index hit.
type GroupHit struct {
	ObjectID  string   `json:"objectID"`
	GroupName string   `json:"groupName"`
	PitchName string   `json:"pitchName"`
	Days      []string `json:"days"`
	Time      string   `json:"time"`
	MemberQty int      `json:"memberCount"`
	Status    string   `json:"status"`
}

// TransactionHit is the projection of a transactions-index hit.
type TransactionHit struct {
	ObjectID  string  `json:"objectID"`
	Reference string  `json:"reference"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	DateMs    int64   `json:"dateTimestamp"`
	Status    string  `json:"status"`
	Party     string  `json:"party,omitempty"`
}
