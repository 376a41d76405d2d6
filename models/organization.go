package models

type Organization struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

type Pitch struct {
	ID             string `json:"id" bson:"_id"`
	Name           string `json:"name" bson:"name"`
	OrganizationID string `json:"organizationId" bson:"organization_id"`
	// Explicit display color; when empty the stats aggregator derives one
	// from the pitch id.
	Color string `json:"color,omitempty" bson:"color,omitempty"`
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
}
