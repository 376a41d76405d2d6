package models

import "time"

type User struct {
	UserID          string   `json:"userid" bson:"userid"`
	Email           string   `json:"email" bson:"email"`
	Name            string   `json:"name,omitempty" bson:"name,omitempty"`
	Password        string   `json:"-" bson:"password"`
	Role            []string `json:"role" bson:"role"`
	DashboardAccess bool     `json:"dashboard_access" bson:"dashboard_access"`

	// References to organization documents this user administers. Entries
	// may be a plain id string, {"id": ...} or {"path": "organizations/..."}.
	OrganizationsList []any     `json:"organizations_list,omitempty" bson:"organizations_list,omitempty"`
	RefreshToken      string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry     time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin         time.Time `json:"last_login" bson:"last_login"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}
