package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// Caller identifies the authenticated principal on whose behalf a service
// operation runs. BranchID scopes transfer restrictions; Admin bypasses them.
type Caller struct {
	UserID   string
	BranchID string
	Admin    bool
}
