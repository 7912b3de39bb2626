package models

import "gorm.io/gorm"

// RequestStatus is the lifecycle state of a ride request.
type RequestStatus string

const (
	// StatusPending is the state of every freshly registered request.
	StatusPending RequestStatus = "Pending"
	// StatusConfirmed is terminal; it is set together with GroupRef by the
	// confirmation resolver and never reverts.
	StatusConfirmed RequestStatus = "Confirmed"
)

// RideRequest represents one ride-seeking submission stored in PostgreSQL.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt fields;
// CreatedAt doubles as the submission timestamp.
type RideRequest struct {
	gorm.Model

	// Identity is the opaque requester key (a phone number in practice).
	// A requester may submit several requests; each one is its own row.
	Identity string `gorm:"type:text;not null;index"`
	// DisplayName is informational only and never used for matching.
	DisplayName string `gorm:"type:text"`
	// Location is free text, compared case-insensitively by the matcher.
	Location string `gorm:"type:text;not null"`
	// Date is the requested calendar date, normalized to YYYY-MM-DD.
	Date string `gorm:"type:text;not null"`
	// Time is the requested time of day as submitted (e.g. "10:00" or an
	// ISO timestamp); the matcher reduces it to an hour.
	Time string `gorm:"type:text;not null"`
	// GroupRef references a Group once the request is confirmed.
	// Empty and StatusConfirmed are mutually exclusive: GroupRef is
	// non-empty if and only if Status is StatusConfirmed.
	GroupRef string `gorm:"type:text;index"`
	// Status is the request lifecycle state.
	Status RequestStatus `gorm:"type:text;not null"`
}

// BeforeCreate is a GORM hook that defaults a new request to Pending
// when no status was set explicitly.
func (r *RideRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.Status == "" {
		r.Status = StatusPending
	}
	return
}
