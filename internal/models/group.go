package models

import "time"

// GroupStateForming is the label a group carries from creation on.
// It is informational; matching never reads it.
const GroupStateForming = "Forming"

// Group represents a formed ride-sharing cluster. A group is created by
// exactly one confirmation event and is never updated or deleted afterwards.
type Group struct {
	// GroupID is the unique identifier ("GRP-<uuid>") minted at creation.
	GroupID string `gorm:"primaryKey"`
	// Location, Date and Time are copied from the founding request and are
	// not re-validated against later joiners.
	Location string `gorm:"type:text;not null"`
	Date     string `gorm:"type:text;not null;index"`
	Time     string `gorm:"type:text;not null"`
	// FounderIdentity is the identity of the request whose confirmation
	// created the group.
	FounderIdentity string `gorm:"type:text;not null"`
	// State is an informational label, always "Forming" in this core.
	State string `gorm:"type:text;not null"`
	// CreatedAt is the group creation timestamp.
	CreatedAt time.Time
}
