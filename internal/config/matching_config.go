package config

import "time"

const (
	// Matching
	MatchToleranceHours = 2

	// Defaults applied when the intent dispatcher delivers empty parameters
	DefaultDisplayName = "Unknown"
	DefaultIdentity    = "0000"
	DefaultLocation    = "Campus"
	DefaultTime        = "12:00"

	// Confirmation flow
	ConfirmContextSuffix   = "awaiting_confirmation"
	ConfirmContextLifespan = 2

	// ConfirmLockTTL bounds how long a crashed confirmation can keep a
	// cluster locked before another member may proceed.
	ConfirmLockTTL = 10 * time.Second
)
