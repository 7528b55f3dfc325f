package models

import "time"

// FreezeStatus describes the current state of a learner's streak freezes
type FreezeStatus string

const (
	// FreezeNone means the learner has no freezes banked
	FreezeNone FreezeStatus = "none"
	// FreezeAvailable means a freeze is banked and usable
	FreezeAvailable FreezeStatus = "available"
	// FreezeRecovering means a freeze was spent less than 24h ago
	// without protecting the current gap day
	FreezeRecovering FreezeStatus = "recovering"
	// FreezeJustUsed means a freeze spent less than 24h ago is
	// protecting the current gap day
	FreezeJustUsed FreezeStatus = "just_used"
)

// StreakState holds a learner's freeze bank. One row per learner.
type StreakState struct {
	LearnerID        int64
	FreezeCount      int
	LastFreezeUsedAt *time.Time
	// FreezeUsedForDate is the calendar day (UTC, YYYY-MM-DD) the most
	// recent freeze protected. Empty when no freeze has been used.
	FreezeUsedForDate string
	// ConsecutiveDaysAtEarn is the streak length at which the last
	// freeze was granted. Prevents double-granting within one earn cycle.
	ConsecutiveDaysAtEarn int
	UpdatedAt             time.Time
}
