package service

import (
	"math"
	"time"

	"wortschatz/internal/models"
)

// SM-2 scheduling constants
const (
	// MinEaseFactor is the floor below which the ease factor never
	// drops. Without it a run of failures would collapse the interval
	// growth rate entirely.
	MinEaseFactor = 1.3
	// InitialEaseFactor is the ease assigned to a never-reviewed item
	InitialEaseFactor = 2.3
	// SeededEaseFactor is the ease for items bulk-seeded before any
	// practice has happened
	SeededEaseFactor = 2.5
	// FirstIntervalDays and SecondIntervalDays are the fixed intervals
	// for the first two successful reviews
	FirstIntervalDays  = 1
	SecondIntervalDays = 6
)

// ScheduleResult is the outcome of one scheduling decision. The caller
// persists it; Schedule itself has no side effects.
type ScheduleResult struct {
	IntervalDays int
	EaseFactor   float64
	NextReviewAt time.Time
}

// Schedule computes the next review for an item given its current state
// and the quality of the latest recall. SM-2 variant:
//
//	ef' = ef + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), floored at 1.3
//
// A failed recall resets the interval to one day regardless of history.
// The first two successful reviews use fixed intervals (1 and 6 days);
// after that the interval grows by the updated ease factor.
func Schedule(q Quality, easeFactor float64, intervalDays, reviewCount int, now time.Time) ScheduleResult {
	delta := 5 - float64(q)
	ease := easeFactor + (0.1 - delta*(0.08+delta*0.02))
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}

	var interval int
	switch {
	case !q.Passed():
		interval = 1
	case reviewCount == 0:
		interval = FirstIntervalDays
	case reviewCount == 1:
		interval = SecondIntervalDays
	default:
		interval = int(math.Round(float64(intervalDays) * ease))
	}

	return ScheduleResult{
		IntervalDays: interval,
		EaseFactor:   ease,
		NextReviewAt: MidnightUTC(now.AddDate(0, 0, interval)),
	}
}

// NewReviewState returns the initial schedule for a never-reviewed item
func NewReviewState(learnerID, itemID int64, skillType string, now time.Time) *models.ReviewState {
	return &models.ReviewState{
		LearnerID:    learnerID,
		ItemID:       itemID,
		SkillType:    skillType,
		EaseFactor:   InitialEaseFactor,
		IntervalDays: FirstIntervalDays,
		ReviewCount:  0,
		NextReviewAt: MidnightUTC(now),
	}
}

// MidnightUTC normalizes a timestamp to the start of its UTC calendar
// day. Review due-ness is date-grained, not time-grained.
func MidnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
