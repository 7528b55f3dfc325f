package service

import (
	"fmt"
	"time"

	"wortschatz/internal/models"
)

// Streak and freeze policy constants
const (
	// MaxFreezes caps the number of freezes a learner can bank
	MaxFreezes = 3
	// DaysToEarnFreeze is the streak cycle length: one freeze is
	// granted each time the streak reaches a new multiple of this.
	DaysToEarnFreeze = 7
	// FreezeRecoveryHours is how long a spent freeze blocks further use
	FreezeRecoveryHours = 24
	// streakHistoryLimit bounds the session-date scan when deriving
	// the streak length
	streakHistoryLimit = 400
)

// DateFormat is the calendar-day format used throughout streak tracking
const DateFormat = "2006-01-02"

// StreakStore is the persistence contract for streak tracking
type StreakStore interface {
	// GetStreakState returns the learner's streak state, creating the
	// default zero state if none exists yet
	GetStreakState(learnerID int64) (*models.StreakState, error)
	SaveStreakState(state *models.StreakState) error
	// ListCompletedSessionDates returns the distinct UTC calendar days
	// (YYYY-MM-DD) with at least one completed session, newest first
	ListCompletedSessionDates(learnerID int64, limit int) ([]string, error)
}

// StreakService maintains consecutive-day streaks and the freeze bank
// that protects them across missed days
type StreakService struct {
	store StreakStore
}

// NewStreakService creates a new streak service
func NewStreakService(store StreakStore) *StreakService {
	return &StreakService{store: store}
}

// FreezeStatus reports the current freeze state for the learner
func (s *StreakService) FreezeStatus(learnerID int64, now time.Time) (models.FreezeStatus, error) {
	state, err := s.store.GetStreakState(learnerID)
	if err != nil {
		return "", fmt.Errorf("load streak state: %w", err)
	}

	if usedWithinRecovery(state, now) {
		if protectsCurrentGap(state.FreezeUsedForDate, now) {
			return models.FreezeJustUsed, nil
		}
		return models.FreezeRecovering, nil
	}

	if state.FreezeCount > 0 {
		return models.FreezeAvailable, nil
	}
	return models.FreezeNone, nil
}

// CanUseFreeze reports whether a freeze may be spent to protect the
// given calendar day. A freeze needs a banked token, a day that is not
// already protected, and the 24h recovery window to have elapsed.
func CanUseFreeze(state *models.StreakState, protectedDate string, now time.Time) bool {
	if state.FreezeCount <= 0 || protectedDate == "" {
		return false
	}
	if state.FreezeUsedForDate == protectedDate {
		return false
	}
	return !usedWithinRecovery(state, now)
}

// ActivateFreeze spends one freeze to protect the given calendar day.
// Returns false without error when the preconditions are not met; the
// rejected call leaves the state untouched.
func (s *StreakService) ActivateFreeze(learnerID int64, protectedDate string, now time.Time) (bool, error) {
	state, err := s.store.GetStreakState(learnerID)
	if err != nil {
		return false, fmt.Errorf("load streak state: %w", err)
	}

	if !CanUseFreeze(state, protectedDate, now) {
		return false, nil
	}

	usedAt := now
	state.FreezeCount--
	state.LastFreezeUsedAt = &usedAt
	state.FreezeUsedForDate = protectedDate

	if err := s.store.SaveStreakState(state); err != nil {
		return false, fmt.Errorf("save streak state: %w", err)
	}
	return true, nil
}

// CheckAndAwardFreeze grants one freeze when the streak reaches a new
// multiple of the earn cycle. Calling it repeatedly with the same
// streak length grants at most once. Returns true if a freeze was
// granted.
func (s *StreakService) CheckAndAwardFreeze(learnerID int64, currentStreak int, now time.Time) (bool, error) {
	if currentStreak < DaysToEarnFreeze || currentStreak%DaysToEarnFreeze != 0 {
		return false, nil
	}

	state, err := s.store.GetStreakState(learnerID)
	if err != nil {
		return false, fmt.Errorf("load streak state: %w", err)
	}

	if currentStreak <= state.ConsecutiveDaysAtEarn || state.FreezeCount >= MaxFreezes {
		return false, nil
	}

	state.FreezeCount++
	state.ConsecutiveDaysAtEarn = currentStreak
	state.UpdatedAt = now

	if err := s.store.SaveStreakState(state); err != nil {
		return false, fmt.Errorf("save streak state: %w", err)
	}
	return true, nil
}

// DaysUntilNextFreeze returns how many streak days remain until the
// next freeze grant. The second return is false when the learner is at
// the freeze cap and cannot earn more.
func DaysUntilNextFreeze(state *models.StreakState, currentStreak int) (int, bool) {
	if state.FreezeCount >= MaxFreezes {
		return 0, false
	}
	return DaysToEarnFreeze - (currentStreak % DaysToEarnFreeze), true
}

// CurrentStreak derives the consecutive-day streak from the learner's
// completed-session history. A streak is alive only if the most recent
// session day is today or yesterday; from there, days are counted
// backward until the first gap of more than one day.
func (s *StreakService) CurrentStreak(learnerID int64, now time.Time) (int, error) {
	dates, err := s.store.ListCompletedSessionDates(learnerID, streakHistoryLimit)
	if err != nil {
		return 0, fmt.Errorf("list session dates: %w", err)
	}
	return streakLength(dates, now), nil
}

// streakLength counts consecutive calendar days in a newest-first list
// of YYYY-MM-DD dates
func streakLength(dates []string, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	latest, err := time.Parse(DateFormat, dates[0])
	if err != nil {
		return 0
	}

	today := MidnightUTC(now)
	if latest.Before(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	prev := latest
	for _, d := range dates[1:] {
		day, err := time.Parse(DateFormat, d)
		if err != nil {
			break
		}
		if prev.Sub(day) > 24*time.Hour {
			break
		}
		streak++
		prev = day
	}
	return streak
}

// usedWithinRecovery reports whether a freeze was spent less than the
// recovery window ago
func usedWithinRecovery(state *models.StreakState, now time.Time) bool {
	if state.LastFreezeUsedAt == nil {
		return false
	}
	return now.Sub(*state.LastFreezeUsedAt) < FreezeRecoveryHours*time.Hour
}

// protectsCurrentGap reports whether the protected date covers the day
// a freeze would currently be shielding (today or yesterday)
func protectsCurrentGap(protectedDate string, now time.Time) bool {
	if protectedDate == "" {
		return false
	}
	today := now.UTC().Format(DateFormat)
	yesterday := now.UTC().AddDate(0, 0, -1).Format(DateFormat)
	return protectedDate == today || protectedDate == yesterday
}
