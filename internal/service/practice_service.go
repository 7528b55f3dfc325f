package service

import (
	"fmt"
	"time"

	"wortschatz/internal/models"
)

// SessionStore is the persistence contract for session history
type SessionStore interface {
	CreateSession(learnerID int64, totalQuestions int, startedAt time.Time) (*models.PracticeSession, error)
	RecordAttempt(attempt *models.QuestionAttempt) error
	CompleteSession(sessionID int64, correct, total int, completedAt time.Time) error
	GetSession(sessionID int64) (*models.PracticeSession, error)
	ListSessionAttempts(sessionID int64) ([]models.QuestionAttempt, error)
	ListRecentSessions(learnerID int64, limit int) ([]models.PracticeSession, error)
}

// PracticeService coordinates a drill session with the scheduling
// engines: every checked answer feeds the review scheduler and the
// weak-area tally, and session completion feeds the streak tracker.
type PracticeService struct {
	sessions  SessionStore
	reviews   *ReviewService
	weakAreas *WeakAreaService
	streaks   *StreakService
}

// NewPracticeService creates a new practice service
func NewPracticeService(sessions SessionStore, reviews *ReviewService, weakAreas *WeakAreaService, streaks *StreakService) *PracticeService {
	return &PracticeService{
		sessions:  sessions,
		reviews:   reviews,
		weakAreas: weakAreas,
		streaks:   streaks,
	}
}

// SessionOutcome summarizes the learner's standing after a completed
// session
type SessionOutcome struct {
	Result        models.SessionResult
	CurrentStreak int
	FreezeAwarded bool
}

// BeginSession opens a persisted session row for a drill of the given
// length
func (s *PracticeService) BeginSession(learnerID int64, totalQuestions int, now time.Time) (*models.PracticeSession, error) {
	session, err := s.sessions.CreateSession(learnerID, totalQuestions, now)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// RecordAttempt persists one checked answer and propagates it to the
// review scheduler and the weak-area tally
func (s *PracticeService) RecordAttempt(learnerID, sessionID int64, q *models.Question, attempt *models.QuestionAttempt, now time.Time) error {
	attempt.SessionID = sessionID
	if err := s.sessions.RecordAttempt(attempt); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	if _, err := s.reviews.RecordAttempt(learnerID, attempt.ItemID, attempt.SkillType, attempt.IsCorrect, attempt.TimeTakenMs, now); err != nil {
		return err
	}

	return s.weakAreas.RecordQuestionOutcome(learnerID, q.Areas, attempt.IsCorrect, now)
}

// CompleteSession closes the session row, then re-derives the streak
// and applies any freeze grant the new streak length earns
func (s *PracticeService) CompleteSession(learnerID, sessionID int64, result models.SessionResult, now time.Time) (*SessionOutcome, error) {
	if err := s.sessions.CompleteSession(sessionID, result.Correct, result.Total, now); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	streak, err := s.streaks.CurrentStreak(learnerID, now)
	if err != nil {
		return nil, err
	}

	awarded, err := s.streaks.CheckAndAwardFreeze(learnerID, streak, now)
	if err != nil {
		return nil, err
	}

	return &SessionOutcome{
		Result:        result,
		CurrentStreak: streak,
		FreezeAwarded: awarded,
	}, nil
}

// SessionResults returns a session and its recorded attempts
func (s *PracticeService) SessionResults(sessionID int64) (*models.PracticeSession, []models.QuestionAttempt, error) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, nil, err
	}
	attempts, err := s.sessions.ListSessionAttempts(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, attempts, nil
}

// RecentSessions returns the learner's most recent sessions
func (s *PracticeService) RecentSessions(learnerID int64, limit int) ([]models.PracticeSession, error) {
	return s.sessions.ListRecentSessions(learnerID, limit)
}
