package service

import (
	"fmt"
	"testing"
	"time"

	"wortschatz/internal/models"
)

// fakeSessionStore is an in-memory SessionStore for tests
type fakeSessionStore struct {
	sessions map[int64]*models.PracticeSession
	attempts []models.QuestionAttempt
	nextID   int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[int64]*models.PracticeSession), nextID: 1}
}

func (f *fakeSessionStore) CreateSession(learnerID int64, totalQuestions int, startedAt time.Time) (*models.PracticeSession, error) {
	session := &models.PracticeSession{
		ID:             f.nextID,
		LearnerID:      learnerID,
		StartedAt:      startedAt,
		TotalQuestions: totalQuestions,
	}
	f.nextID++
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessionStore) RecordAttempt(attempt *models.QuestionAttempt) error {
	attempt.ID = int64(len(f.attempts) + 1)
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeSessionStore) CompleteSession(sessionID int64, correct, total int, completedAt time.Time) error {
	session, ok := f.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %d not found", sessionID)
	}
	session.CompletedAt = &completedAt
	session.CorrectAnswers = correct
	session.TotalQuestions = total
	return nil
}

func (f *fakeSessionStore) GetSession(sessionID int64) (*models.PracticeSession, error) {
	return f.sessions[sessionID], nil
}

func (f *fakeSessionStore) ListSessionAttempts(sessionID int64) ([]models.QuestionAttempt, error) {
	var out []models.QuestionAttempt
	for _, a := range f.attempts {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) ListRecentSessions(learnerID int64, limit int) ([]models.PracticeSession, error) {
	var out []models.PracticeSession
	for _, s := range f.sessions {
		if s.LearnerID == learnerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func newTestPracticeService() (*PracticeService, *fakeSessionStore, *fakeReviewStore, *fakeWeakAreaStore, *fakeStreakStore) {
	sessions := newFakeSessionStore()
	reviews := newFakeReviewStore()
	weakAreas := newFakeWeakAreaStore()
	streaks := &fakeStreakStore{}

	svc := NewPracticeService(
		sessions,
		NewReviewService(reviews),
		NewWeakAreaService(weakAreas),
		NewStreakService(streaks),
	)
	return svc, sessions, reviews, weakAreas, streaks
}

func TestPracticeServiceRecordAttempt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, sessions, reviews, weakAreas, _ := newTestPracticeService()

	session, err := svc.BeginSession(1, 15, now)
	if err != nil {
		t.Fatalf("BeginSession() error = %v", err)
	}

	q := &models.Question{
		ItemID:       42,
		SkillType:    models.SkillTranslation,
		Prompt:       "die Katze",
		Choices:      []string{"the cat", "the dog"},
		CorrectIndex: 0,
		Areas:        []models.AreaRef{{Type: models.AreaGender, Identifier: "die"}},
	}
	attempt := &models.QuestionAttempt{
		ItemID:        q.ItemID,
		SkillType:     q.SkillType,
		UserAnswer:    "the dog",
		CorrectAnswer: "the cat",
		IsCorrect:     false,
		TimeTakenMs:   2500,
		AttemptedAt:   now,
	}

	if err := svc.RecordAttempt(1, session.ID, q, attempt, now); err != nil {
		t.Fatalf("RecordAttempt() error = %v", err)
	}

	// attempt row persisted against the session
	if len(sessions.attempts) != 1 {
		t.Fatalf("expected 1 persisted attempt, got %d", len(sessions.attempts))
	}
	if sessions.attempts[0].SessionID != session.ID {
		t.Errorf("attempt SessionID = %d, want %d", sessions.attempts[0].SessionID, session.ID)
	}

	// review schedule advanced
	state, _ := reviews.GetReviewState(1, 42, models.SkillTranslation)
	if state == nil {
		t.Fatal("expected a review state after the attempt")
	}
	if state.ReviewCount != 1 {
		t.Errorf("ReviewCount = %d, want 1", state.ReviewCount)
	}

	// mistake tallied against the tagged area
	area, _ := weakAreas.GetWeakArea(1, models.AreaGender, "die")
	if area == nil {
		t.Fatal("expected a weak area after the mistake")
	}
	if area.MistakeCount != 1 {
		t.Errorf("MistakeCount = %d, want 1", area.MistakeCount)
	}
}

func TestPracticeServiceCompleteSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, sessions, _, _, streaks := newTestPracticeService()

	session, err := svc.BeginSession(1, 15, now)
	if err != nil {
		t.Fatalf("BeginSession() error = %v", err)
	}

	// session history that puts the learner exactly at a seven day streak
	streaks.dates = []string{
		"2026-03-10", "2026-03-09", "2026-03-08", "2026-03-07",
		"2026-03-06", "2026-03-05", "2026-03-04",
	}

	outcome, err := svc.CompleteSession(1, session.ID, models.SessionResult{Correct: 12, Total: 15}, now)
	if err != nil {
		t.Fatalf("CompleteSession() error = %v", err)
	}

	stored := sessions.sessions[session.ID]
	if stored.CompletedAt == nil || !stored.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", stored.CompletedAt, now)
	}
	if stored.CorrectAnswers != 12 {
		t.Errorf("CorrectAnswers = %d, want 12", stored.CorrectAnswers)
	}

	if outcome.CurrentStreak != 7 {
		t.Errorf("CurrentStreak = %d, want 7", outcome.CurrentStreak)
	}
	if !outcome.FreezeAwarded {
		t.Error("a seven day streak should award a freeze")
	}
	if streaks.state.FreezeCount != 1 {
		t.Errorf("FreezeCount = %d, want 1", streaks.state.FreezeCount)
	}
}

func TestPracticeServiceSessionResults(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _, _, _ := newTestPracticeService()

	session, err := svc.BeginSession(1, 2, now)
	if err != nil {
		t.Fatalf("BeginSession() error = %v", err)
	}

	q := &models.Question{
		ItemID:       7,
		SkillType:    models.SkillArticle,
		Prompt:       "___ Haus",
		Choices:      []string{"das", "der", "die"},
		CorrectIndex: 0,
	}
	attempt := &models.QuestionAttempt{
		ItemID:        q.ItemID,
		SkillType:     q.SkillType,
		UserAnswer:    "das",
		CorrectAnswer: "das",
		IsCorrect:     true,
		TimeTakenMs:   900,
		AttemptedAt:   now,
	}
	if err := svc.RecordAttempt(1, session.ID, q, attempt, now); err != nil {
		t.Fatalf("RecordAttempt() error = %v", err)
	}

	got, attempts, err := svc.SessionResults(session.ID)
	if err != nil {
		t.Fatalf("SessionResults() error = %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("session ID = %d, want %d", got.ID, session.ID)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts))
	}
	if !attempts[0].IsCorrect {
		t.Error("stored attempt should be correct")
	}
}
