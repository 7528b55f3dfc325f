package models

import "time"

// PracticeSession represents one persisted drill session
type PracticeSession struct {
	ID             int64
	LearnerID      int64
	StartedAt      time.Time
	CompletedAt    *time.Time
	TotalQuestions int
	CorrectAnswers int
}

// QuestionAttempt represents a single answered question in a session
type QuestionAttempt struct {
	ID            int64
	SessionID     int64
	ItemID        int64
	SkillType     string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
	TimeTakenMs   int
	AttemptedAt   time.Time
}

// SessionResult is the aggregate score emitted when a session completes
type SessionResult struct {
	Correct int
	Total   int
}

// Accuracy returns the fraction of correct answers, 0 for an empty session
func (r SessionResult) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}
