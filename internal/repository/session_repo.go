package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wortschatz/internal/database"
	"wortschatz/internal/models"
)

// SessionRepository handles database operations for session history
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession creates a new practice session row
func (r *SessionRepository) CreateSession(learnerID int64, totalQuestions int, startedAt time.Time) (*models.PracticeSession, error) {
	query := `
		INSERT INTO practice_sessions (learner_id, started_at, total_questions, correct_answers)
		VALUES (?, ?, ?, 0)
	`

	id, err := r.db.ExecReturningID(query, learnerID, startedAt, totalQuestions)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.PracticeSession{
		ID:             id,
		LearnerID:      learnerID,
		StartedAt:      startedAt,
		TotalQuestions: totalQuestions,
	}, nil
}

// GetSession retrieves a practice session by ID
func (r *SessionRepository) GetSession(sessionID int64) (*models.PracticeSession, error) {
	query := `
		SELECT id, learner_id, started_at, completed_at, total_questions, correct_answers
		FROM practice_sessions
		WHERE id = ?
	`

	session := &models.PracticeSession{}
	var completedAt sql.NullTime

	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.LearnerID,
		&session.StartedAt,
		&completedAt,
		&session.TotalQuestions,
		&session.CorrectAnswers,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if completedAt.Valid {
		session.CompletedAt = &completedAt.Time
	}

	return session, nil
}

// RecordAttempt records a question attempt and fills in its row ID
func (r *SessionRepository) RecordAttempt(attempt *models.QuestionAttempt) error {
	query := `
		INSERT INTO question_attempts (session_id, item_id, skill_type, user_answer, correct_answer, is_correct, time_taken_ms, attempted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		attempt.SessionID,
		attempt.ItemID,
		attempt.SkillType,
		attempt.UserAnswer,
		attempt.CorrectAnswer,
		attempt.IsCorrect,
		attempt.TimeTakenMs,
		attempt.AttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}

	attempt.ID = id
	return nil
}

// CompleteSession marks a session as complete with its final score
func (r *SessionRepository) CompleteSession(sessionID int64, correct, total int, completedAt time.Time) error {
	query := `
		UPDATE practice_sessions
		SET completed_at = ?, correct_answers = ?, total_questions = ?
		WHERE id = ?
	`

	if _, err := r.db.Exec(query, completedAt, correct, total, sessionID); err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// ListSessionAttempts retrieves all attempts for a session in order
func (r *SessionRepository) ListSessionAttempts(sessionID int64) ([]models.QuestionAttempt, error) {
	query := `
		SELECT id, session_id, item_id, skill_type, user_answer, correct_answer, is_correct, time_taken_ms, attempted_at
		FROM question_attempts
		WHERE session_id = ?
		ORDER BY attempted_at ASC
	`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.QuestionAttempt
	for rows.Next() {
		var attempt models.QuestionAttempt
		if err := rows.Scan(
			&attempt.ID,
			&attempt.SessionID,
			&attempt.ItemID,
			&attempt.SkillType,
			&attempt.UserAnswer,
			&attempt.CorrectAnswer,
			&attempt.IsCorrect,
			&attempt.TimeTakenMs,
			&attempt.AttemptedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	return attempts, rows.Err()
}

// ListRecentSessions retrieves the learner's most recent sessions
func (r *SessionRepository) ListRecentSessions(learnerID int64, limit int) ([]models.PracticeSession, error) {
	query := `
		SELECT id, learner_id, started_at, completed_at, total_questions, correct_answers
		FROM practice_sessions
		WHERE learner_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.PracticeSession
	for rows.Next() {
		var session models.PracticeSession
		var completedAt sql.NullTime
		if err := rows.Scan(
			&session.ID,
			&session.LearnerID,
			&session.StartedAt,
			&completedAt,
			&session.TotalQuestions,
			&session.CorrectAnswers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if completedAt.Valid {
			session.CompletedAt = &completedAt.Time
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
