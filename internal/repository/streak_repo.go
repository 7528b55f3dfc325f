package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wortschatz/internal/database"
	"wortschatz/internal/models"
)

// StreakRepository handles database operations for streak state
type StreakRepository struct {
	db *database.DB
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(db *database.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// GetStreakState retrieves the learner's streak state. A learner who
// has never earned or used a freeze gets the zero state; the row is
// created on first save.
func (r *StreakRepository) GetStreakState(learnerID int64) (*models.StreakState, error) {
	query := `
		SELECT learner_id, freeze_count, last_freeze_used_at, freeze_used_for_date, consecutive_days_at_earn
		FROM streak_states
		WHERE learner_id = ?
	`

	state := &models.StreakState{}
	var lastFreezeUsedAt sql.NullTime
	var freezeUsedForDate sql.NullString

	err := r.db.QueryRow(query, learnerID).Scan(
		&state.LearnerID,
		&state.FreezeCount,
		&lastFreezeUsedAt,
		&freezeUsedForDate,
		&state.ConsecutiveDaysAtEarn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.StreakState{LearnerID: learnerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get streak state: %w", err)
	}

	if lastFreezeUsedAt.Valid {
		state.LastFreezeUsedAt = &lastFreezeUsedAt.Time
	}
	if freezeUsedForDate.Valid {
		state.FreezeUsedForDate = freezeUsedForDate.String
	}

	return state, nil
}

// SaveStreakState upserts the streak state keyed by learner
func (r *StreakRepository) SaveStreakState(state *models.StreakState) error {
	var lastFreezeUsedAt sql.NullTime
	if state.LastFreezeUsedAt != nil {
		lastFreezeUsedAt = sql.NullTime{Time: *state.LastFreezeUsedAt, Valid: true}
	}
	var freezeUsedForDate sql.NullString
	if state.FreezeUsedForDate != "" {
		freezeUsedForDate = sql.NullString{String: state.FreezeUsedForDate, Valid: true}
	}

	_, err := r.db.Exec(r.db.Dialect.UpsertStreakState(),
		state.LearnerID,
		state.FreezeCount,
		lastFreezeUsedAt,
		freezeUsedForDate,
		state.ConsecutiveDaysAtEarn,
	)
	if err != nil {
		return fmt.Errorf("failed to save streak state: %w", err)
	}
	return nil
}

// ListCompletedSessionDates returns the distinct UTC calendar days with
// at least one completed session, newest first. Deduplication happens
// here rather than in SQL so date formatting stays dialect-independent.
func (r *StreakRepository) ListCompletedSessionDates(learnerID int64, limit int) ([]string, error) {
	query := `
		SELECT completed_at
		FROM practice_sessions
		WHERE learner_id = ? AND completed_at IS NOT NULL
		ORDER BY completed_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list session dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	seen := make(map[string]bool)
	for rows.Next() {
		var completedAt time.Time
		if err := rows.Scan(&completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session date: %w", err)
		}
		day := completedAt.UTC().Format("2006-01-02")
		if !seen[day] {
			seen[day] = true
			dates = append(dates, day)
		}
	}
	return dates, rows.Err()
}
