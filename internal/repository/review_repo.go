package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wortschatz/internal/database"
	"wortschatz/internal/models"
)

// ReviewRepository handles database operations for review schedules
type ReviewRepository struct {
	db *database.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// GetReviewState retrieves the schedule for one learner/item/skill.
// Returns nil without error when the item has never been attempted.
func (r *ReviewRepository) GetReviewState(learnerID, itemID int64, skillType string) (*models.ReviewState, error) {
	query := `
		SELECT id, learner_id, item_id, skill_type, ease_factor, interval_days,
		       review_count, next_review_at, last_reviewed_at
		FROM review_states
		WHERE learner_id = ? AND item_id = ? AND skill_type = ?
	`

	state := &models.ReviewState{}
	var lastReviewedAt sql.NullTime

	err := r.db.QueryRow(query, learnerID, itemID, skillType).Scan(
		&state.ID,
		&state.LearnerID,
		&state.ItemID,
		&state.SkillType,
		&state.EaseFactor,
		&state.IntervalDays,
		&state.ReviewCount,
		&state.NextReviewAt,
		&lastReviewedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review state: %w", err)
	}

	if lastReviewedAt.Valid {
		state.LastReviewedAt = &lastReviewedAt.Time
	}

	return state, nil
}

// SaveReviewState upserts the schedule keyed by learner, item and skill
func (r *ReviewRepository) SaveReviewState(state *models.ReviewState) error {
	var lastReviewedAt sql.NullTime
	if state.LastReviewedAt != nil {
		lastReviewedAt = sql.NullTime{Time: *state.LastReviewedAt, Valid: true}
	}

	_, err := r.db.Exec(r.db.Dialect.UpsertReviewState(),
		state.LearnerID,
		state.ItemID,
		state.SkillType,
		state.EaseFactor,
		state.IntervalDays,
		state.ReviewCount,
		state.NextReviewAt,
		lastReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save review state: %w", err)
	}
	return nil
}

// ListDueItems retrieves items due at or before the given time, most
// overdue first with harder items (lower ease) breaking ties
func (r *ReviewRepository) ListDueItems(learnerID int64, dueBefore time.Time, limit int) ([]models.DueItem, error) {
	query := `
		SELECT item_id, skill_type, ease_factor, interval_days, next_review_at
		FROM review_states
		WHERE learner_id = ? AND next_review_at <= ?
		ORDER BY next_review_at ASC, ease_factor ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, learnerID, dueBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due items: %w", err)
	}
	defer rows.Close()

	var items []models.DueItem
	for rows.Next() {
		var item models.DueItem
		if err := rows.Scan(&item.ItemID, &item.SkillType, &item.EaseFactor, &item.IntervalDays, &item.NextReviewAt); err != nil {
			return nil, fmt.Errorf("failed to scan due item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetReviewStats summarizes the learner's review schedule
func (r *ReviewRepository) GetReviewStats(learnerID int64, now time.Time) (*models.ReviewStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN next_review_at <= ? THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(ease_factor), 0),
		       COALESCE(SUM(review_count), 0)
		FROM review_states
		WHERE learner_id = ?
	`

	stats := &models.ReviewStats{}
	err := r.db.QueryRow(query, now, learnerID).Scan(
		&stats.TotalItems,
		&stats.DueItems,
		&stats.AverageEase,
		&stats.TotalReviews,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get review stats: %w", err)
	}
	return stats, nil
}
