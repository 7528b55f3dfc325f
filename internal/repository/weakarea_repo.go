package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"wortschatz/internal/database"
	"wortschatz/internal/models"
)

// WeakAreaRepository handles database operations for weak-area tallies
type WeakAreaRepository struct {
	db *database.DB
}

// NewWeakAreaRepository creates a new weak-area repository
func NewWeakAreaRepository(db *database.DB) *WeakAreaRepository {
	return &WeakAreaRepository{db: db}
}

// GetWeakArea retrieves one area entry. Returns nil without error when
// the learner has no outstanding mistakes in that area.
func (r *WeakAreaRepository) GetWeakArea(learnerID int64, areaType, areaID string) (*models.WeakArea, error) {
	query := `
		SELECT id, learner_id, area_type, area_identifier, mistake_count, needs_focus, last_mistake_at
		FROM weak_areas
		WHERE learner_id = ? AND area_type = ? AND area_identifier = ?
	`

	area := &models.WeakArea{}
	err := r.db.QueryRow(query, learnerID, areaType, areaID).Scan(
		&area.ID,
		&area.LearnerID,
		&area.AreaType,
		&area.AreaID,
		&area.MistakeCount,
		&area.NeedsFocus,
		&area.LastMistakeAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weak area: %w", err)
	}
	return area, nil
}

// UpsertWeakArea inserts or updates the tally keyed by learner and area
func (r *WeakAreaRepository) UpsertWeakArea(area *models.WeakArea) error {
	_, err := r.db.Exec(r.db.Dialect.UpsertWeakArea(),
		area.LearnerID,
		area.AreaType,
		area.AreaID,
		area.MistakeCount,
		area.NeedsFocus,
		area.LastMistakeAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert weak area: %w", err)
	}
	return nil
}

// DeleteWeakArea removes the tally row for one area
func (r *WeakAreaRepository) DeleteWeakArea(learnerID int64, areaType, areaID string) error {
	query := "DELETE FROM weak_areas WHERE learner_id = ? AND area_type = ? AND area_identifier = ?"
	if _, err := r.db.Exec(query, learnerID, areaType, areaID); err != nil {
		return fmt.Errorf("failed to delete weak area: %w", err)
	}
	return nil
}

// ListFocusAreas retrieves the learner's areas flagged as needing
// focus, worst first
func (r *WeakAreaRepository) ListFocusAreas(learnerID int64) ([]models.WeakArea, error) {
	query := `
		SELECT id, learner_id, area_type, area_identifier, mistake_count, needs_focus, last_mistake_at
		FROM weak_areas
		WHERE learner_id = ? AND needs_focus = ?
		ORDER BY mistake_count DESC, last_mistake_at DESC
	`

	rows, err := r.db.Query(query, learnerID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list focus areas: %w", err)
	}
	defer rows.Close()

	var areas []models.WeakArea
	for rows.Next() {
		var area models.WeakArea
		if err := rows.Scan(
			&area.ID,
			&area.LearnerID,
			&area.AreaType,
			&area.AreaID,
			&area.MistakeCount,
			&area.NeedsFocus,
			&area.LastMistakeAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weak area: %w", err)
		}
		areas = append(areas, area)
	}
	return areas, rows.Err()
}
