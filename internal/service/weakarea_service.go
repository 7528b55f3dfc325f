package service

import (
	"fmt"
	"time"

	"wortschatz/internal/models"
)

// FocusThreshold is the mistake count at which an area needs focus
const FocusThreshold = 3

// WeakAreaStore is the persistence contract for weak-area tracking
type WeakAreaStore interface {
	// GetWeakArea returns the entry for the area, or nil if none exists
	GetWeakArea(learnerID int64, areaType, areaID string) (*models.WeakArea, error)
	UpsertWeakArea(area *models.WeakArea) error
	DeleteWeakArea(learnerID int64, areaType, areaID string) error
	// ListFocusAreas returns the learner's areas flagged as needing focus
	ListFocusAreas(learnerID int64) ([]models.WeakArea, error)
}

// WeakAreaService tallies recurring mistake categories per learner.
// Only mistakes seed the tracker; a correct answer in an untracked
// area is not recorded.
type WeakAreaService struct {
	store WeakAreaStore
}

// NewWeakAreaService creates a new weak-area service
func NewWeakAreaService(store WeakAreaStore) *WeakAreaService {
	return &WeakAreaService{store: store}
}

// RecordOutcome updates the mistake tally for one area. A mistake
// creates or increments the entry; a correct answer decrements it,
// removing the row entirely once the count would fall below one. An
// area with no outstanding mistakes is not weak, so rows never rest
// at zero.
func (s *WeakAreaService) RecordOutcome(learnerID int64, areaType, areaID string, isCorrect bool, now time.Time) error {
	area, err := s.store.GetWeakArea(learnerID, areaType, areaID)
	if err != nil {
		return fmt.Errorf("load weak area: %w", err)
	}

	if isCorrect {
		if area == nil {
			return nil
		}
		if area.MistakeCount <= 1 {
			if err := s.store.DeleteWeakArea(learnerID, areaType, areaID); err != nil {
				return fmt.Errorf("delete weak area: %w", err)
			}
			return nil
		}
		area.MistakeCount--
		area.NeedsFocus = area.MistakeCount >= FocusThreshold
		if err := s.store.UpsertWeakArea(area); err != nil {
			return fmt.Errorf("save weak area: %w", err)
		}
		return nil
	}

	if area == nil {
		area = &models.WeakArea{
			LearnerID:     learnerID,
			AreaType:      areaType,
			AreaID:        areaID,
			MistakeCount:  1,
			NeedsFocus:    false,
			LastMistakeAt: now,
		}
	} else {
		area.MistakeCount++
		area.NeedsFocus = area.MistakeCount >= FocusThreshold
		area.LastMistakeAt = now
	}

	if err := s.store.UpsertWeakArea(area); err != nil {
		return fmt.Errorf("save weak area: %w", err)
	}
	return nil
}

// RecordQuestionOutcome applies one answered question to every area it
// is tagged with
func (s *WeakAreaService) RecordQuestionOutcome(learnerID int64, areas []models.AreaRef, isCorrect bool, now time.Time) error {
	for _, a := range areas {
		if err := s.RecordOutcome(learnerID, a.Type, a.Identifier, isCorrect, now); err != nil {
			return err
		}
	}
	return nil
}

// FocusAreas returns the areas currently flagged for focused practice
func (s *WeakAreaService) FocusAreas(learnerID int64) ([]models.WeakArea, error) {
	return s.store.ListFocusAreas(learnerID)
}
