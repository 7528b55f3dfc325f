package service

import (
	"fmt"
	"time"

	"wortschatz/internal/models"
)

// ReviewStore is the persistence contract for review scheduling state
type ReviewStore interface {
	// GetReviewState returns the schedule for one learner/item/skill,
	// or nil if the item has never been attempted
	GetReviewState(learnerID, itemID int64, skillType string) (*models.ReviewState, error)
	// SaveReviewState upserts the schedule keyed by learner/item/skill
	SaveReviewState(state *models.ReviewState) error
	// ListDueItems returns items due at or before the given time,
	// most overdue first
	ListDueItems(learnerID int64, dueBefore time.Time, limit int) ([]models.DueItem, error)
	// GetReviewStats summarizes the learner's schedule
	GetReviewStats(learnerID int64, now time.Time) (*models.ReviewStats, error)
}

// ReviewService applies graded recall attempts to an item's review
// schedule. The schedule computation itself is pure; this service does
// the load/classify/schedule/persist round trip.
type ReviewService struct {
	store ReviewStore
}

// NewReviewService creates a new review service
func NewReviewService(store ReviewStore) *ReviewService {
	return &ReviewService{store: store}
}

// RecordAttempt grades one drill attempt and advances the item's
// schedule. The review state is created on the first attempt and
// updated in place afterwards; it is never deleted.
func (s *ReviewService) RecordAttempt(learnerID, itemID int64, skillType string, isCorrect bool, responseTimeMs int, now time.Time) (*models.ReviewState, error) {
	state, err := s.store.GetReviewState(learnerID, itemID, skillType)
	if err != nil {
		return nil, fmt.Errorf("load review state: %w", err)
	}
	if state == nil {
		state = NewReviewState(learnerID, itemID, skillType, now)
	}

	quality := ClassifyRecall(isCorrect, responseTimeMs)
	result := Schedule(quality, state.EaseFactor, state.IntervalDays, state.ReviewCount, now)

	reviewedAt := now
	state.EaseFactor = result.EaseFactor
	state.IntervalDays = result.IntervalDays
	state.NextReviewAt = result.NextReviewAt
	state.ReviewCount++
	state.LastReviewedAt = &reviewedAt

	if err := s.store.SaveReviewState(state); err != nil {
		return nil, fmt.Errorf("save review state: %w", err)
	}
	return state, nil
}

// DueItems returns the learner's items due for review right now
func (s *ReviewService) DueItems(learnerID int64, now time.Time, limit int) ([]models.DueItem, error) {
	return s.store.ListDueItems(learnerID, now, limit)
}

// Stats returns a summary of the learner's review schedule
func (s *ReviewService) Stats(learnerID int64, now time.Time) (*models.ReviewStats, error) {
	return s.store.GetReviewStats(learnerID, now)
}
