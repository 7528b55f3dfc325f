package models

import "time"

// Skill types a vocabulary item can be practiced under. Each
// learner/item/skill combination carries its own review schedule.
const (
	SkillTranslation = "translation"
	SkillArticle     = "article"
	SkillSpelling    = "spelling"
)

// ReviewState holds the spaced-repetition schedule for one
// learner × item × skill combination
type ReviewState struct {
	ID             int64
	LearnerID      int64
	ItemID         int64
	SkillType      string
	EaseFactor     float64
	IntervalDays   int
	ReviewCount    int
	NextReviewAt   time.Time
	LastReviewedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDue returns true if the item is due for review at or before now.
// Due-ness is date-grained: NextReviewAt is stored at midnight UTC.
func (rs *ReviewState) IsDue(now time.Time) bool {
	return !rs.NextReviewAt.After(now)
}

// DueItem pairs an item with its schedule for due-list queries
type DueItem struct {
	ItemID       int64
	SkillType    string
	EaseFactor   float64
	IntervalDays int
	NextReviewAt time.Time
}

// ReviewStats summarizes a learner's review schedule
type ReviewStats struct {
	TotalItems   int
	DueItems     int
	AverageEase  float64
	TotalReviews int
}
