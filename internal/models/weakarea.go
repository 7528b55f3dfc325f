package models

import "time"

// Weak-area categories for German vocabulary mistakes
const (
	AreaCase       = "case"
	AreaGender     = "gender"
	AreaVerbFamily = "verb_family"
)

// AreaRef identifies one mistake category, e.g. case="genitive"
type AreaRef struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// WeakArea tracks recurring mistakes in one category for a learner.
// Rows exist only while mistakes are outstanding: created on the first
// mistake, removed once the count decays below one.
type WeakArea struct {
	ID            int64
	LearnerID     int64
	AreaType      string
	AreaID        string
	MistakeCount  int
	NeedsFocus    bool
	LastMistakeAt time.Time
	CreatedAt     time.Time
}
