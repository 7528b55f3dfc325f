package models

// Question is a single multiple-choice drill question
type Question struct {
	ItemID       int64    `json:"item_id"`
	SkillType    string   `json:"skill_type"`
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	// Areas tags the question with the mistake categories it exercises
	// (e.g. case="dativ", gender="die"). May be empty.
	Areas []AreaRef `json:"areas,omitempty"`
}

// CorrectAnswer returns the text of the correct choice
func (q *Question) CorrectAnswer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.CorrectIndex]
}
