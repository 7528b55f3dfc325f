package service

import (
	"fmt"
	"testing"
	"time"

	"wortschatz/internal/models"
)

func makeQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ItemID:       int64(i + 1),
			SkillType:    models.SkillTranslation,
			Prompt:       fmt.Sprintf("word %d", i+1),
			Choices:      []string{"right", "wrong one", "wrong two", "wrong three"},
			CorrectIndex: 0,
		}
	}
	return questions
}

func TestNewDrillSessionSplitsPool(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	drill := NewDrillSession(makeQuestions(32), 15, now)

	if drill.SubSessionCount() != 3 {
		t.Errorf("SubSessionCount() = %d, want 3", drill.SubSessionCount())
	}
	if drill.Len() != 15 {
		t.Errorf("first sub-session Len() = %d, want 15", drill.Len())
	}

	// drain the first sub-session so we can advance
	completeSubSession(t, drill, now)
	if !drill.NextSubSession(now) {
		t.Fatal("expected a second sub-session")
	}
	if drill.Len() != 15 {
		t.Errorf("second sub-session Len() = %d, want 15", drill.Len())
	}

	completeSubSession(t, drill, now)
	if !drill.NextSubSession(now) {
		t.Fatal("expected a third sub-session")
	}
	if drill.Len() != 2 {
		t.Errorf("third sub-session Len() = %d, want 2", drill.Len())
	}

	completeSubSession(t, drill, now)
	if drill.NextSubSession(now) {
		t.Error("pool should be exhausted after three sub-sessions")
	}
}

// completeSubSession answers every question in the current sub-session
func completeSubSession(t *testing.T, drill *DrillSession, now time.Time) *models.SessionResult {
	t.Helper()
	for !drill.IsComplete() {
		if !drill.SelectAnswer(0) {
			t.Fatal("SelectAnswer(0) rejected mid-session")
		}
		if attempt := drill.CheckAnswer(now); attempt == nil {
			t.Fatal("CheckAnswer returned nil after a selection")
		}
		if result := drill.NextQuestion(now); result != nil {
			return result
		}
	}
	return nil
}

func TestDrillSessionDefaultSize(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	drill := NewDrillSession(makeQuestions(20), 0, now)

	if drill.Len() != DefaultSessionSize {
		t.Errorf("Len() = %d, want %d", drill.Len(), DefaultSessionSize)
	}
}

func TestDrillSessionAnswerFlow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	drill := NewDrillSession(makeQuestions(2), 15, now)

	q := drill.CurrentQuestion()
	if q == nil {
		t.Fatal("expected a current question")
	}

	if !drill.SelectAnswer(0) {
		t.Fatal("SelectAnswer(0) rejected")
	}
	selected, ok := drill.SelectedAnswer()
	if !ok || selected != 0 {
		t.Errorf("SelectedAnswer() = %d, %v, want 0, true", selected, ok)
	}

	answeredAt := now.Add(1500 * time.Millisecond)
	attempt := drill.CheckAnswer(answeredAt)
	if attempt == nil {
		t.Fatal("CheckAnswer returned nil")
	}
	if !attempt.IsCorrect {
		t.Error("choice 0 should be graded correct")
	}
	if attempt.UserAnswer != q.Choices[0] {
		t.Errorf("UserAnswer = %q, want %q", attempt.UserAnswer, q.Choices[0])
	}
	if attempt.CorrectAnswer != q.CorrectAnswer() {
		t.Errorf("CorrectAnswer = %q, want %q", attempt.CorrectAnswer, q.CorrectAnswer())
	}
	if attempt.TimeTakenMs != 1500 {
		t.Errorf("TimeTakenMs = %d, want 1500", attempt.TimeTakenMs)
	}
	if !drill.ShowingFeedback() {
		t.Error("feedback should be showing after a check")
	}

	// advance to the second question
	if result := drill.NextQuestion(answeredAt); result != nil {
		t.Fatal("session should not complete after the first of two questions")
	}
	if drill.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", drill.CurrentIndex())
	}
	if _, ok := drill.SelectedAnswer(); ok {
		t.Error("selection should reset on advance")
	}

	// answer the last question incorrectly and finish
	if !drill.SelectAnswer(2) {
		t.Fatal("SelectAnswer(2) rejected")
	}
	attempt = drill.CheckAnswer(answeredAt)
	if attempt == nil {
		t.Fatal("CheckAnswer returned nil")
	}
	if attempt.IsCorrect {
		t.Error("choice 2 should be graded incorrect")
	}

	result := drill.NextQuestion(answeredAt)
	if result == nil {
		t.Fatal("expected a session result on the last question")
	}
	if result.Correct != 1 || result.Total != 2 {
		t.Errorf("result = %d/%d, want 1/2", result.Correct, result.Total)
	}
	if !drill.IsComplete() {
		t.Error("session should be complete")
	}
	if drill.CurrentQuestion() != nil {
		t.Error("no current question after completion")
	}
}

func TestDrillSessionOutOfOrderTransitions(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	drill := NewDrillSession(makeQuestions(3), 15, now)

	// checking before selecting does nothing
	if attempt := drill.CheckAnswer(now); attempt != nil {
		t.Error("CheckAnswer without a selection should return nil")
	}

	// advancing without feedback does nothing
	if result := drill.NextQuestion(now); result != nil {
		t.Error("NextQuestion without feedback should return nil")
	}
	if drill.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", drill.CurrentIndex())
	}

	// out-of-range selection is rejected
	if drill.SelectAnswer(99) {
		t.Error("out-of-range selection should be rejected")
	}
	if drill.SelectAnswer(-1) {
		t.Error("negative selection should be rejected")
	}

	// selecting while feedback is showing is rejected
	drill.SelectAnswer(0)
	drill.CheckAnswer(now)
	if drill.SelectAnswer(1) {
		t.Error("selection during feedback should be rejected")
	}

	// double check is rejected
	if attempt := drill.CheckAnswer(now); attempt != nil {
		t.Error("second CheckAnswer should return nil")
	}
}

func TestDrillSessionRestart(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	drill := NewDrillSession(makeQuestions(5), 15, now)

	// answer two questions
	for i := 0; i < 2; i++ {
		drill.SelectAnswer(0)
		drill.CheckAnswer(now)
		drill.NextQuestion(now)
	}
	if drill.CurrentIndex() != 2 {
		t.Fatalf("CurrentIndex() = %d, want 2", drill.CurrentIndex())
	}

	drill.Restart(now)

	if drill.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() after restart = %d, want 0", drill.CurrentIndex())
	}
	if score := drill.Score(); score.Total != 0 || score.Correct != 0 {
		t.Errorf("score after restart = %+v, want zero", score)
	}
	if drill.IsComplete() {
		t.Error("session should not be complete after restart")
	}
	if drill.Len() != 5 {
		t.Errorf("Len() after restart = %d, want 5", drill.Len())
	}
}

func TestDrillSessionIDs(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	a := NewDrillSession(makeQuestions(1), 15, now)
	b := NewDrillSession(makeQuestions(1), 15, now)

	if a.ID() == "" {
		t.Error("session ID should not be empty")
	}
	if a.ID() == b.ID() {
		t.Error("sessions should get distinct IDs")
	}
}
