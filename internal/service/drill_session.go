package service

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"wortschatz/internal/models"
)

// DefaultSessionSize is the maximum number of questions per sub-session
const DefaultSessionSize = 15

// noSelection marks that no answer is currently selected
const noSelection = -1

// DrillSession drives one practice session through a fixed sequence of
// questions. The full pool is shuffled once and sliced into sub-sessions
// of at most the configured size; the state machine runs one sub-session
// at a time.
//
// Transitions that arrive out of order (checking with no selection,
// advancing without feedback) are silently ignored rather than raised as
// errors; the UI is expected to disable the corresponding action.
type DrillSession struct {
	id        string
	pool      []models.Question
	offset    int
	size      int
	questions []models.Question

	currentIndex   int
	selectedAnswer int
	showFeedback   bool
	complete       bool
	score          models.SessionResult

	questionShownAt time.Time
}

// NewDrillSession shuffles the question pool and starts the first
// sub-session. A size of 0 or less falls back to DefaultSessionSize.
func NewDrillSession(pool []models.Question, size int, now time.Time) *DrillSession {
	if size <= 0 {
		size = DefaultSessionSize
	}

	shuffled := make([]models.Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	s := &DrillSession{
		id:   uuid.New().String(),
		pool: shuffled,
		size: size,
	}
	s.beginSubSession(now)
	return s
}

// beginSubSession resets the machine over the pool slice at the current
// offset
func (s *DrillSession) beginSubSession(now time.Time) {
	end := s.offset + s.size
	if end > len(s.pool) {
		end = len(s.pool)
	}
	s.questions = s.pool[s.offset:end]
	s.currentIndex = 0
	s.selectedAnswer = noSelection
	s.showFeedback = false
	s.complete = false
	s.score = models.SessionResult{}
	s.questionShownAt = now
}

// ID returns the session's unique identifier
func (s *DrillSession) ID() string {
	return s.id
}

// CurrentQuestion returns the question being displayed, or nil once the
// session is complete or the sub-session is empty
func (s *DrillSession) CurrentQuestion() *models.Question {
	if s.complete || s.currentIndex >= len(s.questions) {
		return nil
	}
	return &s.questions[s.currentIndex]
}

// SelectAnswer records the learner's choice. Ignored while feedback is
// showing, after completion, or for an out-of-range index.
func (s *DrillSession) SelectAnswer(index int) bool {
	if s.showFeedback || s.complete {
		return false
	}
	q := s.CurrentQuestion()
	if q == nil || index < 0 || index >= len(q.Choices) {
		return false
	}
	s.selectedAnswer = index
	return true
}

// SelectedAnswer returns the currently selected choice index, if any
func (s *DrillSession) SelectedAnswer() (int, bool) {
	if s.selectedAnswer == noSelection {
		return 0, false
	}
	return s.selectedAnswer, true
}

// ShowingFeedback reports whether the answer feedback is displayed
func (s *DrillSession) ShowingFeedback() bool {
	return s.showFeedback
}

// CheckAnswer grades the selected answer and switches to feedback
// display. It returns the attempt record for persistence and for the
// scheduling engines; nil when no answer is selected or the check is
// out of order.
func (s *DrillSession) CheckAnswer(now time.Time) *models.QuestionAttempt {
	if s.showFeedback || s.complete || s.selectedAnswer == noSelection {
		return nil
	}
	q := s.CurrentQuestion()
	if q == nil {
		return nil
	}

	isCorrect := s.selectedAnswer == q.CorrectIndex
	s.showFeedback = true
	s.score.Total++
	if isCorrect {
		s.score.Correct++
	}

	return &models.QuestionAttempt{
		ItemID:        q.ItemID,
		SkillType:     q.SkillType,
		UserAnswer:    q.Choices[s.selectedAnswer],
		CorrectAnswer: q.CorrectAnswer(),
		IsCorrect:     isCorrect,
		TimeTakenMs:   int(now.Sub(s.questionShownAt).Milliseconds()),
		AttemptedAt:   now,
	}
}

// NextQuestion advances past the feedback display. On the last question
// it completes the session and returns the aggregate result; otherwise
// it returns nil. Ignored unless feedback is showing.
func (s *DrillSession) NextQuestion(now time.Time) *models.SessionResult {
	if !s.showFeedback || s.complete {
		return nil
	}

	if s.currentIndex >= len(s.questions)-1 {
		s.complete = true
		s.showFeedback = false
		result := s.score
		return &result
	}

	s.currentIndex++
	s.selectedAnswer = noSelection
	s.showFeedback = false
	s.questionShownAt = now
	return nil
}

// Restart resets the current sub-session to a fresh shuffle at index 0
func (s *DrillSession) Restart(now time.Time) {
	sub := s.pool[s.offset:min(s.offset+s.size, len(s.pool))]
	rand.Shuffle(len(sub), func(i, j int) {
		sub[i], sub[j] = sub[j], sub[i]
	})
	s.beginSubSession(now)
}

// NextSubSession advances to the next slice of the pool. Returns false
// when the pool is exhausted.
func (s *DrillSession) NextSubSession(now time.Time) bool {
	if s.offset+s.size >= len(s.pool) {
		return false
	}
	s.offset += s.size
	s.beginSubSession(now)
	return true
}

// SubSessionCount returns how many sub-sessions the pool divides into
func (s *DrillSession) SubSessionCount() int {
	if len(s.pool) == 0 {
		return 0
	}
	return (len(s.pool) + s.size - 1) / s.size
}

// Len returns the number of questions in the current sub-session
func (s *DrillSession) Len() int {
	return len(s.questions)
}

// CurrentIndex returns the zero-based position within the sub-session
func (s *DrillSession) CurrentIndex() int {
	return s.currentIndex
}

// IsComplete reports whether the current sub-session has finished
func (s *DrillSession) IsComplete() bool {
	return s.complete
}

// Score returns the running score for the current sub-session
func (s *DrillSession) Score() models.SessionResult {
	return s.score
}
