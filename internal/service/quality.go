package service

// Quality grades a recall attempt on the SM-2 scale. Only three of the
// six SM-2 grades are used: a drill answer is either wrong, correct but
// effortful, or correct and immediate.
type Quality int

const (
	// QualityFailed is an incorrect answer
	QualityFailed Quality = 2
	// QualityGood is a correct answer that took effort
	QualityGood Quality = 4
	// QualityEasy is a correct answer with immediate recall
	QualityEasy Quality = 5
)

// EasyRecallThresholdMs separates immediate recall from effortful
// recall. Answers faster than this are graded easy.
const EasyRecallThresholdMs = 2000

// ClassifyRecall maps a raw drill attempt to a recall quality grade
func ClassifyRecall(isCorrect bool, responseTimeMs int) Quality {
	if !isCorrect {
		return QualityFailed
	}
	if responseTimeMs < EasyRecallThresholdMs {
		return QualityEasy
	}
	return QualityGood
}

// Passed returns true if the grade counts as a successful recall
func (q Quality) Passed() bool {
	return q >= 3
}
