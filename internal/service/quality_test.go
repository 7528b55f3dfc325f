package service

import "testing"

func TestClassifyRecall(t *testing.T) {
	tests := []struct {
		name           string
		isCorrect      bool
		responseTimeMs int
		want           Quality
	}{
		{"incorrect answer is failed", false, 500, QualityFailed},
		{"incorrect slow answer is failed", false, 10000, QualityFailed},
		{"fast correct answer is easy", true, 1999, QualityEasy},
		{"correct at threshold is good", true, 2000, QualityGood},
		{"slow correct answer is good", true, 8000, QualityGood},
		{"instant correct answer is easy", true, 0, QualityEasy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRecall(tt.isCorrect, tt.responseTimeMs)
			if got != tt.want {
				t.Errorf("ClassifyRecall(%v, %d) = %v, want %v", tt.isCorrect, tt.responseTimeMs, got, tt.want)
			}
		})
	}
}

func TestQualityPassed(t *testing.T) {
	if QualityFailed.Passed() {
		t.Error("QualityFailed should not count as passed")
	}
	if !QualityGood.Passed() {
		t.Error("QualityGood should count as passed")
	}
	if !QualityEasy.Passed() {
		t.Error("QualityEasy should count as passed")
	}
}
