package service

import (
	"math"
	"testing"
	"time"
)

func TestSchedule(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		quality      Quality
		easeFactor   float64
		intervalDays int
		reviewCount  int
		wantInterval int
		wantEase     float64
	}{
		{
			name:         "failed recall resets interval to one day",
			quality:      QualityFailed,
			easeFactor:   2.5,
			intervalDays: 30,
			reviewCount:  10,
			wantInterval: 1,
			wantEase:     2.18,
		},
		{
			name:         "first successful review uses fixed one day",
			quality:      QualityGood,
			easeFactor:   2.3,
			intervalDays: 1,
			reviewCount:  0,
			wantInterval: 1,
			wantEase:     2.3,
		},
		{
			name:         "second successful review uses fixed six days",
			quality:      QualityGood,
			easeFactor:   2.3,
			intervalDays: 1,
			reviewCount:  1,
			wantInterval: 6,
			wantEase:     2.3,
		},
		{
			name:         "later reviews grow by updated ease",
			quality:      QualityGood,
			easeFactor:   2.3,
			intervalDays: 6,
			reviewCount:  2,
			wantInterval: 14,
			wantEase:     2.3,
		},
		{
			name:         "easy recall raises the ease factor",
			quality:      QualityEasy,
			easeFactor:   2.3,
			intervalDays: 6,
			reviewCount:  2,
			wantInterval: 14,
			wantEase:     2.4,
		},
		{
			name:         "ease factor never drops below the floor",
			quality:      QualityFailed,
			easeFactor:   1.3,
			intervalDays: 1,
			reviewCount:  3,
			wantInterval: 1,
			wantEase:     1.3,
		},
		{
			name:         "interval rounds to nearest day",
			quality:      QualityGood,
			easeFactor:   2.5,
			intervalDays: 10,
			reviewCount:  5,
			wantInterval: 25,
			wantEase:     2.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Schedule(tt.quality, tt.easeFactor, tt.intervalDays, tt.reviewCount, now)

			if result.IntervalDays != tt.wantInterval {
				t.Errorf("IntervalDays = %d, want %d", result.IntervalDays, tt.wantInterval)
			}
			if math.Abs(result.EaseFactor-tt.wantEase) > 0.0001 {
				t.Errorf("EaseFactor = %v, want %v", result.EaseFactor, tt.wantEase)
			}

			wantDue := MidnightUTC(now.AddDate(0, 0, tt.wantInterval))
			if !result.NextReviewAt.Equal(wantDue) {
				t.Errorf("NextReviewAt = %v, want %v", result.NextReviewAt, wantDue)
			}
		})
	}
}

func TestScheduleNextReviewAtMidnight(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	result := Schedule(QualityGood, 2.3, 1, 0, now)

	if result.NextReviewAt.Hour() != 0 || result.NextReviewAt.Minute() != 0 {
		t.Errorf("NextReviewAt should be midnight UTC, got %v", result.NextReviewAt)
	}
	want := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	if !result.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", result.NextReviewAt, want)
	}
}

func TestNewReviewState(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)
	state := NewReviewState(1, 42, "translation", now)

	if state.EaseFactor != InitialEaseFactor {
		t.Errorf("EaseFactor = %v, want %v", state.EaseFactor, InitialEaseFactor)
	}
	if state.IntervalDays != FirstIntervalDays {
		t.Errorf("IntervalDays = %d, want %d", state.IntervalDays, FirstIntervalDays)
	}
	if state.ReviewCount != 0 {
		t.Errorf("ReviewCount = %d, want 0", state.ReviewCount)
	}
	if !state.NextReviewAt.Equal(MidnightUTC(now)) {
		t.Errorf("NextReviewAt = %v, want %v", state.NextReviewAt, MidnightUTC(now))
	}
}

func TestMidnightUTC(t *testing.T) {
	in := time.Date(2026, 3, 10, 18, 45, 12, 999, time.FixedZone("CET", 3600))
	got := MidnightUTC(in)
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("MidnightUTC() = %v, want %v", got, want)
	}
}
