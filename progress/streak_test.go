package progress

import (
	"testing"
	"time"

	"github.com/khushparag/agentic-learning-coach/ports"
	"github.com/stretchr/testify/assert"
)

func submissionOn(day time.Time) *ports.Submission {
	return &ports.Submission{ID: "s", UserID: "user-1", SubmittedAt: day}
}

func TestCalculateStreakEmptyHistory(t *testing.T) {
	streak := CalculateStreak(nil, time.Now())
	assert.Zero(t, streak.CurrentStreak)
	assert.Zero(t, streak.LongestStreak)
	assert.Nil(t, streak.LastActivityDate)
}

func TestCalculateStreakConsecutiveDaysIncludingToday(t *testing.T) {
	now := time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC)
	subs := []*ports.Submission{
		submissionOn(now),
		submissionOn(now.AddDate(0, 0, -1)),
		submissionOn(now.AddDate(0, 0, -2)),
	}

	streak := CalculateStreak(subs, now)

	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
	assert.False(t, streak.StreakAtRisk)
	assert.Equal(t, 2, streak.DaysUntilStreakLost)
}

func TestCalculateStreakToleratesOneMissedDayAsStillActive(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	subs := []*ports.Submission{
		submissionOn(now.AddDate(0, 0, -1)), // yesterday, no activity today yet
		submissionOn(now.AddDate(0, 0, -2)),
	}

	streak := CalculateStreak(subs, now)

	assert.Equal(t, 2, streak.CurrentStreak)
	assert.True(t, streak.StreakAtRisk)
	assert.Equal(t, 1, streak.DaysUntilStreakLost)
}

func TestCalculateStreakBreaksAfterTwoMissedDays(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	subs := []*ports.Submission{
		submissionOn(now.AddDate(0, 0, -3)),
		submissionOn(now.AddDate(0, 0, -4)),
	}

	streak := CalculateStreak(subs, now)

	assert.Zero(t, streak.CurrentStreak)
	assert.False(t, streak.StreakAtRisk)
	assert.Zero(t, streak.DaysUntilStreakLost)
}

func TestCalculateStreakLongestSurvivesAGap(t *testing.T) {
	now := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	subs := []*ports.Submission{
		submissionOn(now),
		submissionOn(now.AddDate(0, 0, -10)),
		submissionOn(now.AddDate(0, 0, -11)),
		submissionOn(now.AddDate(0, 0, -12)),
		submissionOn(now.AddDate(0, 0, -13)),
	}

	streak := CalculateStreak(subs, now)

	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 4, streak.LongestStreak)
}

func TestCalculateStreakDedupesMultipleSubmissionsPerDay(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	subs := []*ports.Submission{
		submissionOn(now),
		submissionOn(now.Add(2 * time.Hour)),
		submissionOn(now.Add(4 * time.Hour)),
	}

	streak := CalculateStreak(subs, now)

	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 1, streak.LongestStreak)
}
