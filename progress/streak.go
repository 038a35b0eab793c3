package progress

import (
	"sort"
	"time"

	"github.com/khushparag/agentic-learning-coach/ports"
)

// StreakInfo is the daily-activity streak computed from a learner's
// submission history, mirroring original_source's _calculate_streak.
type StreakInfo struct {
	CurrentStreak       int
	LongestStreak       int
	LastActivityDate    *time.Time
	StreakAtRisk        bool
	DaysUntilStreakLost int
}

// CalculateStreak walks the unique calendar days a submission was made on
// and derives the current and longest consecutive-day streaks, grounded on
// original_source's _calculate_streak: submissions are deduped to one entry
// per calendar day, sorted most-recent first, and the current streak walks
// backward from today tolerating at most a one-day gap (today or yesterday
// still "continues" a streak; anything older breaks it).
func CalculateStreak(submissions []*ports.Submission, now time.Time) StreakInfo {
	if len(submissions) == 0 {
		return StreakInfo{}
	}

	dayKey := func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}

	seen := make(map[time.Time]bool)
	for _, s := range submissions {
		seen[dayKey(s.SubmittedAt)] = true
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayKey(now)
	lastActivity := days[0]

	currentStreak := 0
	checkDate := today
	for _, d := range days {
		if d.Equal(checkDate) || d.Equal(checkDate.AddDate(0, 0, -1)) {
			currentStreak++
			checkDate = d
			continue
		}
		break
	}

	longestStreak := 0
	tempStreak := 1
	for i := 1; i < len(days); i++ {
		gap := days[i-1].Sub(days[i]).Hours() / 24
		if gap == 1 {
			tempStreak++
		} else {
			if tempStreak > longestStreak {
				longestStreak = tempStreak
			}
			tempStreak = 1
		}
	}
	if tempStreak > longestStreak {
		longestStreak = tempStreak
	}
	if currentStreak > longestStreak {
		longestStreak = currentStreak
	}

	daysSinceActivity := int(today.Sub(lastActivity).Hours() / 24)
	streakAtRisk := daysSinceActivity >= 1 && currentStreak > 0

	daysUntilLost := 0
	if currentStreak > 0 {
		daysUntilLost = 2 - daysSinceActivity
		if daysUntilLost < 0 {
			daysUntilLost = 0
		}
	}

	return StreakInfo{
		CurrentStreak:       currentStreak,
		LongestStreak:       longestStreak,
		LastActivityDate:    &lastActivity,
		StreakAtRisk:        streakAtRisk,
		DaysUntilStreakLost: daysUntilLost,
	}
}
