package services

import (
	"sort"
	"time"

	"github.com/hersaheli/saheli/internal/models"
)

const (
	lutealPhaseDays       = 14
	fertileWindowLeadDays = 5
	recentCycleLimit      = 6
	minCycleGapDays       = 15
	maxCycleGapDays       = 45
)

func sortCyclesByStart(cycles []models.Cycle) {
	sort.SliceStable(cycles, func(i, j int) bool {
		if cycles[i].StartDate.Equal(cycles[j].StartDate) {
			return cycles[i].ID < cycles[j].ID
		}
		return cycles[i].StartDate.Before(cycles[j].StartDate)
	})
}

// plausibleCycleGap filters out gaps that are more likely logging mistakes than real cycles.
func plausibleCycleGap(days int) bool {
	return days > minCycleGapDays && days < maxCycleGapDays
}

// startGaps returns day gaps between consecutive starts. starts must be ascending.
func startGaps(starts []time.Time) []int {
	if len(starts) < 2 {
		return nil
	}
	gaps := make([]int, 0, len(starts)-1)
	for index := 1; index < len(starts); index++ {
		gaps = append(gaps, daysBetween(starts[index-1], starts[index]))
	}
	return gaps
}

func cycleStartsAscending(newestFirst []models.Cycle) []time.Time {
	starts := make([]time.Time, 0, len(newestFirst))
	for index := len(newestFirst) - 1; index >= 0; index-- {
		starts = append(starts, CalendarDay(newestFirst[index].StartDate))
	}
	return starts
}
