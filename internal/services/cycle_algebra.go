package services

import (
	"time"

	"github.com/hersaheli/saheli/internal/models"
)

// An open cycle lists [start, max(start, today)] and claims every day from its start onward, so
// toggles never place a closed cycle inside the stretch it will grow into.

func effectiveCycleEnd(cycle models.Cycle, today time.Time) time.Time {
	if cycle.EndDate != nil {
		return CalendarDay(*cycle.EndDate)
	}
	start := CalendarDay(cycle.StartDate)
	today = CalendarDay(today)
	if today.After(start) {
		return today
	}
	return start
}

func cycleCoversDay(cycle models.Cycle, day time.Time, today time.Time) bool {
	day = CalendarDay(day)
	return !day.Before(CalendarDay(cycle.StartDate)) && !day.After(effectiveCycleEnd(cycle, today))
}

func openCycleClaimsDay(cycle models.Cycle, day time.Time) bool {
	return cycle.IsOpen() && !CalendarDay(day).Before(CalendarDay(cycle.StartDate))
}

// findCycleCovering prefers a closed cycle holding day over an open cycle claiming it.
func findCycleCovering(cycles []models.Cycle, day time.Time, today time.Time) (models.Cycle, bool) {
	for _, cycle := range cycles {
		if !cycle.IsOpen() && cycleCoversDay(cycle, day, today) {
			return cycle, true
		}
	}
	for _, cycle := range cycles {
		if openCycleClaimsDay(cycle, day) {
			return cycle, true
		}
	}
	return models.Cycle{}, false
}

// findCycleEndingOn only matches closed cycles. An open cycle already claims the following day.
func findCycleEndingOn(cycles []models.Cycle, day time.Time) (models.Cycle, bool) {
	for _, cycle := range cycles {
		if !cycle.IsOpen() && CalendarDay(*cycle.EndDate).Equal(CalendarDay(day)) {
			return cycle, true
		}
	}
	return models.Cycle{}, false
}

func findCycleStartingOn(cycles []models.Cycle, day time.Time) (models.Cycle, bool) {
	for _, cycle := range cycles {
		if CalendarDay(cycle.StartDate).Equal(CalendarDay(day)) {
			return cycle, true
		}
	}
	return models.Cycle{}, false
}

func findLatestOpenCycle(cycles []models.Cycle) (models.Cycle, bool) {
	latest := models.Cycle{}
	found := false
	for _, cycle := range cycles {
		if !cycle.IsOpen() {
			continue
		}
		if !found || cycle.StartDate.After(latest.StartDate) {
			latest = cycle
			found = true
		}
	}
	return latest, found
}

// PlanToggleAdd marks day as a period day. created reports whether a new cycle row is needed.
func PlanToggleAdd(cycles []models.Cycle, day time.Time, today time.Time) (models.CycleChanges, bool) {
	day = CalendarDay(day)
	if _, covered := findCycleCovering(cycles, day, today); covered {
		return models.CycleChanges{}, false
	}

	previous, hasPrevious := findCycleEndingOn(cycles, day.AddDate(0, 0, -1))
	next, hasNext := findCycleStartingOn(cycles, day.AddDate(0, 0, 1))

	switch {
	case hasPrevious && hasNext:
		previous.EndDate = next.EndDate
		return models.CycleChanges{
			Update: []models.Cycle{previous},
			Delete: []uint{next.ID},
		}, false
	case hasPrevious:
		previous.EndDate = dayPointer(day)
		return models.CycleChanges{Update: []models.Cycle{previous}}, false
	case hasNext:
		next.StartDate = day
		return models.CycleChanges{Update: []models.Cycle{next}}, false
	default:
		return models.CycleChanges{
			Create: []models.Cycle{{StartDate: day, EndDate: dayPointer(day)}},
		}, true
	}
}

// PlanToggleRemove unmarks day, shrinking, splitting or deleting the cycle that covers it.
func PlanToggleRemove(cycles []models.Cycle, day time.Time, today time.Time) models.CycleChanges {
	day = CalendarDay(day)
	cycle, covered := findCycleCovering(cycles, day, today)
	if !covered {
		return models.CycleChanges{}
	}

	start := CalendarDay(cycle.StartDate)
	end := effectiveCycleEnd(cycle, today)
	if day.After(end) {
		// Not listed yet; the open cycle keeps its claim.
		return models.CycleChanges{}
	}

	switch {
	case start.Equal(end):
		return models.CycleChanges{Delete: []uint{cycle.ID}}
	case day.Equal(start):
		cycle.StartDate = day.AddDate(0, 0, 1)
		return models.CycleChanges{Update: []models.Cycle{cycle}}
	case day.Equal(end):
		cycle.EndDate = dayPointer(day.AddDate(0, 0, -1))
		return models.CycleChanges{Update: []models.Cycle{cycle}}
	default:
		tail := models.Cycle{
			UserID:    cycle.UserID,
			StartDate: day.AddDate(0, 0, 1),
			EndDate:   cycle.EndDate,
		}
		cycle.EndDate = dayPointer(day.AddDate(0, 0, -1))
		return models.CycleChanges{
			Update: []models.Cycle{cycle},
			Create: []models.Cycle{tail},
		}
	}
}

func PlanStartPeriod(cycles []models.Cycle, start time.Time) (models.CycleChanges, error) {
	if _, open := findLatestOpenCycle(cycles); open {
		return models.CycleChanges{}, ErrPeriodAlreadyOpen
	}
	start = CalendarDay(start)
	for _, cycle := range cycles {
		if !start.After(CalendarDay(*cycle.EndDate)) {
			return models.CycleChanges{}, newValidationError("start_date", "Start date overlaps a logged period.")
		}
	}
	return models.CycleChanges{
		Create: []models.Cycle{{StartDate: start}},
	}, nil
}

func PlanEndPeriod(cycles []models.Cycle, end time.Time) (models.CycleChanges, error) {
	cycle, open := findLatestOpenCycle(cycles)
	if !open {
		return models.CycleChanges{}, ErrNoOpenPeriod
	}
	end = CalendarDay(end)
	if end.Before(CalendarDay(cycle.StartDate)) {
		return models.CycleChanges{}, newValidationError("end_date", "End date cannot be before the start date.")
	}
	cycle.EndDate = &end
	return models.CycleChanges{Update: []models.Cycle{cycle}}, nil
}

// PeriodDays expands cycles into distinct ascending calendar days.
func PeriodDays(cycles []models.Cycle, today time.Time) []time.Time {
	sorted := append([]models.Cycle(nil), cycles...)
	sortCyclesByStart(sorted)

	days := make([]time.Time, 0)
	var last time.Time
	for _, cycle := range sorted {
		end := effectiveCycleEnd(cycle, today)
		for cursor := CalendarDay(cycle.StartDate); !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
			if len(days) > 0 && !cursor.After(last) {
				continue
			}
			days = append(days, cursor)
			last = cursor
		}
	}
	return days
}
