package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hersaheli/saheli/internal/models"
	"github.com/montanaflynn/stats"
)

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

const (
	symptomWindowDays      = 180
	symptomHalfWindowDays  = 90
	minPatternCycles       = 3
	fatigueLeadDays        = 3
	cravingsLeadDays       = 5
	painObservedDays       = 2
	painPatternMeanCeiling = 3.0
	cravingsSymptomName    = "Cravings"
)

type CycleLengthPoint struct {
	Label string
	Value int
}

type SymptomAnalysis struct {
	Name      string
	Frequency int
	Trend     string
}

type Pattern struct {
	Title       string
	Description string
	Icon        string
}

type Insights struct {
	CycleLength []CycleLengthPoint
	Symptoms    []SymptomAnalysis
	Patterns    []Pattern
}

var (
	premenstrualFatiguePattern = Pattern{
		Title:       "Pre-menstrual fatigue",
		Description: "You often feel fatigued in the few days before your period starts.",
		Icon:        "battery",
	}
	menstrualPainPattern = Pattern{
		Title:       "Menstrual pain",
		Description: "Your pain levels tend to be high during the first days of your period.",
		Icon:        "activity",
	}
	premenstrualCravingsPattern = Pattern{
		Title:       "Pre-menstrual cravings",
		Description: "You frequently log cravings in the days leading up to your period.",
		Icon:        "cookie",
	}
)

type CompletedCycleReader interface {
	ListRecentCompleted(userID uint, limit int) ([]models.Cycle, error)
}

type InsightLogReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error)
}

type SymptomFinder interface {
	FindByName(name string) (models.Symptom, bool, error)
}

type InsightService struct {
	cycles   CompletedCycleReader
	logs     InsightLogReader
	symptoms SymptomFinder
}

func NewInsightService(cycles CompletedCycleReader, logs InsightLogReader, symptoms SymptomFinder) *InsightService {
	return &InsightService{
		cycles:   cycles,
		logs:     logs,
		symptoms: symptoms,
	}
}

func (service *InsightService) InsightsForUser(userID uint, today time.Time) (Insights, error) {
	today = CalendarDay(today)
	completed, err := service.cycles.ListRecentCompleted(userID, recentCycleLimit)
	if err != nil {
		return Insights{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}

	from := today.AddDate(0, 0, -symptomWindowDays)
	for _, cycle := range completed {
		lead := addDays(cycle.StartDate, -cravingsLeadDays)
		if lead.Before(from) {
			from = lead
		}
	}
	to := today.AddDate(0, 0, 1)
	logs, err := service.logs.ListByUserRange(userID, &from, &to)
	if err != nil {
		return Insights{}, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}

	cravings, found, err := service.symptoms.FindByName(cravingsSymptomName)
	if err != nil {
		return Insights{}, fmt.Errorf("%w: %v", ErrSymptomResolveFailed, err)
	}
	var cravingsSymptom *models.Symptom
	if found {
		cravingsSymptom = &cravings
	}

	return BuildInsights(completed, logs, cravingsSymptom, today), nil
}

// BuildInsights derives every insight from completed cycles ordered newest first and the user's logs.
// A nil cravings symptom skips the cravings pattern.
func BuildInsights(completedNewestFirst []models.Cycle, logs []models.DailyLog, cravings *models.Symptom, today time.Time) Insights {
	return Insights{
		CycleLength: CycleLengthSeries(completedNewestFirst),
		Symptoms:    AnalyzeSymptoms(logs, today),
		Patterns:    DetectPatterns(completedNewestFirst, logs, cravings),
	}
}

// CycleLengthSeries lists plausible gaps oldest first, labelled with the month of the earlier start.
func CycleLengthSeries(completedNewestFirst []models.Cycle) []CycleLengthPoint {
	starts := cycleStartsAscending(completedNewestFirst)
	points := make([]CycleLengthPoint, 0, len(starts))
	for index, gap := range startGaps(starts) {
		if !plausibleCycleGap(gap) {
			continue
		}
		points = append(points, CycleLengthPoint{
			Label: starts[index].Format("Jan"),
			Value: gap,
		})
	}
	return points
}

type symptomTally struct {
	name  string
	total int
	older int
	newer int
}

func AnalyzeSymptoms(logs []models.DailyLog, today time.Time) []SymptomAnalysis {
	today = CalendarDay(today)
	windowStart := today.AddDate(0, 0, -symptomWindowDays)
	midpoint := today.AddDate(0, 0, -symptomHalfWindowDays)

	tallies := make(map[uint]*symptomTally)
	totalLogs := 0
	for _, entry := range logs {
		day := CalendarDay(entry.Date)
		if day.Before(windowStart) || day.After(today) {
			continue
		}
		totalLogs++

		seen := make(map[uint]struct{}, len(entry.Symptoms))
		for _, symptom := range entry.Symptoms {
			if _, duplicate := seen[symptom.ID]; duplicate {
				continue
			}
			seen[symptom.ID] = struct{}{}

			tally, ok := tallies[symptom.ID]
			if !ok {
				tally = &symptomTally{name: symptom.Name}
				tallies[symptom.ID] = tally
			}
			tally.total++
			if day.Before(midpoint) {
				tally.older++
			} else {
				tally.newer++
			}
		}
	}
	if totalLogs == 0 {
		return []SymptomAnalysis{}
	}

	result := make([]SymptomAnalysis, 0, len(tallies))
	for _, tally := range tallies {
		result = append(result, SymptomAnalysis{
			Name:      tally.name,
			Frequency: tally.total * 100 / totalLogs,
			Trend:     symptomTrend(tally.older, tally.newer),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Frequency == result[j].Frequency {
			return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
		}
		return result[i].Frequency > result[j].Frequency
	})
	return result
}

// symptomTrend compares halves with the 1.2x and 0.8x thresholds in integer arithmetic.
func symptomTrend(older int, newer int) string {
	switch {
	case older == 0 && newer > 0:
		return TrendIncreasing
	case newer*5 > older*6:
		return TrendIncreasing
	case older > 0 && newer*5 < older*4:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func DetectPatterns(completed []models.Cycle, logs []models.DailyLog, cravings *models.Symptom) []Pattern {
	patterns := make([]Pattern, 0, 3)
	if len(completed) < minPatternCycles {
		return patterns
	}

	if patternTriggered(completed, func(start time.Time) bool {
		return anyLogBetween(logs, start.AddDate(0, 0, -fatigueLeadDays), start.AddDate(0, 0, -1), func(entry models.DailyLog) bool {
			return entry.Mood != nil && strings.EqualFold(*entry.Mood, models.MoodFatigued)
		})
	}) {
		patterns = append(patterns, premenstrualFatiguePattern)
	}

	if patternTriggered(completed, func(start time.Time) bool {
		return meanPainBetween(logs, start, start.AddDate(0, 0, painObservedDays-1)) > painPatternMeanCeiling
	}) {
		patterns = append(patterns, menstrualPainPattern)
	}

	if cravings != nil && patternTriggered(completed, func(start time.Time) bool {
		return anyLogBetween(logs, start.AddDate(0, 0, -cravingsLeadDays), start.AddDate(0, 0, -1), func(entry models.DailyLog) bool {
			return entry.HasSymptomID(cravings.ID)
		})
	}) {
		patterns = append(patterns, premenstrualCravingsPattern)
	}

	return patterns
}

// patternTriggered reports whether at least half of the cycles satisfy check.
func patternTriggered(cycles []models.Cycle, check func(start time.Time) bool) bool {
	if len(cycles) == 0 {
		return false
	}
	triggering := 0
	for _, cycle := range cycles {
		if check(CalendarDay(cycle.StartDate)) {
			triggering++
		}
	}
	return triggering*2 >= len(cycles)
}

func anyLogBetween(logs []models.DailyLog, from time.Time, to time.Time, match func(models.DailyLog) bool) bool {
	for _, entry := range logs {
		day := CalendarDay(entry.Date)
		if day.Before(from) || day.After(to) {
			continue
		}
		if match(entry) {
			return true
		}
	}
	return false
}

// meanPainBetween returns 0 when no log in range carries a pain level.
func meanPainBetween(logs []models.DailyLog, from time.Time, to time.Time) float64 {
	levels := make(stats.Float64Data, 0, painObservedDays)
	for _, entry := range logs {
		day := CalendarDay(entry.Date)
		if day.Before(from) || day.After(to) || entry.PainLevel == nil {
			continue
		}
		levels = append(levels, float64(*entry.PainLevel))
	}
	if len(levels) == 0 {
		return 0
	}
	mean, err := stats.Mean(levels)
	if err != nil {
		return 0
	}
	return mean
}
