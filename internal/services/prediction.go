package services

import (
	"fmt"
	"math"
	"time"

	"github.com/hersaheli/saheli/internal/models"
	"github.com/montanaflynn/stats"
)

const (
	PredictionNextPeriod    = "next_period"
	PredictionOvulationDay  = "ovulation_day"
	PredictionFertileWindow = "fertile_window"
)

type PredictionEvent struct {
	Date time.Time
	Type string
}

type RecentCycleReader interface {
	ListRecent(userID uint, limit int) ([]models.Cycle, error)
}

type ProfileReader interface {
	FindProfile(userID uint) (models.UserProfile, error)
}

type PredictionService struct {
	cycles   RecentCycleReader
	profiles ProfileReader
}

func NewPredictionService(cycles RecentCycleReader, profiles ProfileReader) *PredictionService {
	return &PredictionService{
		cycles:   cycles,
		profiles: profiles,
	}
}

func (service *PredictionService) PredictForUser(userID uint) ([]PredictionEvent, error) {
	recent, err := service.cycles.ListRecent(userID, recentCycleLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if len(recent) < 2 {
		return nil, ErrNotEnoughCycleData
	}

	profile, err := service.profiles.FindProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	return BuildPredictions(recent, profile.AverageCycle)
}

// AverageCycleLength averages the plausible start-to-start gaps of cycles ordered newest first.
// fallback is used when no gap survives, and 28 replaces a non-positive fallback.
func AverageCycleLength(newestFirst []models.Cycle, fallback int) int {
	if fallback <= 0 {
		fallback = models.DefaultCycleLength
	}

	gaps := make(stats.Float64Data, 0, len(newestFirst))
	for _, gap := range startGaps(cycleStartsAscending(newestFirst)) {
		if plausibleCycleGap(gap) {
			gaps = append(gaps, float64(gap))
		}
	}
	if len(gaps) == 0 {
		return fallback
	}

	mean, err := stats.Mean(gaps)
	if err != nil {
		return fallback
	}
	return int(math.Floor(mean))
}

func BuildPredictions(newestFirst []models.Cycle, fallbackCycleLength int) ([]PredictionEvent, error) {
	if len(newestFirst) < 2 {
		return nil, ErrNotEnoughCycleData
	}

	averageLength := AverageCycleLength(newestFirst, fallbackCycleLength)
	nextStart := addDays(newestFirst[0].StartDate, averageLength)
	ovulation := nextStart.AddDate(0, 0, -lutealPhaseDays)

	events := make([]PredictionEvent, 0, fertileWindowLeadDays+3)
	events = append(events,
		PredictionEvent{Date: nextStart, Type: PredictionNextPeriod},
		PredictionEvent{Date: ovulation, Type: PredictionOvulationDay},
	)
	for cursor := ovulation.AddDate(0, 0, -fertileWindowLeadDays); !cursor.After(ovulation); cursor = cursor.AddDate(0, 0, 1) {
		events = append(events, PredictionEvent{Date: cursor, Type: PredictionFertileWindow})
	}
	return events, nil
}
