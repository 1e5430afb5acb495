package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hersaheli/saheli/internal/models"
)

var ErrPostpartumSaveFailed = errors.New("save postpartum log failed")

type PostpartumRepository interface {
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.PostpartumMoodLog, bool, error)
	ListByUser(userID uint) ([]models.PostpartumMoodLog, error)
	Save(entry *models.PostpartumMoodLog) error
}

type PostpartumService struct {
	logs  PostpartumRepository
	locks *userLocks
}

func NewPostpartumService(logs PostpartumRepository) *PostpartumService {
	return &PostpartumService{
		logs:  logs,
		locks: newUserLocks(),
	}
}

func (service *PostpartumService) GetMoodLog(userID uint, day time.Time) (models.PostpartumMoodLog, error) {
	dayStart, dayEnd := DayRange(day)
	entry, found, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.PostpartumMoodLog{}, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	if !found {
		return models.PostpartumMoodLog{}, ErrPostpartumNotFound
	}
	return entry, nil
}

func (service *PostpartumService) ListMoodLogs(userID uint) ([]models.PostpartumMoodLog, error) {
	entries, err := service.logs.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	return entries, nil
}

func (service *PostpartumService) SetMood(ctx context.Context, userID uint, day time.Time, rawMood string) (models.PostpartumMoodLog, bool, error) {
	mood := strings.ToUpper(strings.TrimSpace(rawMood))
	if !models.IsValidPostpartumMood(mood) {
		return models.PostpartumMoodLog{}, false, newValidationError("mood", fmt.Sprintf("%q is not a valid choice.", rawMood))
	}

	release, err := service.locks.acquire(ctx, userID)
	if err != nil {
		return models.PostpartumMoodLog{}, false, err
	}
	defer release()

	dayStart, dayEnd := DayRange(day)
	entry, found, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.PostpartumMoodLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	if !found {
		entry = models.PostpartumMoodLog{UserID: userID, Date: dayStart}
	}
	entry.Mood = mood
	if err := service.logs.Save(&entry); err != nil {
		return models.PostpartumMoodLog{}, false, fmt.Errorf("%w: %v", ErrPostpartumSaveFailed, err)
	}
	return entry, !found, nil
}
