package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hersaheli/saheli/internal/models"
	"gorm.io/gorm"
)

type CycleRepository interface {
	ListByUser(userID uint) ([]models.Cycle, error)
	ListRecent(userID uint, limit int) ([]models.Cycle, error)
	ListRecentCompleted(userID uint, limit int) ([]models.Cycle, error)
	MutateUserCycles(userID uint, plan func(current []models.Cycle) (models.CycleChanges, error)) (models.CycleChanges, error)
}

type CycleService struct {
	cycles CycleRepository
	locks  *userLocks
}

func NewCycleService(cycles CycleRepository) *CycleService {
	return &CycleService{
		cycles: cycles,
		locks:  newUserLocks(),
	}
}

func (service *CycleService) ListCycles(userID uint) ([]models.Cycle, error) {
	cycles, err := service.cycles.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	return cycles, nil
}

func (service *CycleService) ListPeriodDays(userID uint, today time.Time) ([]time.Time, error) {
	cycles, err := service.ListCycles(userID)
	if err != nil {
		return nil, err
	}
	return PeriodDays(cycles, today), nil
}

// ToggleDayAdd reports whether a new cycle was created for day.
func (service *CycleService) ToggleDayAdd(ctx context.Context, userID uint, day time.Time, today time.Time) (bool, error) {
	created := false
	_, err := service.mutate(ctx, userID, func(current []models.Cycle) (models.CycleChanges, error) {
		changes, isNew := PlanToggleAdd(current, day, today)
		created = isNew
		return changes, nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (service *CycleService) ToggleDayRemove(ctx context.Context, userID uint, day time.Time, today time.Time) error {
	_, err := service.mutate(ctx, userID, func(current []models.Cycle) (models.CycleChanges, error) {
		return PlanToggleRemove(current, day, today), nil
	})
	return err
}

func (service *CycleService) StartPeriod(ctx context.Context, userID uint, start time.Time) (models.Cycle, error) {
	applied, err := service.mutate(ctx, userID, func(current []models.Cycle) (models.CycleChanges, error) {
		return PlanStartPeriod(current, start)
	})
	if err != nil {
		return models.Cycle{}, err
	}
	if len(applied.Create) != 1 {
		return models.Cycle{}, fmt.Errorf("%w: unexpected start plan", ErrCycleUpdateFailed)
	}
	cycle := applied.Create[0]
	cycle.UserID = userID
	return cycle, nil
}

func (service *CycleService) EndPeriod(ctx context.Context, userID uint, end time.Time) (models.Cycle, error) {
	applied, err := service.mutate(ctx, userID, func(current []models.Cycle) (models.CycleChanges, error) {
		return PlanEndPeriod(current, end)
	})
	if err != nil {
		return models.Cycle{}, err
	}
	if len(applied.Update) != 1 {
		return models.Cycle{}, fmt.Errorf("%w: unexpected end plan", ErrCycleUpdateFailed)
	}
	return applied.Update[0], nil
}

func (service *CycleService) mutate(ctx context.Context, userID uint, plan func([]models.Cycle) (models.CycleChanges, error)) (models.CycleChanges, error) {
	release, err := service.locks.acquire(ctx, userID)
	if err != nil {
		return models.CycleChanges{}, err
	}
	defer release()

	applied, err := service.cycles.MutateUserCycles(userID, plan)
	switch {
	case err == nil:
		return applied, nil
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict), errors.Is(err, ErrNotFound):
		return models.CycleChanges{}, err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.CycleChanges{}, ErrPeriodAlreadyOpen
	default:
		return models.CycleChanges{}, fmt.Errorf("%w: %v", ErrCycleUpdateFailed, err)
	}
}
