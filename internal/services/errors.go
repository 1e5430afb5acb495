package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrPeriodAlreadyOpen  = fmt.Errorf("%w: period already open", ErrConflict)
	ErrNoOpenPeriod       = fmt.Errorf("%w: no open period", ErrNotFound)
	ErrDailyLogNotFound   = fmt.Errorf("%w: daily log", ErrNotFound)
	ErrPostpartumNotFound = fmt.Errorf("%w: postpartum log", ErrNotFound)
	ErrNotEnoughCycleData = errors.New("not enough cycle data")
)

var (
	ErrCycleLoadFailed      = errors.New("load cycles failed")
	ErrCycleUpdateFailed    = errors.New("update cycles failed")
	ErrDailyLogLoadFailed   = errors.New("load daily log failed")
	ErrDailyLogSaveFailed   = errors.New("save daily log failed")
	ErrSymptomResolveFailed = errors.New("resolve symptoms failed")
	ErrProfileLoadFailed    = errors.New("load profile failed")
	ErrProfileUpdateFailed  = errors.New("update profile failed")
)

// ValidationError names the offending input field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (err *ValidationError) Error() string {
	if err.Field == "" {
		return err.Message
	}
	return err.Field + ": " + err.Message
}

func (err *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}
