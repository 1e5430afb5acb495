package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hersaheli/saheli/internal/models"
)

const (
	minLevel             = 0
	maxLevel             = 5
	maxNotesLength       = 2000
	maxSymptomNameLength = 100
)

// DailyLogPatch carries the fields a single write owns. A field is only touched when its Set flag
// is true; a set field with a nil value clears the stored value.
type DailyLogPatch struct {
	MoodSet        bool
	Mood           *string
	PainLevelSet   bool
	PainLevel      *int
	EnergyLevelSet bool
	EnergyLevel    *int
	NotesSet       bool
	Notes          *string
	SymptomsSet    bool
	Symptoms       []string
}

type DailyLogRepository interface {
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error)
	SaveWithSymptoms(entry *models.DailyLog, replaceSymptoms bool) error
}

type SymptomResolver interface {
	ResolveNames(names []string) ([]models.Symptom, error)
}

type DailyLogService struct {
	logs     DailyLogRepository
	symptoms SymptomResolver
	locks    *userLocks
}

func NewDailyLogService(logs DailyLogRepository, symptoms SymptomResolver) *DailyLogService {
	return &DailyLogService{
		logs:     logs,
		symptoms: symptoms,
		locks:    newUserLocks(),
	}
}

func (service *DailyLogService) GetDailyLog(userID uint, day time.Time) (models.DailyLog, error) {
	dayStart, dayEnd := DayRange(day)
	entry, found, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	if !found {
		return models.DailyLog{}, ErrDailyLogNotFound
	}
	return entry, nil
}

// PatchDailyLog creates the log for day on first write and merges patch into it. created reports
// whether the log did not exist before.
func (service *DailyLogService) PatchDailyLog(ctx context.Context, userID uint, day time.Time, patch DailyLogPatch) (models.DailyLog, bool, error) {
	normalized, err := NormalizeDailyLogPatch(patch)
	if err != nil {
		return models.DailyLog{}, false, err
	}

	var symptoms []models.Symptom
	if normalized.SymptomsSet {
		symptoms, err = service.symptoms.ResolveNames(normalized.Symptoms)
		if err != nil {
			return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrSymptomResolveFailed, err)
		}
	}

	release, err := service.locks.acquire(ctx, userID)
	if err != nil {
		return models.DailyLog{}, false, err
	}
	defer release()

	dayStart, dayEnd := DayRange(day)
	entry, found, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	if !found {
		entry = models.DailyLog{UserID: userID, Date: dayStart, Symptoms: []models.Symptom{}}
	}

	ApplyDailyLogPatch(&entry, normalized, symptoms)
	if err := service.logs.SaveWithSymptoms(&entry, normalized.SymptomsSet); err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogSaveFailed, err)
	}
	return entry, !found, nil
}

func ApplyDailyLogPatch(entry *models.DailyLog, patch DailyLogPatch, symptoms []models.Symptom) {
	if patch.MoodSet {
		entry.Mood = patch.Mood
	}
	if patch.PainLevelSet {
		entry.PainLevel = patch.PainLevel
	}
	if patch.EnergyLevelSet {
		entry.EnergyLevel = patch.EnergyLevel
	}
	if patch.NotesSet {
		entry.Notes = patch.Notes
	}
	if patch.SymptomsSet {
		entry.Symptoms = append([]models.Symptom{}, symptoms...)
	}
}

// NormalizeDailyLogPatch validates patch and returns it with canonical values.
func NormalizeDailyLogPatch(patch DailyLogPatch) (DailyLogPatch, error) {
	normalized := patch

	if patch.MoodSet && patch.Mood != nil {
		mood := strings.ToUpper(strings.TrimSpace(*patch.Mood))
		if !models.IsValidMood(mood) {
			return DailyLogPatch{}, newValidationError("mood", fmt.Sprintf("%q is not a valid choice.", *patch.Mood))
		}
		normalized.Mood = &mood
	}

	if patch.PainLevelSet && patch.PainLevel != nil && !levelInRange(*patch.PainLevel) {
		return DailyLogPatch{}, newValidationError("pain_level", "Ensure this value is between 0 and 5.")
	}
	if patch.EnergyLevelSet && patch.EnergyLevel != nil && !levelInRange(*patch.EnergyLevel) {
		return DailyLogPatch{}, newValidationError("energy_level", "Ensure this value is between 0 and 5.")
	}

	if patch.NotesSet && patch.Notes != nil {
		notes := truncateRunes(strings.TrimSpace(*patch.Notes), maxNotesLength)
		if notes == "" {
			normalized.Notes = nil
		} else {
			normalized.Notes = &notes
		}
	}

	if patch.SymptomsSet {
		names, err := normalizeSymptomNames(patch.Symptoms)
		if err != nil {
			return DailyLogPatch{}, err
		}
		normalized.Symptoms = names
	}

	return normalized, nil
}

func levelInRange(value int) bool {
	return value >= minLevel && value <= maxLevel
}

func normalizeSymptomNames(raw []string) ([]string, error) {
	names := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, value := range raw {
		name := strings.TrimSpace(value)
		if name == "" {
			return nil, newValidationError("symptoms", "Symptom names may not be blank.")
		}
		if utf8.RuneCountInString(name) > maxSymptomNameLength {
			return nil, newValidationError("symptoms", "Symptom names must be at most 100 characters.")
		}
		key := strings.ToLower(name)
		if _, duplicate := seen[key]; duplicate {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit])
}
