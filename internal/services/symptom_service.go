package services

import (
	"errors"
	"fmt"

	"github.com/hersaheli/saheli/internal/models"
)

var ErrSymptomListFailed = errors.New("list symptoms failed")

type SymptomCatalogRepository interface {
	List() ([]models.Symptom, error)
	EnsureNames(names []string) (int, error)
}

type SymptomService struct {
	symptoms SymptomCatalogRepository
}

func NewSymptomService(symptoms SymptomCatalogRepository) *SymptomService {
	return &SymptomService{symptoms: symptoms}
}

func (service *SymptomService) ListSymptoms() ([]models.Symptom, error) {
	symptoms, err := service.symptoms.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymptomListFailed, err)
	}
	return symptoms, nil
}

// SeedDefaultSymptoms adds the built-in catalogue entries that are still missing.
func (service *SymptomService) SeedDefaultSymptoms() (int, error) {
	return service.symptoms.EnsureNames(models.DefaultSymptomNames())
}
