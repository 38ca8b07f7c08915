package repos

import (
	"github.com/tauraamui/shotdetect/pkg/catalog/models"
	"github.com/tauraamui/xerror"
)

type ExtractionRepository struct {
	DB GormWrapper
}

func (r *ExtractionRepository) Create(extraction *models.Extraction) error {
	return r.DB.Create(extraction).Error()
}

// FindBySignalPath returns the most recent extraction which wrote path.
func (r *ExtractionRepository) FindBySignalPath(path string) (models.Extraction, error) {
	extraction := models.Extraction{}
	if err := r.DB.Where("signal_path = ?", path).Order("created_at desc").First(&extraction).Error(); err != nil {
		return extraction, xerror.Errorf("extraction of signal %s not found", path)
	}

	return extraction, nil
}

func (r *ExtractionRepository) Latest(limit int) ([]models.Extraction, error) {
	extractions := []models.Extraction{}
	if err := r.DB.Order("created_at desc").Limit(limit).Find(&extractions).Error(); err != nil {
		return nil, xerror.Errorf("unable to list extractions: %w", err)
	}

	return extractions, nil
}
