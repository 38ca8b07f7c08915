package repos

import (
	"github.com/tauraamui/shotdetect/pkg/catalog/models"
	"github.com/tauraamui/xerror"
)

type DetectionRepository struct {
	DB GormWrapper
}

func (r *DetectionRepository) Create(detection *models.Detection) error {
	return r.DB.Create(detection).Error()
}

func (r *DetectionRepository) Latest(limit int) ([]models.Detection, error) {
	detections := []models.Detection{}
	if err := r.DB.Order("created_at desc").Limit(limit).Find(&detections).Error(); err != nil {
		return nil, xerror.Errorf("unable to list detections: %w", err)
	}

	return detections, nil
}
