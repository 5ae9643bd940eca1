package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/scoring"
)

type CriteriaRepository interface {
	// GetCatalog returns the catalog of a course type in stored order. A
	// course type without criteria yields an empty catalog.
	GetCatalog(ctx context.Context, courseType string) (*scoring.Catalog, error)
	// SaveCatalog replaces every criterion of the course type.
	SaveCatalog(ctx context.Context, courseType string, catalog *scoring.Catalog) error
	ListCourseTypes(ctx context.Context) ([]string, error)
}

type criteriaRepository struct {
	db *gorm.DB
}

func NewCriteriaRepository(db *gorm.DB) CriteriaRepository {
	return &criteriaRepository{db: db}
}

func (r *criteriaRepository) GetCatalog(ctx context.Context, courseType string) (*scoring.Catalog, error) {
	var rows []models.Criterion
	err := r.db.WithContext(ctx).
		Where("course_type = ?", courseType).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load criteria: %w", err)
	}

	criteria := make([]scoring.Criterion, 0, len(rows))
	for _, row := range rows {
		criteria = append(criteria, scoring.Criterion{
			ID:          row.CriterionID,
			Name:        row.Name,
			Description: row.Description,
			Weight:      row.Weight,
			MaxScore:    row.MaxScore,
		})
	}

	catalog, err := scoring.NewCatalog(criteria...)
	if err != nil {
		return nil, fmt.Errorf("stored criteria for %s are inconsistent: %w", courseType, err)
	}
	return catalog, nil
}

func (r *criteriaRepository) SaveCatalog(ctx context.Context, courseType string, catalog *scoring.Catalog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_type = ?", courseType).Delete(&models.Criterion{}).Error; err != nil {
			return fmt.Errorf("failed to clear criteria: %w", err)
		}

		criteria := catalog.Criteria()
		if len(criteria) == 0 {
			return nil
		}

		rows := make([]models.Criterion, 0, len(criteria))
		for i, c := range criteria {
			rows = append(rows, models.Criterion{
				CourseType:  courseType,
				CriterionID: c.ID,
				Name:        c.Name,
				Description: c.Description,
				Weight:      c.Weight,
				MaxScore:    c.MaxScore,
				Position:    i,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save criteria: %w", err)
		}
		return nil
	})
}

func (r *criteriaRepository) ListCourseTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).
		Model(&models.Criterion{}).
		Distinct("course_type").
		Order("course_type ASC").
		Pluck("course_type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list course types: %w", err)
	}
	return types, nil
}
