package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
)

type PeriodRepository interface {
	Create(ctx context.Context, period *models.EvaluationPeriod) error
	FindByID(ctx context.Context, id string) (*models.EvaluationPeriod, error)
	Save(ctx context.Context, period *models.EvaluationPeriod) error
	List(ctx context.Context) ([]models.EvaluationPeriod, error)
	Delete(ctx context.Context, id string) error
}

type periodRepository struct {
	db *gorm.DB
}

func NewPeriodRepository(db *gorm.DB) PeriodRepository {
	return &periodRepository{db: db}
}

func (r *periodRepository) Create(ctx context.Context, period *models.EvaluationPeriod) error {
	if err := r.db.WithContext(ctx).Create(period).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &apperrors.DuplicateIDError{Kind: "period", ID: period.ID}
		}
		return fmt.Errorf("failed to create period: %w", err)
	}
	return nil
}

func (r *periodRepository) FindByID(ctx context.Context, id string) (*models.EvaluationPeriod, error) {
	var period models.EvaluationPeriod
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Kind: "period", ID: id}
		}
		return nil, fmt.Errorf("failed to find period: %w", err)
	}
	return &period, nil
}

func (r *periodRepository) Save(ctx context.Context, period *models.EvaluationPeriod) error {
	result := r.db.WithContext(ctx).Model(&models.EvaluationPeriod{}).
		Where("id = ?", period.ID).
		Updates(map[string]interface{}{
			"name":       period.Name,
			"semester":   period.Semester,
			"start_date": period.StartDate,
			"end_date":   period.EndDate,
			"status":     period.Status,
			"closed_at":  period.ClosedAt,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update period: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return &apperrors.NotFoundError{Kind: "period", ID: period.ID}
	}

	return nil
}

func (r *periodRepository) List(ctx context.Context) ([]models.EvaluationPeriod, error) {
	var periods []models.EvaluationPeriod
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&periods).Error; err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

func (r *periodRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EvaluationPeriod{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete period: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.NotFoundError{Kind: "period", ID: id}
	}
	return nil
}
