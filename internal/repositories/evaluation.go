package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/scoring"
)

// EvaluationFilter narrows List. Empty fields match everything.
type EvaluationFilter struct {
	StudentID   string
	OfferingIDs []string
}

type EvaluationRepository interface {
	// FindByTriple returns nil, nil when no record exists.
	FindByTriple(ctx context.Context, studentID, offeringID, periodID string) (*models.EvaluationRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.EvaluationRecord, error)
	// InsertIfAbsent stores eval unless a record for the same triple exists,
	// in which case it returns *apperrors.DuplicateSubmissionError. The
	// check and the insert are one atomic step.
	InsertIfAbsent(ctx context.Context, eval *models.EvaluationRecord) error
	List(ctx context.Context, periodID string, filter EvaluationFilter) ([]models.EvaluationRecord, error)
	CountByPeriod(ctx context.Context, periodID string) (int64, error)
}

type evaluationRepository struct {
	db    *gorm.DB
	codec *scoring.Codec
}

func NewEvaluationRepository(db *gorm.DB, codec *scoring.Codec) EvaluationRepository {
	if codec == nil {
		codec = scoring.NewCodec(nil)
	}
	return &evaluationRepository{db: db, codec: codec}
}

func (r *evaluationRepository) FindByTriple(ctx context.Context, studentID, offeringID, periodID string) (*models.EvaluationRecord, error) {
	var eval models.EvaluationRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND offering_id = ? AND period_id = ?", studentID, offeringID, periodID).
		First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	eval.Scores = r.codec.Decode(eval.ScoreText)
	return &eval, nil
}

func (r *evaluationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.EvaluationRecord, error) {
	var eval models.EvaluationRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Kind: "evaluation", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	eval.Scores = r.codec.Decode(eval.ScoreText)
	return &eval, nil
}

func (r *evaluationRepository) InsertIfAbsent(ctx context.Context, eval *models.EvaluationRecord) error {
	eval.ScoreText = r.codec.Encode(eval.Scores)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_id"},
				{Name: "offering_id"},
				{Name: "period_id"},
			},
			DoNothing: true,
		}).
		Create(eval)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return duplicateOf(eval)
		}
		return fmt.Errorf("failed to create evaluation: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return duplicateOf(eval)
	}

	return nil
}

func (r *evaluationRepository) List(ctx context.Context, periodID string, filter EvaluationFilter) ([]models.EvaluationRecord, error) {
	query := r.db.WithContext(ctx).Where("period_id = ?", periodID)
	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if len(filter.OfferingIDs) > 0 {
		query = query.Where("offering_id IN ?", filter.OfferingIDs)
	}

	var evals []models.EvaluationRecord
	if err := query.Order("created_at ASC").Find(&evals).Error; err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	for i := range evals {
		evals[i].Scores = r.codec.Decode(evals[i].ScoreText)
	}
	return evals, nil
}

func (r *evaluationRepository) CountByPeriod(ctx context.Context, periodID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.EvaluationRecord{}).Where("period_id = ?", periodID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count evaluations: %w", err)
	}
	return n, nil
}

func duplicateOf(eval *models.EvaluationRecord) error {
	return &apperrors.DuplicateSubmissionError{
		StudentID:  eval.StudentID,
		OfferingID: eval.OfferingID,
		PeriodID:   eval.PeriodID,
	}
}
