package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
)

// DirectoryRepository serves the college/course/class/offering dimensions.
type DirectoryRepository interface {
	FindOffering(ctx context.Context, id string) (*models.Offering, error)
	FindCourse(ctx context.Context, id string) (*models.Course, error)
	// ListOfferings returns every offering, or only those of semester when
	// it is not empty.
	ListOfferings(ctx context.Context, semester string) ([]models.Offering, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListColleges(ctx context.Context) ([]models.College, error)

	UpsertCollege(ctx context.Context, college *models.College) error
	UpsertCourse(ctx context.Context, course *models.Course) error
	UpsertClass(ctx context.Context, class *models.Class) error
	UpsertOffering(ctx context.Context, offering *models.Offering) error
}

type directoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) FindOffering(ctx context.Context, id string) (*models.Offering, error) {
	var offering models.Offering
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&offering).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Kind: "offering", ID: id}
		}
		return nil, fmt.Errorf("failed to find offering: %w", err)
	}
	return &offering, nil
}

func (r *directoryRepository) FindCourse(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Kind: "course", ID: id}
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	return &course, nil
}

func (r *directoryRepository) ListOfferings(ctx context.Context, semester string) ([]models.Offering, error) {
	query := r.db.WithContext(ctx)
	if semester != "" {
		query = query.Where("semester = ?", semester)
	}
	var offerings []models.Offering
	if err := query.Order("id ASC").Find(&offerings).Error; err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}
	return offerings, nil
}

func (r *directoryRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (r *directoryRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

func (r *directoryRepository) ListColleges(ctx context.Context) ([]models.College, error) {
	var colleges []models.College
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&colleges).Error; err != nil {
		return nil, fmt.Errorf("failed to list colleges: %w", err)
	}
	return colleges, nil
}

func (r *directoryRepository) UpsertCollege(ctx context.Context, college *models.College) error {
	return r.upsert(ctx, college, "college")
}

func (r *directoryRepository) UpsertCourse(ctx context.Context, course *models.Course) error {
	return r.upsert(ctx, course, "course")
}

func (r *directoryRepository) UpsertClass(ctx context.Context, class *models.Class) error {
	return r.upsert(ctx, class, "class")
}

func (r *directoryRepository) UpsertOffering(ctx context.Context, offering *models.Offering) error {
	return r.upsert(ctx, offering, "offering")
}

func (r *directoryRepository) upsert(ctx context.Context, value interface{}, kind string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(value).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", kind, err)
	}
	return nil
}
