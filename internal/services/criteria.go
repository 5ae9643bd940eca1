package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/repositories"
	"alfredoptarigan/course-evaluator/internal/scoring"
)

type CriteriaService interface {
	Catalog(ctx context.Context, courseType string) (*scoring.Catalog, error)
	AddCriterion(ctx context.Context, courseType string, c scoring.Criterion) (*scoring.Catalog, error)
	RemoveCriterion(ctx context.Context, courseType, criterionID string) (*scoring.Catalog, error)
	// ReplaceCatalog swaps the whole catalog of a course type. The new
	// catalog must be valid.
	ReplaceCatalog(ctx context.Context, courseType string, criteria []scoring.Criterion) (*scoring.Catalog, error)
	CourseTypes(ctx context.Context) ([]string, error)
}

type criteriaService struct {
	criteriaRepo repositories.CriteriaRepository
	locks        *keyLock
}

func NewCriteriaService(criteriaRepo repositories.CriteriaRepository) CriteriaService {
	return &criteriaService{
		criteriaRepo: criteriaRepo,
		locks:        newKeyLock(),
	}
}

func (s *criteriaService) Catalog(ctx context.Context, courseType string) (*scoring.Catalog, error) {
	if strings.TrimSpace(courseType) == "" {
		return nil, &apperrors.ValidationError{Field: "course_type", Reason: "is required"}
	}
	return s.criteriaRepo.GetCatalog(ctx, courseType)
}

func (s *criteriaService) AddCriterion(ctx context.Context, courseType string, c scoring.Criterion) (*scoring.Catalog, error) {
	return s.mutate(ctx, courseType, func(catalog *scoring.Catalog) error {
		return catalog.AddCriterion(c)
	})
}

func (s *criteriaService) RemoveCriterion(ctx context.Context, courseType, criterionID string) (*scoring.Catalog, error) {
	return s.mutate(ctx, courseType, func(catalog *scoring.Catalog) error {
		return catalog.RemoveCriterion(criterionID)
	})
}

func (s *criteriaService) mutate(ctx context.Context, courseType string, change func(*scoring.Catalog) error) (*scoring.Catalog, error) {
	if strings.TrimSpace(courseType) == "" {
		return nil, &apperrors.ValidationError{Field: "course_type", Reason: "is required"}
	}

	unlock := s.locks.Lock(courseType)
	defer unlock()

	catalog, err := s.criteriaRepo.GetCatalog(ctx, courseType)
	if err != nil {
		return nil, err
	}
	if err := change(catalog); err != nil {
		return nil, err
	}
	if err := s.criteriaRepo.SaveCatalog(ctx, courseType, catalog); err != nil {
		return nil, err
	}
	if !catalog.IsValid() {
		log.Printf("⚠️  Criteria for %s now weigh %.2f%%, submissions are blocked until they sum to 100\n", courseType, catalog.TotalWeight())
	}
	return catalog, nil
}

func (s *criteriaService) ReplaceCatalog(ctx context.Context, courseType string, criteria []scoring.Criterion) (*scoring.Catalog, error) {
	if strings.TrimSpace(courseType) == "" {
		return nil, &apperrors.ValidationError{Field: "course_type", Reason: "is required"}
	}
	catalog, err := scoring.NewCatalog(criteria...)
	if err != nil {
		return nil, err
	}
	if !catalog.IsValid() {
		return nil, &apperrors.ValidationError{
			Field:  "criteria",
			Reason: fmt.Sprintf("weights sum to %.2f, must sum to 100", catalog.TotalWeight()),
		}
	}

	unlock := s.locks.Lock(courseType)
	defer unlock()

	if err := s.criteriaRepo.SaveCatalog(ctx, courseType, catalog); err != nil {
		return nil, err
	}
	log.Printf("📋 Criteria for %s replaced (%d criteria)\n", courseType, catalog.Len())
	return catalog, nil
}

func (s *criteriaService) CourseTypes(ctx context.Context) ([]string, error) {
	return s.criteriaRepo.ListCourseTypes(ctx)
}
