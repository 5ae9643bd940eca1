package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/lifecycle"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/repositories"
)

type CreatePeriodInput struct {
	ID        string
	Name      string
	Semester  string
	StartDate time.Time
	EndDate   time.Time
}

type PeriodService interface {
	Create(ctx context.Context, in CreatePeriodInput) (*models.EvaluationPeriod, error)
	// Get loads the period and brings its status up to date.
	Get(ctx context.Context, id string) (*models.EvaluationPeriod, error)
	List(ctx context.Context) ([]models.EvaluationPeriod, error)
	ForceClose(ctx context.Context, id string) (*models.EvaluationPeriod, error)
	Delete(ctx context.Context, id string) error
	// RefreshAll updates every period's status and returns how many changed.
	RefreshAll(ctx context.Context) (int, error)
	Today() time.Time
}

type periodService struct {
	periodRepo repositories.PeriodRepository
	evalRepo   repositories.EvaluationRepository
	clock      Clock
	locks      *keyLock
}

func NewPeriodService(
	periodRepo repositories.PeriodRepository,
	evalRepo repositories.EvaluationRepository,
	clock Clock,
) PeriodService {
	return &periodService{
		periodRepo: periodRepo,
		evalRepo:   evalRepo,
		clock:      clockOrNow(clock),
		locks:      newKeyLock(),
	}
}

func (s *periodService) Today() time.Time {
	return s.clock()
}

func (s *periodService) Create(ctx context.Context, in CreatePeriodInput) (*models.EvaluationPeriod, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &apperrors.ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(in.Semester) == "" {
		return nil, &apperrors.ValidationError{Field: "semester", Reason: "is required"}
	}
	if err := lifecycle.ValidateRange(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	period := &models.EvaluationPeriod{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Semester:  strings.TrimSpace(in.Semester),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	period.Status = lifecycle.StatusOn(period, s.clock())

	if err := s.periodRepo.Create(ctx, period); err != nil {
		return nil, err
	}

	log.Printf("🗓️  Period %s created (%s)\n", period.ID, period.Status)
	return period, nil
}

func (s *periodService) Get(ctx context.Context, id string) (*models.EvaluationPeriod, error) {
	unlock := s.locks.Lock(id)
	defer unlock()
	return s.refresh(ctx, id)
}

func (s *periodService) refresh(ctx context.Context, id string) (*models.EvaluationPeriod, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lifecycle.UpdateStatus(period, s.clock()) {
		if err := s.periodRepo.Save(ctx, period); err != nil {
			return nil, fmt.Errorf("failed to save period status: %w", err)
		}
		periodTransitionsTotal.WithLabelValues(string(period.Status)).Inc()
		log.Printf("🔄 Period %s is now %s\n", period.ID, period.Status)
	}
	return period, nil
}

func (s *periodService) List(ctx context.Context) ([]models.EvaluationPeriod, error) {
	if _, err := s.RefreshAll(ctx); err != nil {
		return nil, err
	}
	return s.periodRepo.List(ctx)
}

func (s *periodService) ForceClose(ctx context.Context, id string) (*models.EvaluationPeriod, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	period, err := s.refresh(ctx, id)
	if err != nil {
		return nil, err
	}
	if period.Status == models.PeriodClosed {
		return period, nil
	}
	if err := lifecycle.ForceClose(period, s.clock()); err != nil {
		return nil, err
	}
	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to close period: %w", err)
	}
	periodTransitionsTotal.WithLabelValues(string(models.PeriodClosed)).Inc()
	log.Printf("🔒 Period %s closed by administrator\n", period.ID)
	return period, nil
}

func (s *periodService) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	n, err := s.evalRepo.CountByPeriod(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &apperrors.ConflictError{
			Kind:   "period",
			ID:     id,
			Reason: fmt.Sprintf("%d evaluations still reference it", n),
		}
	}
	return s.periodRepo.Delete(ctx, id)
}

func (s *periodService) RefreshAll(ctx context.Context) (int, error) {
	periods, err := s.periodRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, p := range periods {
		before := p.Status
		refreshed, err := s.Get(ctx, p.ID)
		if err != nil {
			return changed, err
		}
		if refreshed.Status != before {
			changed++
		}
	}
	return changed, nil
}
