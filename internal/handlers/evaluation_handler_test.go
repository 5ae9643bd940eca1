package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
	"alfredoptarigan/course-evaluator/internal/scoring"
	"alfredoptarigan/course-evaluator/internal/services"
)

// stubSubmissions serves one stored record and a fixed Breakdown result.
type stubSubmissions struct {
	services.SubmissionService
	eval         *models.EvaluationRecord
	breakdownErr error
}

func (s *stubSubmissions) Get(ctx context.Context, id uuid.UUID) (*models.EvaluationRecord, error) {
	return s.eval, nil
}

func (s *stubSubmissions) Breakdown(ctx context.Context, eval *models.EvaluationRecord) ([]scoring.Breakdown, error) {
	if s.breakdownErr != nil {
		return nil, s.breakdownErr
	}
	return []scoring.Breakdown{{CriterionID: "A", RawScore: 90, Answered: true}}, nil
}

func TestEvaluationHandler_GetBreakdownErrors(t *testing.T) {
	eval := &models.EvaluationRecord{
		ID:         uuid.New(),
		StudentID:  "S1",
		OfferingID: "O1",
		PeriodID:   "P1",
		TotalScore: 84,
		Scores:     scoring.ScoreMap{"A": 90},
	}

	tests := []struct {
		name          string
		breakdownErr  error
		wantStatus    int
		wantBreakdown bool
	}{
		{"no error", nil, http.StatusOK, true},
		{"score above current max", &apperrors.OutOfRangeError{CriterionID: "A", Score: 90, MaxScore: 10}, http.StatusOK, false},
		{"criterion removed", &apperrors.UnknownCriterionError{CriterionID: "A"}, http.StatusOK, false},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			h := NewEvaluationHandler(&stubSubmissions{eval: eval, breakdownErr: tt.breakdownErr})
			app.Get("/evaluations/:id", h.HandleGet)

			status, body := do(t, app, http.MethodGet, "/evaluations/"+eval.ID.String(), nil)

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "internal server error", body["error"])
				return
			}
			assert.Equal(t, "Good", body["grade"])
			_, hasBreakdown := body["breakdown"]
			assert.Equal(t, tt.wantBreakdown, hasBreakdown)
		})
	}
}
