package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"alfredoptarigan/course-evaluator/internal/apperrors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&apperrors.ValidationError{Field: "x", Reason: "bad"}, fiber.StatusBadRequest},
		{&apperrors.UnknownCriterionError{CriterionID: "z"}, fiber.StatusBadRequest},
		{&apperrors.OutOfRangeError{CriterionID: "a", Score: 9, MaxScore: 5}, fiber.StatusUnprocessableEntity},
		{&apperrors.NotFoundError{Kind: "period", ID: "p"}, fiber.StatusNotFound},
		{&apperrors.DuplicateSubmissionError{}, fiber.StatusConflict},
		{&apperrors.DuplicateIDError{Kind: "period", ID: "p"}, fiber.StatusConflict},
		{&apperrors.PeriodNotOpenError{PeriodID: "p", Status: "closed"}, fiber.StatusConflict},
		{&apperrors.InvalidTransitionError{}, fiber.StatusConflict},
		{&apperrors.ConflictError{}, fiber.StatusConflict},
		{&apperrors.ProtectedAccountError{UserID: "ADMIN001"}, fiber.StatusForbidden},
		{fmt.Errorf("wrapped: %w", &apperrors.NotFoundError{}), fiber.StatusNotFound},
		{fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.err), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
