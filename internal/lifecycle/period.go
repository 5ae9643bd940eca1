// Package lifecycle decides the status of an evaluation period from its date
// range and administrative closure.
//
// Dates are compared as calendar days in the location of the value passed
// in; the time of day is ignored.
package lifecycle

import (
	"time"

	"alfredoptarigan/course-evaluator/internal/apperrors"
	"alfredoptarigan/course-evaluator/internal/models"
)

// StatusOn returns the status the date range implies on today, ignoring
// closure.
func StatusOn(p *models.EvaluationPeriod, today time.Time) models.PeriodStatus {
	day := dateOf(today)
	switch {
	case day.Before(dateOf(p.StartDate)):
		return models.PeriodNotStarted
	case day.After(dateOf(p.EndDate)):
		return models.PeriodCompleted
	default:
		return models.PeriodActive
	}
}

// UpdateStatus moves p to the status implied by today and reports whether it
// changed. A closed period stays closed.
func UpdateStatus(p *models.EvaluationPeriod, today time.Time) bool {
	if p.Status == models.PeriodClosed {
		return false
	}
	next := StatusOn(p, today)
	if next == p.Status {
		return false
	}
	p.Status = next
	return true
}

// IsActive is true when the stored status is active and today is still
// inside the date range. The date is checked again in case the stored status
// is stale.
func IsActive(p *models.EvaluationPeriod, today time.Time) bool {
	if p.Status != models.PeriodActive {
		return false
	}
	return StatusOn(p, today) == models.PeriodActive
}

// IsSubmittable reports whether an evaluation of an offering may be submitted
// in p on today. Every offering shares the period's window, so the offering
// id is not consulted.
func IsSubmittable(p *models.EvaluationPeriod, _ string, today time.Time) bool {
	return IsActive(p, today)
}

// ForceClose closes p regardless of its dates. A period that has not started
// cannot be closed; closing a closed period is a no-op.
func ForceClose(p *models.EvaluationPeriod, now time.Time) error {
	switch p.Status {
	case models.PeriodClosed:
		return nil
	case models.PeriodNotStarted:
		return &apperrors.InvalidTransitionError{
			PeriodID: p.ID,
			From:     string(p.Status),
			To:       string(models.PeriodClosed),
		}
	}
	p.Status = models.PeriodClosed
	p.ClosedAt = &now
	return nil
}

// ValidateRange checks that the period does not end before it starts.
func ValidateRange(start, end time.Time) error {
	if dateOf(end).Before(dateOf(start)) {
		return &apperrors.ValidationError{Field: "end_date", Reason: "must not be before start_date"}
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
