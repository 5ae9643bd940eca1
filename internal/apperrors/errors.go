// Package apperrors defines the typed failures shared by the scoring engine,
// the store and the HTTP layer. Every kind is a recoverable condition that is
// returned to the caller; none of them should terminate the process.
package apperrors

import "fmt"

// ValidationError reports missing or ill-formed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// OutOfRangeError reports a raw score outside [0, maxScore] for a criterion.
type OutOfRangeError struct {
	CriterionID string
	Score       int
	MaxScore    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("score %d for criterion %q is outside [0, %d]", e.Score, e.CriterionID, e.MaxScore)
}

// DuplicateSubmissionError means an evaluation already exists for the
// (student, offering, period) triple.
type DuplicateSubmissionError struct {
	StudentID  string
	OfferingID string
	PeriodID   string
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("student %s already evaluated offering %s in period %s", e.StudentID, e.OfferingID, e.PeriodID)
}

// DuplicateIDError is returned when an id is already taken.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.ID)
}

// NotFoundError is returned when a looked-up entity does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// UnknownCriterionError is returned when a criterion id is not in the catalog.
type UnknownCriterionError struct {
	CriterionID string
}

func (e *UnknownCriterionError) Error() string {
	return fmt.Sprintf("unknown criterion %q", e.CriterionID)
}

// InvalidTransitionError is returned for a period status change the
// lifecycle does not allow.
type InvalidTransitionError struct {
	PeriodID string
	From     string
	To       string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("period %s cannot move from %s to %s", e.PeriodID, e.From, e.To)
}

// PeriodNotOpenError is returned when a submission targets a period that is
// not accepting evaluations.
type PeriodNotOpenError struct {
	PeriodID string
	Status   string
}

func (e *PeriodNotOpenError) Error() string {
	return fmt.Sprintf("period %s is not open for evaluation (status %s)", e.PeriodID, e.Status)
}

// ProtectedAccountError is returned when deleting an account the
// administrative policy protects.
type ProtectedAccountError struct {
	UserID string
}

func (e *ProtectedAccountError) Error() string {
	return fmt.Sprintf("account %s is protected and cannot be deleted", e.UserID)
}

// ConflictError reports an operation refused because other data still
// depends on the target.
type ConflictError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Kind, e.ID, e.Reason)
}
