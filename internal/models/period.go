package models

import "time"

type PeriodStatus string

const (
	PeriodNotStarted PeriodStatus = "not_started"
	PeriodActive     PeriodStatus = "active"
	PeriodCompleted  PeriodStatus = "completed"
	PeriodClosed     PeriodStatus = "closed"
)

// EvaluationPeriod is an administrator-defined window in which evaluations
// may be submitted. StartDate and EndDate are calendar days, both inclusive.
type EvaluationPeriod struct {
	ID        string       `gorm:"type:text;primary_key" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Semester  string       `gorm:"type:text;not null;index" json:"semester"`
	StartDate time.Time    `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time    `gorm:"type:date;not null" json:"end_date"`
	Status    PeriodStatus `gorm:"type:text;not null;default:'not_started'" json:"status"`
	ClosedAt  *time.Time   `gorm:"type:timestamp" json:"closed_at,omitempty"`
	CreatedAt time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (EvaluationPeriod) TableName() string {
	return "evaluation_periods"
}
