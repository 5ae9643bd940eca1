package models

import (
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/course-evaluator/internal/scoring"
)

// EvaluationRecord is one student's evaluation of one offering in one
// period. The unique index on (student_id, offering_id, period_id) is what
// makes a second submission fail atomically.
type EvaluationRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID  string    `gorm:"type:text;not null;uniqueIndex:idx_evaluation_once" json:"student_id"`
	OfferingID string    `gorm:"type:text;not null;uniqueIndex:idx_evaluation_once" json:"offering_id"`
	PeriodID   string    `gorm:"type:text;not null;uniqueIndex:idx_evaluation_once;index" json:"period_id"`
	CourseType string    `gorm:"type:text" json:"course_type"`
	ScoreText  string    `gorm:"column:scores;type:text;not null" json:"-"`
	TotalScore float64   `gorm:"type:double precision;not null" json:"total_score"`
	Comments   string    `gorm:"type:text" json:"comments"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Scores scoring.ScoreMap `gorm:"-" json:"scores"`
}

func (EvaluationRecord) TableName() string {
	return "evaluations"
}

// Grade derives the letter band from TotalScore.
func (e *EvaluationRecord) Grade() scoring.Grade {
	return scoring.GradeFor(e.TotalScore)
}
