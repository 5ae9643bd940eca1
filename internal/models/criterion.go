package models

import "time"

// Criterion is one row of a course type's criteria catalog.
type Criterion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	CourseType  string    `gorm:"type:text;not null;uniqueIndex:idx_course_type_criterion" json:"course_type"`
	CriterionID string    `gorm:"type:text;not null;uniqueIndex:idx_course_type_criterion" json:"criterion_id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Weight      float64   `gorm:"type:double precision;not null" json:"weight"`
	MaxScore    int       `gorm:"not null" json:"max_score"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Criterion) TableName() string {
	return "criteria"
}
