package models

import "alfredoptarigan/course-evaluator/internal/scoring"

type SubmitEvaluationRequest struct {
	StudentID  string         `json:"student_id" validate:"required,max=64"`
	OfferingID string         `json:"offering_id" validate:"required,max=64"`
	PeriodID   string         `json:"period_id" validate:"required,max=64"`
	Scores     map[string]int `json:"scores" validate:"required,min=1,dive,keys,criterionid,endkeys"`
	Comments   string         `json:"comments" validate:"max=2000"`
}

type EvaluationResponse struct {
	ID         string              `json:"id"`
	StudentID  string              `json:"student_id"`
	OfferingID string              `json:"offering_id"`
	PeriodID   string              `json:"period_id"`
	Scores     scoring.ScoreMap    `json:"scores"`
	TotalScore float64             `json:"total_score"`
	Grade      scoring.Grade       `json:"grade"`
	Comments   string              `json:"comments,omitempty"`
	CreatedAt  string              `json:"created_at"`
	Breakdown  []scoring.Breakdown `json:"breakdown,omitempty"`
}

type CreatePeriodRequest struct {
	ID        string `json:"id" validate:"omitempty,max=64"`
	Name      string `json:"name" validate:"required,max=200"`
	Semester  string `json:"semester" validate:"required,max=64"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type PeriodResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Semester    string       `json:"semester"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Status      PeriodStatus `json:"status"`
	Submittable bool         `json:"submittable"`
}

type AddCriterionRequest struct {
	ID          string  `json:"id" validate:"required,max=64,criterionid"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Weight      float64 `json:"weight" validate:"gt=0,lte=100"`
	MaxScore    int     `json:"max_score" validate:"gt=0"`
}

type CatalogResponse struct {
	CourseType  string              `json:"course_type"`
	Criteria    []scoring.Criterion `json:"criteria"`
	TotalWeight float64             `json:"total_weight"`
	Valid       bool                `json:"valid"`
}

type ReplaceCatalogRequest struct {
	Criteria []AddCriterionRequest `json:"criteria" validate:"required,min=1,dive"`
}

type RegisterUserRequest struct {
	ID            string                `json:"id" validate:"required,max=64"`
	Name          string                `json:"name" validate:"required,max=200"`
	Email         string                `json:"email" validate:"omitempty,email"`
	Phone         string                `json:"phone" validate:"max=32"`
	Role          Role                  `json:"role" validate:"required,oneof=student teacher administrator staff"`
	Student       *StudentProfile       `json:"student"`
	Teacher       *TeacherProfile       `json:"teacher"`
	Staff         *StaffProfile         `json:"staff"`
	Administrator *AdministratorProfile `json:"administrator"`
}

type ExportResponse struct {
	Report   string `json:"report"`
	Filename string `json:"filename"`
	Rows     int    `json:"rows"`
	URL      string `json:"url"`
}
