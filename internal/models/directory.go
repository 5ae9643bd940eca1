package models

// College, Course, Class and Offering are the dimensions evaluation records
// are joined with for statistics.

type College struct {
	ID   string `gorm:"type:text;primary_key" json:"id" yaml:"id"`
	Name string `gorm:"type:text;not null" json:"name" yaml:"name"`
}

func (College) TableName() string { return "colleges" }

type Course struct {
	ID         string `gorm:"type:text;primary_key" json:"id" yaml:"id"`
	Name       string `gorm:"type:text;not null" json:"name" yaml:"name"`
	CourseType string `gorm:"type:text;not null;index" json:"course_type" yaml:"course_type"`
	CollegeID  string `gorm:"type:text;index" json:"college_id" yaml:"college_id"`
}

func (Course) TableName() string { return "courses" }

type Class struct {
	ID        string `gorm:"type:text;primary_key" json:"id" yaml:"id"`
	Name      string `gorm:"type:text;not null" json:"name" yaml:"name"`
	CollegeID string `gorm:"type:text;index" json:"college_id" yaml:"college_id"`
}

func (Class) TableName() string { return "classes" }

// Offering is one (course, teacher, class, semester) instance that students
// can evaluate.
type Offering struct {
	ID        string `gorm:"type:text;primary_key" json:"id" yaml:"id"`
	CourseID  string `gorm:"type:text;not null;index" json:"course_id" yaml:"course_id"`
	TeacherID string `gorm:"type:text;not null;index" json:"teacher_id" yaml:"teacher_id"`
	ClassID   string `gorm:"type:text;not null;index" json:"class_id" yaml:"class_id"`
	Semester  string `gorm:"type:text;not null;index" json:"semester" yaml:"semester"`
}

func (Offering) TableName() string { return "offerings" }
