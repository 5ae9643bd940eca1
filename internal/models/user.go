package models

import "time"

type Role string

const (
	RoleStudent       Role = "student"
	RoleTeacher       Role = "teacher"
	RoleAdministrator Role = "administrator"
	RoleStaff         Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdministrator, RoleStaff:
		return true
	}
	return false
}

type StudentProfile struct {
	ClassID   string `json:"class_id" yaml:"class_id"`
	CollegeID string `json:"college_id" yaml:"college_id"`
	Major     string `json:"major,omitempty" yaml:"major,omitempty"`
}

type TeacherProfile struct {
	CollegeID string `json:"college_id" yaml:"college_id"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
}

type StaffProfile struct {
	CollegeID  string `json:"college_id,omitempty" yaml:"college_id,omitempty"`
	Department string `json:"department,omitempty" yaml:"department,omitempty"`
}

type AdministratorProfile struct {
	Level int `json:"level,omitempty" yaml:"level,omitempty"`
}

// UserRecord is any account. Role selects which profile is populated; the
// others stay nil.
type UserRecord struct {
	ID        string    `gorm:"type:text;primary_key" json:"id" yaml:"id"`
	Name      string    `gorm:"type:text;not null" json:"name" yaml:"name"`
	Email     string    `gorm:"type:text" json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string    `gorm:"type:text" json:"phone,omitempty" yaml:"phone,omitempty"`
	Role      Role      `gorm:"type:text;not null;index" json:"role" yaml:"role"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at" yaml:"created_at"`

	Student       *StudentProfile       `gorm:"serializer:json" json:"student,omitempty" yaml:"student,omitempty"`
	Teacher       *TeacherProfile       `gorm:"serializer:json" json:"teacher,omitempty" yaml:"teacher,omitempty"`
	Staff         *StaffProfile         `gorm:"serializer:json" json:"staff,omitempty" yaml:"staff,omitempty"`
	Administrator *AdministratorProfile `gorm:"serializer:json" json:"administrator,omitempty" yaml:"administrator,omitempty"`
}

func (UserRecord) TableName() string {
	return "users"
}

// CollegeID returns the college of a student, teacher or staff member.
func (u *UserRecord) CollegeID() string {
	switch u.Role {
	case RoleStudent:
		if u.Student != nil {
			return u.Student.CollegeID
		}
	case RoleTeacher:
		if u.Teacher != nil {
			return u.Teacher.CollegeID
		}
	case RoleStaff:
		if u.Staff != nil {
			return u.Staff.CollegeID
		}
	}
	return ""
}
