package models

import "gorm.io/datatypes"

// Job is a posting owned by a job_poster. PostedBy is immutable after
// creation; only the owner may update or delete. Jobs marshal straight
// into API responses, hence the json tags.
type Job struct {
	BaseModel
	Title          string                      `gorm:"not null" json:"title"`
	Description    string                      `gorm:"not null" json:"description"`
	RequiredSkills datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"required_skills"`
	JobType        string                      `gorm:"type:varchar(20);not null" json:"job_type"`
	WorkType       string                      `gorm:"type:varchar(20);not null" json:"work_type"`
	JobLevel       string                      `gorm:"type:varchar(20);not null" json:"job_level"`
	CompanyName    string                      `gorm:"not null" json:"company_name"`
	Location       string                      `gorm:"not null" json:"location"`
	SalaryMin      *float64                    `json:"salary_min,omitempty"`
	SalaryMax      *float64                    `json:"salary_max,omitempty"`
	SalaryCurrency string                      `gorm:"size:10;default:'USD'" json:"salary_currency"`
	PostedBy       string                      `gorm:"type:uuid;not null;index" json:"posted_by"`
	IsActive       bool                        `gorm:"default:true" json:"is_active"`

	Poster       *User         `gorm:"foreignKey:PostedBy" json:"poster,omitempty"`
	Applications []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}
