package models

import "time"

// Application records a seeker applying to a job. The composite unique
// index is the duplicate-prevention invariant: concurrent applies race on
// the index, not on an application-level pre-check. Applications are never
// deleted (audit trail).
type Application struct {
	BaseModel
	JobID       string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant" json:"job_id"`
	ApplicantID string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant" json:"applicant_id"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	AppliedAt   time.Time         `gorm:"not null" json:"applied_at"`
	Notes       string            `json:"notes,omitempty"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Applicant *User `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}
