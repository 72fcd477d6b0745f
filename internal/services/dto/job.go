package dto

import "jobportal_backend/internal/models"

type CreateJobRequest struct {
	Title          string   `json:"title" validate:"required,min=3,max=200"`
	Description    string   `json:"description" validate:"required"`
	RequiredSkills []string `json:"required_skills"`
	JobType        string   `json:"job_type" validate:"required,oneof=full-time part-time contract internship"`
	WorkType       string   `json:"work_type" validate:"required,oneof=remote on-site hybrid"`
	JobLevel       string   `json:"job_level" validate:"required,oneof=entry mid senior executive"`
	CompanyName    string   `json:"company_name" validate:"required"`
	Location       string   `json:"location" validate:"required"`
	SalaryMin      *float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salary_max" validate:"omitempty,gte=0"`
	SalaryCurrency string   `json:"salary_currency" validate:"omitempty,len=3"`
}

// UpdateJobRequest uses pointers so absent fields are left untouched.
type UpdateJobRequest struct {
	Title          *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description    *string  `json:"description" validate:"omitempty"`
	RequiredSkills []string `json:"required_skills"`
	JobType        *string  `json:"job_type" validate:"omitempty,oneof=full-time part-time contract internship"`
	WorkType       *string  `json:"work_type" validate:"omitempty,oneof=remote on-site hybrid"`
	JobLevel       *string  `json:"job_level" validate:"omitempty,oneof=entry mid senior executive"`
	CompanyName    *string  `json:"company_name" validate:"omitempty"`
	Location       *string  `json:"location" validate:"omitempty"`
	SalaryMin      *float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salary_max" validate:"omitempty,gte=0"`
	SalaryCurrency *string  `json:"salary_currency" validate:"omitempty,len=3"`
	IsActive       *bool    `json:"is_active"`
}

// BrowseResult reports whether preference filtering was actually applied;
// Filtered is false when the seeker asked for everything, has no
// preferences, or the filtered set came back empty and the full list was
// returned instead.
type BrowseResult struct {
	Jobs     []models.Job `json:"jobs"`
	Filtered bool         `json:"filtered"`
}
