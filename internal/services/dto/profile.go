package dto

type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone        *string `json:"phone" validate:"omitempty"`
	CompanyName  *string `json:"company_name" validate:"omitempty,max=200"`
	ProfilePhoto *string `json:"profile_photo" validate:"omitempty,url"`
}

type UpdatePreferencesRequest struct {
	JobRoles           []string `json:"job_roles" validate:"omitempty,dive,min=1"`
	JobType            string   `json:"job_type" validate:"omitempty,oneof=remote on-site hybrid"`
	JobLevel           string   `json:"job_level" validate:"omitempty,oneof=entry mid senior executive"`
	PreferredLocations []string `json:"preferred_locations" validate:"omitempty,dive,min=1"`
	Skills             []string `json:"skills" validate:"omitempty,dive,min=1"`
}

type UpdateResumeRequest struct {
	Filename string `json:"filename" validate:"required"`
	Path     string `json:"path" validate:"required"`
}
