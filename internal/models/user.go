package models

import (
	"time"

	"gorm.io/datatypes"
)

// Preferences drives the seeker's filtered job browse. JobType holds a
// work arrangement (remote, on-site, hybrid); the name is what the mobile
// client sends.
type Preferences struct {
	JobRoles           []string `json:"job_roles,omitempty"`
	JobType            string   `json:"job_type,omitempty"`
	JobLevel           string   `json:"job_level,omitempty"`
	PreferredLocations []string `json:"preferred_locations,omitempty"`
	Skills             []string `json:"skills,omitempty"`
}

func (p Preferences) Empty() bool {
	return len(p.JobRoles) == 0 && p.JobType == "" && p.JobLevel == "" &&
		len(p.PreferredLocations) == 0 && len(p.Skills) == 0
}

type Resume struct {
	Filename   string     `json:"filename,omitempty"`
	Path       string     `json:"path,omitempty"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
}

// User is an identity record. At least one of Email/Phone is set;
// PasswordHash only when AuthProvider is "local". Users are never
// hard-deleted, deactivation flips IsActive.
type User struct {
	BaseModel
	Name         string                          `gorm:"not null" json:"name"`
	Email        *string                         `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone        *string                         `gorm:"uniqueIndex" json:"phone,omitempty"`
	PasswordHash string                          `json:"-"`
	AuthProvider AuthProvider                    `gorm:"type:varchar(20);default:'email_otp'" json:"auth_provider"`
	GoogleID     *string                         `gorm:"uniqueIndex" json:"-"`
	Role         UserRole                        `gorm:"type:varchar(20);not null" json:"role"`
	CompanyName  string                          `json:"company_name,omitempty"`
	ProfilePhoto string                          `json:"profile_photo,omitempty"`
	Preferences  datatypes.JSONType[Preferences] `gorm:"type:jsonb" json:"preferences"`
	Resume       datatypes.JSONType[Resume]      `gorm:"type:jsonb" json:"resume"`
	IsActive     bool                            `gorm:"default:true" json:"is_active"`
}

// HasPassword reports whether password login is possible for this account.
// OTP- and OAuth-provisioned users have no hash until they set one via reset.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// EmailOrEmpty flattens the sparse column for views and notifications.
func (u *User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

func (u *User) PhoneOrEmpty() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}
