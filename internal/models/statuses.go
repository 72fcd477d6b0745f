package models

type UserRole string
type AuthProvider string
type ApplicationStatus string
type OTPPurpose string

const (
	UserRoleSeeker UserRole = "job_seeker"
	UserRolePoster UserRole = "job_poster"

	AuthProviderLocal    AuthProvider = "local"
	AuthProviderEmailOTP AuthProvider = "email_otp"
	AuthProviderPhoneOTP AuthProvider = "phone_otp"
	AuthProviderGoogle   AuthProvider = "google"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	OTPPurposeLogin OTPPurpose = "login"
)

// ValidApplicationStatus reports whether s is one of the defined statuses.
// Any valid status may be set from any other; there is no adjacency rule.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"

	WorkTypeRemote = "remote"
	WorkTypeOnSite = "on-site"
	WorkTypeHybrid = "hybrid"

	JobLevelEntry     = "entry"
	JobLevelMid       = "mid"
	JobLevelSenior    = "senior"
	JobLevelExecutive = "executive"
)
