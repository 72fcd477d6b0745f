package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"required,oneof=job_seeker job_poster"`

	// Required for posters only; enforced in the service.
	CompanyName string `json:"company_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EmailOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyEmailOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type PhoneOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type VerifyPhoneOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// AuthResponse carries the session token plus the user it authenticates.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	Role         models.UserRole     `json:"role"`
	AuthProvider models.AuthProvider `json:"auth_provider"`
	CompanyName  string              `json:"company_name,omitempty"`
	ProfilePhoto string              `json:"profile_photo,omitempty"`
	Preferences  models.Preferences  `json:"preferences"`
	Resume       models.Resume       `json:"resume"`
	CreatedAt    time.Time           `json:"created_at"`
}

func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.EmailOrEmpty(),
		Phone:        user.PhoneOrEmpty(),
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
		CompanyName:  user.CompanyName,
		ProfilePhoto: user.ProfilePhoto,
		Preferences:  user.Preferences.Data(),
		Resume:       user.Resume.Data(),
		CreatedAt:    user.CreatedAt,
	}
}
