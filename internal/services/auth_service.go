package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"
)

const (
	// OTPExpiry bounds how long a code is accepted after issue.
	OTPExpiry = 5 * time.Minute
	// OTPRetention is how long consumed or expired records stay around
	// before cleanup removes them.
	OTPRetention = 15 * time.Minute
	// ResetTokenExpiry bounds the password reset window.
	ResetTokenExpiry = time.Hour
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)

	RequestEmailOTP(emailAddr string) error
	VerifyEmailOTP(req *dto.VerifyEmailOTPRequest) (*dto.AuthResponse, error)
	RequestPhoneOTP(phone string) error
	VerifyPhoneOTP(req *dto.VerifyPhoneOTPRequest) (*dto.AuthResponse, error)

	RequestPasswordReset(emailAddr string) error
	ResetPassword(req *dto.PasswordResetConfirm) error

	// GoogleLoginURL returns the consent-screen URL for the given state,
	// or ErrOAuthNotConfigured when no client credentials are set.
	GoogleLoginURL(state string) (string, error)
	LoginWithGoogle(ctx context.Context, code string) (*dto.AuthResponse, error)

	Me(userID string) (*dto.UserDTO, error)

	// CleanupExpired reclaims stale OTP and reset records. Expiry is
	// enforced at read time, so this only bounds table growth.
	CleanupExpired() error
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	otpRepo   repositories.OTPRepository
	resetRepo repositories.PasswordResetRepository
	notifier  *email.Notifier
	google    *auth.GoogleProvider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	otpRepo repositories.OTPRepository,
	resetRepo repositories.PasswordResetRepository,
	notifier *email.Notifier,
	google *auth.GoogleProvider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		otpRepo:   otpRepo,
		resetRepo: resetRepo,
		notifier:  notifier,
		google:    google,
	}
}

func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if req.Role == models.UserRolePoster && strings.TrimSpace(req.CompanyName) == "" {
		return nil, apperrors.NewBadRequestError("Company name is required for job posters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	user := &models.User{
		Name:         req.Name,
		Email:        &emailAddr,
		PasswordHash: hash,
		AuthProvider: models.AuthProviderLocal,
		Role:         req.Role,
		CompanyName:  req.CompanyName,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.notifier.SendWelcome(emailAddr, user.Name)

	return s.buildAuthResponse(user)
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.HasPassword() {
		return nil, apperrors.ErrPasswordlessAccount
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *AuthServiceImpl) RequestEmailOTP(emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	code, err := s.issueOTP(&emailAddr, nil)
	if err != nil {
		return err
	}

	s.notifier.SendOTP(emailAddr, code, int(OTPExpiry.Minutes()))
	return nil
}

func (s *AuthServiceImpl) VerifyEmailOTP(req *dto.VerifyEmailOTPRequest) (*dto.AuthResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.consumeOTP(&emailAddr, nil, req.OTP); err != nil {
		return nil, err
	}

	user, created, err := s.userRepo.FindOrCreateByEmail(
		emailAddr, nameFromEmail(emailAddr), models.AuthProviderEmailOTP)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if created {
		s.notifier.SendWelcome(emailAddr, user.Name)
	}

	return s.buildAuthResponse(user)
}

func (s *AuthServiceImpl) RequestPhoneOTP(phone string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	code, err := s.issueOTP(nil, &normalized)
	if err != nil {
		return err
	}

	// No SMS gateway is wired up yet; the code lands in the log so the
	// flow is exercisable end to end.
	logger.Info("phone otp issued", "phone", normalized, "code", code)
	return nil
}

func (s *AuthServiceImpl) VerifyPhoneOTP(req *dto.VerifyPhoneOTPRequest) (*dto.AuthResponse, error) {
	normalized, err := NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.consumeOTP(nil, &normalized, req.OTP); err != nil {
		return nil, err
	}

	user, _, err := s.userRepo.FindOrCreateByPhone(
		normalized, nameFromPhone(normalized), models.AuthProviderPhoneOTP)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user)
}

// issueOTP replaces any outstanding code for the contact with a fresh one,
// so exactly one record is ever live per contact.
func (s *AuthServiceImpl) issueOTP(emailAddr, phone *string) (string, error) {
	if err := s.otpRepo.Purge(emailAddr, phone, models.OTPPurposeLogin); err != nil {
		return "", apperrors.InternalError(err)
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	otp := &models.OTP{
		Email:     emailAddr,
		Phone:     phone,
		Code:      code,
		Purpose:   models.OTPPurposeLogin,
		ExpiresAt: time.Now().Add(OTPExpiry),
	}
	if err := s.otpRepo.Create(otp); err != nil {
		return "", apperrors.InternalError(err)
	}
	return code, nil
}

// consumeOTP enforces the verification rules in order: an exhausted record
// is destroyed before the code is even compared, so the attempt cap wins
// over a correct code. A wrong code bumps the counter and leaves the
// record for the next try.
func (s *AuthServiceImpl) consumeOTP(emailAddr, phone *string, code string) error {
	otp, err := s.otpRepo.FindActive(emailAddr, phone, models.OTPPurposeLogin)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOTPNotFound) {
			return apperrors.ErrOTPNotFound
		}
		return apperrors.InternalError(err)
	}

	if otp.Attempts >= models.MaxOTPAttempts {
		if err := s.otpRepo.Delete(otp.ID); err != nil {
			return apperrors.InternalError(err)
		}
		return apperrors.ErrTooManyOTPAttempts
	}

	if otp.Code != code {
		if err := s.otpRepo.IncrementAttempts(otp.ID); err != nil {
			return apperrors.InternalError(err)
		}
		return apperrors.ErrInvalidOTP
	}

	if err := s.otpRepo.MarkUsed(otp.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) RequestPasswordReset(emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Same response as the success path so the endpoint does not
			// reveal which emails are registered.
			return nil
		}
		return apperrors.InternalError(err)
	}

	if err := s.resetRepo.Purge(emailAddr); err != nil {
		return apperrors.InternalError(err)
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	reset := &models.PasswordReset{
		Email:     emailAddr,
		Token:     token,
		ExpiresAt: time.Now().Add(ResetTokenExpiry),
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifier.SendPasswordReset(emailAddr, user.Name, token)
	return nil
}

func (s *AuthServiceImpl) ResetPassword(req *dto.PasswordResetConfirm) error {
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	reset, err := s.resetRepo.FindValid(emailAddr, req.Token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Mark before writing the password so a re-submitted token fails even
	// if the password update errors out.
	if err := s.resetRepo.MarkUsed(reset.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) GoogleLoginURL(state string) (string, error) {
	if !s.google.Enabled() {
		return "", apperrors.ErrOAuthNotConfigured
	}
	return s.google.LoginURL(state), nil
}

func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (*dto.AuthResponse, error) {
	if !s.google.Enabled() {
		return nil, apperrors.ErrOAuthNotConfigured
	}
	if code == "" {
		return nil, apperrors.NewBadRequestError("Missing authorization code")
	}

	info, err := s.google.Exchange(ctx, code)
	if err != nil {
		logger.Warn("google code exchange failed", "error", err)
		return nil, apperrors.NewUnauthorizedError("Google sign-in failed")
	}

	user, err := s.resolveGoogleUser(info)
	if err != nil {
		return nil, err
	}
	return s.buildAuthResponse(user)
}

// resolveGoogleUser maps the Google identity onto a local account: by
// google_id first, then by email (attaching the google_id to the existing
// account), and finally by provisioning a fresh job_seeker.
func (s *AuthServiceImpl) resolveGoogleUser(info *auth.GoogleUser) (*models.User, error) {
	user, err := s.userRepo.FindByGoogleID(info.ID)
	if err == nil {
		return user, nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	emailAddr := strings.ToLower(strings.TrimSpace(info.Email))
	if emailAddr != "" {
		user, err = s.userRepo.FindByEmail(emailAddr)
		if err == nil {
			if err := s.userRepo.LinkGoogle(user.ID, info.ID, info.Picture); err != nil {
				return nil, apperrors.InternalError(err)
			}
			googleID := info.ID
			user.GoogleID = &googleID
			if info.Picture != "" {
				user.ProfilePhoto = info.Picture
			}
			return user, nil
		}
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}

	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = nameFromEmail(emailAddr)
	}
	if name == "" {
		name = "User"
	}
	googleID := info.ID
	created := &models.User{
		Name:         name,
		GoogleID:     &googleID,
		AuthProvider: models.AuthProviderGoogle,
		Role:         models.UserRoleSeeker,
		ProfilePhoto: info.Picture,
		IsActive:     true,
	}
	if emailAddr != "" {
		created.Email = &emailAddr
	}

	if err := s.userRepo.Create(created); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			// Lost a race against a concurrent first sign-in.
			user, ferr := s.userRepo.FindByGoogleID(googleID)
			if ferr != nil {
				return nil, apperrors.InternalError(ferr)
			}
			return user, nil
		}
		return nil, apperrors.InternalError(err)
	}

	if created.EmailOrEmpty() != "" {
		s.notifier.SendWelcome(created.EmailOrEmpty(), created.Name)
	}
	return created, nil
}

func (s *AuthServiceImpl) Me(userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	u := dto.NewUserDTO(user)
	return &u, nil
}

func (s *AuthServiceImpl) CleanupExpired() error {
	if err := s.otpRepo.DeleteExpired(OTPRetention); err != nil {
		return err
	}
	return s.resetRepo.DeleteExpired()
}

func (s *AuthServiceImpl) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserDTO(user),
	}, nil
}

var (
	phoneDigitsRe = regexp.MustCompile(`\D`)
	phoneLocalRe  = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// NormalizePhone reduces the input to digits and returns the number in
// +91XXXXXXXXXX form. Accepts a bare 10-digit mobile number or one already
// carrying the country code.
func NormalizePhone(phone string) (string, error) {
	digits := phoneDigitsRe.ReplaceAllString(phone, "")

	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if !phoneLocalRe.MatchString(digits) {
		return "", apperrors.NewBadRequestError("Invalid phone number. Provide a valid 10-digit mobile number.")
	}
	return "+91" + digits, nil
}

// nameFromEmail derives a display name for auto-provisioned accounts.
func nameFromEmail(emailAddr string) string {
	if at := strings.Index(emailAddr, "@"); at > 0 {
		return emailAddr[:at]
	}
	return emailAddr
}

func nameFromPhone(phone string) string {
	if len(phone) < 4 {
		return "User"
	}
	return fmt.Sprintf("User_%s", phone[len(phone)-4:])
}
