package repositories

import (
	"errors"
	"strings"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByPhone(phone string) (*models.User, error)
	FindByGoogleID(googleID string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdatePassword(userID, passwordHash string) error
	// LinkGoogle attaches a Google identity to an existing account,
	// recording the profile photo when one is reported.
	LinkGoogle(userID, googleID, photo string) error
	UpdatePreferences(userID string, prefs models.Preferences) error
	UpdateResume(userID string, resume models.Resume) error

	// FindOrCreateByEmail returns the user for email, provisioning a
	// job_seeker with the given display name when none exists. The create
	// side effect is the documented contract of OTP login.
	FindOrCreateByEmail(email, name string, provider models.AuthProvider) (*models.User, bool, error)
	FindOrCreateByPhone(phone, name string, provider models.AuthProvider) (*models.User, bool, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", normalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByGoogleID(googleID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "google_id = ?", googleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	if user.Email != nil {
		e := normalizeEmail(*user.Email)
		user.Email = &e
	}
	err := r.db.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Model(user).Updates(map[string]interface{}{
		"name":          user.Name,
		"phone":         user.Phone,
		"company_name":  user.CompanyName,
		"profile_photo": user.ProfilePhoto,
		"is_active":     user.IsActive,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(userID, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) LinkGoogle(userID, googleID, photo string) error {
	updates := map[string]interface{}{
		"google_id":     googleID,
		"auth_provider": models.AuthProviderGoogle,
		"updated_at":    time.Now(),
	}
	if photo != "" {
		updates["profile_photo"] = photo
	}
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePreferences(userID string, prefs models.Preferences) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"preferences": datatypes.NewJSONType(prefs),
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateResume(userID string, resume models.Resume) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"resume":     datatypes.NewJSONType(resume),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindOrCreateByEmail(email, name string, provider models.AuthProvider) (*models.User, bool, error) {
	email = normalizeEmail(email)

	user, err := r.FindByEmail(email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	created := &models.User{
		Name:         name,
		Email:        &email,
		Role:         models.UserRoleSeeker,
		AuthProvider: provider,
		IsActive:     true,
	}
	if err := r.db.Create(created).Error; err != nil {
		// Lost a race against a concurrent first login; the row exists now.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			user, ferr := r.FindByEmail(email)
			return user, false, ferr
		}
		return nil, false, err
	}
	return created, true, nil
}

func (r *UserRepositoryImpl) FindOrCreateByPhone(phone, name string, provider models.AuthProvider) (*models.User, bool, error) {
	user, err := r.FindByPhone(phone)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	created := &models.User{
		Name:         name,
		Phone:        &phone,
		Role:         models.UserRoleSeeker,
		AuthProvider: provider,
		IsActive:     true,
	}
	if err := r.db.Create(created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			user, ferr := r.FindByPhone(phone)
			return user, false, ferr
		}
		return nil, false, err
	}
	return created, true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
