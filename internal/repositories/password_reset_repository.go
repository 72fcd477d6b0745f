package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrResetNotFound = errors.New("password reset record not found")

type PasswordResetRepository interface {
	// Purge removes all records for the email; a new request replaces any
	// outstanding token.
	Purge(email string) error
	Create(reset *models.PasswordReset) error
	// FindValid returns the unused, unexpired record matching both email
	// and token exactly.
	FindValid(email, token string) (*models.PasswordReset, error)
	MarkUsed(id string) error
	DeleteExpired() error
}

type PasswordResetRepositoryImpl struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &PasswordResetRepositoryImpl{db: db}
}

func (r *PasswordResetRepositoryImpl) Purge(email string) error {
	return r.db.Where("email = ?", email).Delete(&models.PasswordReset{}).Error
}

func (r *PasswordResetRepositoryImpl) Create(reset *models.PasswordReset) error {
	return r.db.Create(reset).Error
}

func (r *PasswordResetRepositoryImpl) FindValid(email, token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.Where(
		"email = ? AND token = ? AND is_used = ? AND expires_at > ?",
		email, token, false, time.Now(),
	).First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetNotFound
		}
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepositoryImpl) MarkUsed(id string) error {
	result := r.db.Model(&models.PasswordReset{}).Where("id = ?", id).Update("is_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResetNotFound
	}
	return nil
}

func (r *PasswordResetRepositoryImpl) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.PasswordReset{}).Error
}
