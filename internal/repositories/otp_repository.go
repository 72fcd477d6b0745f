package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOTPNotFound = errors.New("otp not found")

// OTPRepository persists login codes. Exactly one of email/phone is set on
// every call; the service layer guarantees that.
type OTPRepository interface {
	// Purge removes every record for the contact and purpose, consumed or
	// not. Called before issuing a new code so at most one record is live.
	Purge(email, phone *string, purpose models.OTPPurpose) error
	Create(otp *models.OTP) error
	// FindActive returns the unexpired, unused record for the contact.
	FindActive(email, phone *string, purpose models.OTPPurpose) (*models.OTP, error)
	// IncrementAttempts bumps the counter atomically in the store, not via
	// read-modify-write, so concurrent wrong guesses cannot undercount.
	IncrementAttempts(id string) error
	MarkUsed(id string) error
	Delete(id string) error
	// DeleteExpired reclaims records past the retention window. Correctness
	// never depends on it; expiry is enforced at read time.
	DeleteExpired(retention time.Duration) error
}

type OTPRepositoryImpl struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

func contactQuery(q *gorm.DB, email, phone *string) *gorm.DB {
	if email != nil {
		return q.Where("email = ?", *email)
	}
	return q.Where("phone = ?", *phone)
}

func (r *OTPRepositoryImpl) Purge(email, phone *string, purpose models.OTPPurpose) error {
	q := r.db.Where("purpose = ?", purpose)
	return contactQuery(q, email, phone).Delete(&models.OTP{}).Error
}

func (r *OTPRepositoryImpl) Create(otp *models.OTP) error {
	return r.db.Create(otp).Error
}

func (r *OTPRepositoryImpl) FindActive(email, phone *string, purpose models.OTPPurpose) (*models.OTP, error) {
	var otp models.OTP
	q := r.db.Where("purpose = ? AND is_used = ? AND expires_at > ?", purpose, false, time.Now())
	err := contactQuery(q, email, phone).First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepositoryImpl) IncrementAttempts(id string) error {
	result := r.db.Model(&models.OTP{}).Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOTPNotFound
	}
	return nil
}

func (r *OTPRepositoryImpl) MarkUsed(id string) error {
	result := r.db.Model(&models.OTP{}).Where("id = ?", id).Update("is_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOTPNotFound
	}
	return nil
}

func (r *OTPRepositoryImpl) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.OTP{}).Error
}

func (r *OTPRepositoryImpl) DeleteExpired(retention time.Duration) error {
	cutoff := time.Now().Add(-retention)
	return r.db.Where("created_at < ?", cutoff).Delete(&models.OTP{}).Error
}
