package models

import "time"

// MaxOTPAttempts caps failed verifications per code. Once reached the
// record is dead even if the correct code is presented afterwards.
const MaxOTPAttempts = 3

// OTP is a short-lived login code tied to exactly one contact channel
// (email or phone, never both). Requesting a new code purges any prior
// record for the same contact and purpose, so at most one record is live
// per contact at a time. Expiry is checked at read time; retention cleanup
// only reclaims storage.
type OTP struct {
	BaseModel
	Email     *string    `gorm:"index"`
	Phone     *string    `gorm:"index"`
	Code      string     `gorm:"size:6;not null"`
	Purpose   OTPPurpose `gorm:"type:varchar(20);default:'login';index"`
	ExpiresAt time.Time  `gorm:"not null"`
	Attempts  int        `gorm:"default:0"`
	IsUsed    bool       `gorm:"default:false"`
}

// PasswordReset is a single-use recovery token. One live record per email;
// a new request purges older ones.
type PasswordReset struct {
	BaseModel
	Email     string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	IsUsed    bool      `gorm:"default:false"`
}
