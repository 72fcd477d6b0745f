package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/models"
	"jobportal_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("register")
	result := helpers.RegisterUser(t, ts, "Alice", email, "password123", models.UserRoleSeeker, "")

	claims, err := auth.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, string(models.UserRoleSeeker), claims.Role)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	var login helpers.AuthResult
	require.NoError(t, json.Unmarshal([]byte(body), &login))
	assert.Equal(t, result.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("dup")
	helpers.RegisterUser(t, ts, "First", email, "password123", models.UserRoleSeeker, "")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Second",
		"email":    email,
		"password": "password123",
		"role":     models.UserRoleSeeker,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestRegisterWeakPassword(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Weak",
		"email":    helpers.UniqueEmail("weak"),
		"password": "12345",
		"role":     models.UserRoleSeeker,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestRegisterPosterRequiresCompanyName(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "No Company",
		"email":    helpers.UniqueEmail("nocompany"),
		"password": "password123",
		"role":     models.UserRolePoster,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("wrongpw")
	helpers.RegisterUser(t, ts, "Bob", email, "password123", models.UserRoleSeeker, "")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestEmailOTPLoginProvisionsUser(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("otplogin")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/send-email-otp", "",
		map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	code := helpers.LatestOTPCode(t, ts, email)
	require.Len(t, code, 6)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
		map[string]interface{}{"email": email, "otp": code})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var result helpers.AuthResult
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, string(models.UserRoleSeeker), result.User.Role)
	assert.Equal(t, email, result.User.Email)

	// Second login with the same contact reuses the account.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/send-email-otp", "",
		map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	code = helpers.LatestOTPCode(t, ts, email)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
		map[string]interface{}{"email": email, "otp": code})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var second helpers.AuthResult
	require.NoError(t, json.Unmarshal([]byte(body), &second))
	assert.Equal(t, result.User.ID, second.User.ID)
}

func TestEmailOTPIsSingleUse(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("singleuse")
	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/send-email-otp", "",
		map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	code := helpers.LatestOTPCode(t, ts, email)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
		map[string]interface{}{"email": email, "otp": code})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
		map[string]interface{}{"email": email, "otp": code})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestNewOTPInvalidatesPrevious(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("replace")
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/auth/send-email-otp", "",
		map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, res.StatusCode)
	firstCode := helpers.LatestOTPCode(t, ts, email)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/auth/send-email-otp", "",
		map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, res.StatusCode)
	secondCode := helpers.LatestOTPCode(t, ts, email)

	var count int64
	ts.DB.Model(&models.OTP{}).Where("email = ?", email).Count(&count)
	assert.Equal(t, int64(1), count, "only one OTP record should be live per contact")

	if firstCode != secondCode {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
			map[string]interface{}{"email": email, "otp": firstCode})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	}

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
		map[string]interface{}{"email": email, "otp": secondCode})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestOTPAttemptCapBeatsCorrectCode(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("attempts")
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/auth/send-email-otp", "",
		map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, res.StatusCode)
	code := helpers.LatestOTPCode(t, ts, email)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < models.MaxOTPAttempts; i++ {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
			map[string]interface{}{"email": email, "otp": wrong})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	}

	// The correct code no longer helps; the record is destroyed.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
		map[string]interface{}{"email": email, "otp": code})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	var count int64
	ts.DB.Model(&models.OTP{}).Where("email = ?", email).Count(&count)
	assert.Equal(t, int64(0), count, "an exhausted OTP record should be deleted")

	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
		map[string]interface{}{"email": email, "otp": code})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestExpiredOTPRejected(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("expired")
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/auth/send-email-otp", "",
		map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, res.StatusCode)
	code := helpers.LatestOTPCode(t, ts, email)

	err := ts.DB.Model(&models.OTP{}).Where("email = ?", email).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
		map[string]interface{}{"email": email, "otp": code})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestPhoneOTPLogin(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/send-phone-otp", "",
		map[string]interface{}{"phone": "98765 43210"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var otp models.OTP
	require.NoError(t, ts.DB.Where("phone = ?", "+919876543210").Order("created_at DESC").First(&otp).Error)

	// A differently formatted number normalizes to the same contact.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/verify-phone-otp", "",
		map[string]interface{}{"phone": "+91-98765-43210", "otp": otp.Code})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var result helpers.AuthResult
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, "User_3210", result.User.Name)
	assert.Equal(t, string(models.UserRoleSeeker), result.User.Role)
}

func TestPhoneOTPRejectsInvalidNumber(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/send-phone-otp", "",
		map[string]interface{}{"phone": "12345"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestPasswordResetFlow(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("reset")
	helpers.RegisterUser(t, ts, "Resetter", email, "oldpassword", models.UserRoleSeeker, "")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/forgot-password", "",
		map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	token := helpers.LatestResetToken(t, ts, email)
	require.Len(t, token, 64)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/reset-password", "", map[string]interface{}{
		"email":        email,
		"token":        token,
		"new_password": "newpassword",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "oldpassword",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "old password should stop working")

	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "newpassword",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	// The token is single use.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/auth/reset-password", "", map[string]interface{}{
		"email":        email,
		"token":        token,
		"new_password": "anotherpassword",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestPasswordResetDoesNotLeakAccounts(t *testing.T) {
	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/forgot-password", "",
		map[string]interface{}{"email": helpers.UniqueEmail("ghost")})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestPasswordLoginOnOTPAccount(t *testing.T) {
	ts := GetTestServer(t)

	email := helpers.UniqueEmail("passwordless")
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/auth/send-email-otp", "",
		map[string]interface{}{"email": email})
	require.Equal(t, http.StatusOK, res.StatusCode)
	code := helpers.LatestOTPCode(t, ts, email)
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email-otp", "",
		map[string]interface{}{"email": email, "otp": code})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "whatever123",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "OTP", "response should point at OTP login")
}

func TestMeRequiresAuth(t *testing.T) {
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	result := helpers.RegisterSeeker(t, ts)
	res, body := ts.SendRequest(t, http.MethodGet, "/api/auth/me", result.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var me struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &me))
	assert.Equal(t, result.User.ID, me.ID)
}

func TestGoogleOAuthNotConfigured(t *testing.T) {
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/auth/google", "", nil)
	assert.Equal(t, http.StatusNotImplemented, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/auth/google/callback?code=abc", "", nil)
	assert.Equal(t, http.StatusNotImplemented, res.StatusCode)
}
