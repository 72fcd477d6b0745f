package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("DATABASE_URL", "test")
	os.Setenv("JWT_SECRET", "unit_test_secret")
	config.LoadConfig()
	os.Exit(m.Run())
}

type googleIdentity struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// fakeGoogle serves the token and userinfo endpoints the provider talks to,
// always answering with the given identity.
func fakeGoogle(t *testing.T, identity googleIdentity) *auth.GoogleProvider {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-test","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(identity)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return auth.NewGoogleProvider(auth.GoogleConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
	})
}

func newGoogleAuthService(t *testing.T, provider *auth.GoogleProvider) (AuthService, repositories.UserRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.OTP{}, &models.PasswordReset{}))

	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	notifier := email.NewNotifier(email.NewLogProvider(), "http://localhost:5173")

	return NewAuthService(userRepo, otpRepo, resetRepo, notifier, provider), userRepo
}

func TestLoginWithGoogleProvisionsSeeker(t *testing.T) {
	provider := fakeGoogle(t, googleIdentity{
		Sub:     "g-sub-new",
		Email:   "fresh@example.com",
		Name:    "Fresh Person",
		Picture: "https://img.example.com/fresh.png",
	})
	svc, userRepo := newGoogleAuthService(t, provider)

	resp, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.UserRoleSeeker, resp.User.Role)
	assert.Equal(t, models.AuthProviderGoogle, resp.User.AuthProvider)
	assert.Equal(t, "fresh@example.com", resp.User.Email)

	user, err := userRepo.FindByGoogleID("g-sub-new")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, "https://img.example.com/fresh.png", user.ProfilePhoto)
}

func TestLoginWithGoogleLinksExistingEmailAccount(t *testing.T) {
	provider := fakeGoogle(t, googleIdentity{
		Sub:     "g-sub-link",
		Email:   "linked@example.com",
		Name:    "Linked Person",
		Picture: "https://img.example.com/linked.png",
	})
	svc, userRepo := newGoogleAuthService(t, provider)

	emailAddr := "linked@example.com"
	existing := &models.User{
		Name:         "Already Here",
		Email:        &emailAddr,
		PasswordHash: "hash",
		AuthProvider: models.AuthProviderLocal,
		Role:         models.UserRoleSeeker,
		IsActive:     true,
	}
	require.NoError(t, userRepo.Create(existing))

	resp, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	require.NoError(t, err)

	// Same account, now carrying the Google identity.
	assert.Equal(t, existing.ID, resp.User.ID)

	user, err := userRepo.FindByGoogleID("g-sub-link")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, models.AuthProviderGoogle, user.AuthProvider)
	assert.Equal(t, "https://img.example.com/linked.png", user.ProfilePhoto)

	// A second sign-in resolves by google_id without creating anything.
	again, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, again.User.ID)
}

func TestLoginWithGoogleNotConfigured(t *testing.T) {
	svc, _ := newGoogleAuthService(t, auth.NewGoogleProvider(auth.GoogleConfig{}))

	_, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	assert.ErrorIs(t, err, apperrors.ErrOAuthNotConfigured)

	_, err = svc.GoogleLoginURL("state")
	assert.ErrorIs(t, err, apperrors.ErrOAuthNotConfigured)
}
