package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"jobportal_backend/internal/models"

	"github.com/stretchr/testify/require"
)

// AuthResult is the decoded body of a successful auth call.
type AuthResult struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// UniqueEmail returns an address that cannot collide across tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.local", prefix, time.Now().UnixNano())
}

// RegisterUser registers through the API and returns the session token and
// user ID.
func RegisterUser(t *testing.T, ts *TestServer, name, email, password string, role models.UserRole, companyName string) AuthResult {
	body := map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}
	if companyName != "" {
		body["company_name"] = companyName
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "registration should succeed, got: "+bodyStr)

	var result AuthResult
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	require.NotEmpty(t, result.Token)
	require.NotEmpty(t, result.User.ID)
	return result
}

// RegisterSeeker registers a job seeker with a unique email.
func RegisterSeeker(t *testing.T, ts *TestServer) AuthResult {
	return RegisterUser(t, ts, "Test Seeker", UniqueEmail("seeker"), "password123", models.UserRoleSeeker, "")
}

// RegisterPoster registers a job poster with a unique email.
func RegisterPoster(t *testing.T, ts *TestServer) AuthResult {
	return RegisterUser(t, ts, "Test Poster", UniqueEmail("poster"), "password123", models.UserRolePoster, "Test Company Inc.")
}

// JobOverrides tweaks the default posting used by CreateJob.
type JobOverrides struct {
	Title    string
	WorkType string
	JobLevel string
	Location string
}

// CreateJob posts a job through the API and returns its ID.
func CreateJob(t *testing.T, ts *TestServer, posterToken string, o JobOverrides) string {
	body := map[string]interface{}{
		"title":        "Backend Engineer",
		"description":  "Build and run services.",
		"job_type":     models.JobTypeFullTime,
		"work_type":    models.WorkTypeRemote,
		"job_level":    models.JobLevelMid,
		"company_name": "Test Company Inc.",
		"location":     "Bangalore",
	}
	if o.Title != "" {
		body["title"] = o.Title
	}
	if o.WorkType != "" {
		body["work_type"] = o.WorkType
	}
	if o.JobLevel != "" {
		body["job_level"] = o.JobLevel
	}
	if o.Location != "" {
		body["location"] = o.Location
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/jobs", posterToken, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "job creation should succeed, got: "+bodyStr)

	var job struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &job))
	require.NotEmpty(t, job.ID)
	return job.ID
}

// ApplyToJob applies through the API and returns the application ID.
func ApplyToJob(t *testing.T, ts *TestServer, seekerToken, jobID string) string {
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/applications/"+jobID+"/apply", seekerToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, "apply should succeed, got: "+bodyStr)

	var application struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &application))
	require.NotEmpty(t, application.ID)
	return application.ID
}

// LatestOTPCode reads the live code for the contact straight from the
// database, standing in for the mailbox or phone.
func LatestOTPCode(t *testing.T, ts *TestServer, email string) string {
	var otp models.OTP
	err := ts.DB.Where("email = ?", email).Order("created_at DESC").First(&otp).Error
	require.NoError(t, err, "an OTP record should exist for "+email)
	return otp.Code
}

// LatestResetToken reads the live reset token for the email from the
// database.
func LatestResetToken(t *testing.T, ts *TestServer, email string) string {
	var reset models.PasswordReset
	err := ts.DB.Where("email = ?", email).Order("created_at DESC").First(&reset).Error
	require.NoError(t, err, "a reset record should exist for "+email)
	return reset.Token
}
