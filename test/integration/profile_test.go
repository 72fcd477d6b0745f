package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"jobportal_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Preferences struct {
		JobRoles           []string `json:"job_roles"`
		JobType            string   `json:"job_type"`
		PreferredLocations []string `json:"preferred_locations"`
		Skills             []string `json:"skills"`
	} `json:"preferences"`
	Resume struct {
		Filename string `json:"filename"`
		Path     string `json:"path"`
	} `json:"resume"`
}

func getProfile(t *testing.T, ts *helpers.TestServer, token string) profileResponse {
	res, body := ts.SendRequest(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var profile profileResponse
	require.NoError(t, json.Unmarshal([]byte(body), &profile))
	return profile
}

func TestProfileUpdate(t *testing.T) {
	ts := GetTestServer(t)
	seeker := helpers.RegisterSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/users/profile", seeker.Token, map[string]interface{}{
		"name":  "Renamed Seeker",
		"phone": "98123 45678",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	profile := getProfile(t, ts, seeker.Token)
	assert.Equal(t, "Renamed Seeker", profile.Name)
	assert.Equal(t, "+919812345678", profile.Phone, "phone should be stored normalized")
}

func TestProfileUpdateRejectsBadPhone(t *testing.T) {
	ts := GetTestServer(t)
	seeker := helpers.RegisterSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/users/profile", seeker.Token, map[string]interface{}{
		"phone": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestPreferencesRoundTrip(t *testing.T) {
	ts := GetTestServer(t)
	seeker := helpers.RegisterSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/users/preferences", seeker.Token, map[string]interface{}{
		"job_roles":           []string{"backend", "platform"},
		"job_type":            "remote",
		"preferred_locations": []string{"Bangalore"},
		"skills":              []string{"go", "postgres"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	profile := getProfile(t, ts, seeker.Token)
	assert.Equal(t, []string{"backend", "platform"}, profile.Preferences.JobRoles)
	assert.Equal(t, "remote", profile.Preferences.JobType)
	assert.Equal(t, []string{"Bangalore"}, profile.Preferences.PreferredLocations)
	assert.Equal(t, []string{"go", "postgres"}, profile.Preferences.Skills)
}

func TestPreferencesPartialUpdateKeepsOtherFields(t *testing.T) {
	ts := GetTestServer(t)
	seeker := helpers.RegisterSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/users/preferences", seeker.Token, map[string]interface{}{
		"job_type":            "remote",
		"preferred_locations": []string{"Bangalore"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Changing one field must not wipe the rest.
	res, body = ts.SendRequest(t, http.MethodPut, "/api/users/preferences", seeker.Token, map[string]interface{}{
		"job_type": "hybrid",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	profile := getProfile(t, ts, seeker.Token)
	assert.Equal(t, "hybrid", profile.Preferences.JobType)
	assert.Equal(t, []string{"Bangalore"}, profile.Preferences.PreferredLocations)

	// An explicit empty list clears the field.
	res, body = ts.SendRequest(t, http.MethodPut, "/api/users/preferences", seeker.Token, map[string]interface{}{
		"preferred_locations": []string{},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	profile = getProfile(t, ts, seeker.Token)
	assert.Equal(t, "hybrid", profile.Preferences.JobType)
	assert.Empty(t, profile.Preferences.PreferredLocations)
}

func TestPreferencesSeekerOnly(t *testing.T) {
	ts := GetTestServer(t)
	poster := helpers.RegisterPoster(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/users/preferences", poster.Token, map[string]interface{}{
		"job_type": "remote",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}

func TestPreferencesValidation(t *testing.T) {
	ts := GetTestServer(t)
	seeker := helpers.RegisterSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/users/preferences", seeker.Token, map[string]interface{}{
		"job_type": "teleportation",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestResumeUpdate(t *testing.T) {
	ts := GetTestServer(t)
	seeker := helpers.RegisterSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/users/resume", seeker.Token, map[string]interface{}{
		"filename": "resume.pdf",
		"path":     "/uploads/resumes/resume.pdf",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	profile := getProfile(t, ts, seeker.Token)
	assert.Equal(t, "resume.pdf", profile.Resume.Filename)
	assert.Equal(t, "/uploads/resumes/resume.pdf", profile.Resume.Path)
}

func TestProfileRequiresAuth(t *testing.T) {
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
