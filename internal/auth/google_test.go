package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleProviderEnabled(t *testing.T) {
	var nilProvider *GoogleProvider
	assert.False(t, nilProvider.Enabled())

	assert.False(t, NewGoogleProvider(GoogleConfig{ClientID: "id"}).Enabled())
	assert.False(t, NewGoogleProvider(GoogleConfig{ClientSecret: "secret"}).Enabled())
	assert.True(t, NewGoogleProvider(GoogleConfig{ClientID: "id", ClientSecret: "secret"}).Enabled())
}

func TestGoogleLoginURL(t *testing.T) {
	p := NewGoogleProvider(GoogleConfig{
		ClientID:     "client-123",
		ClientSecret: "secret",
		RedirectURL:  "https://api.example.com/api/auth/google/callback",
	})

	raw := p.LoginURL("state-abc")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", u.Host)
	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "https://api.example.com/api/auth/google/callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "state-abc", q.Get("state"))
}

func TestGoogleExchange(t *testing.T) {
	var gotGrantType, gotCode, gotAuthz string

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotGrantType = r.PostFormValue("grant_type")
		gotCode = r.PostFormValue("code")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-42","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		gotAuthz = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"g-sub-1","email":"jane@example.com","name":"Jane Doe","picture":"https://img.example.com/jane.png"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewGoogleProvider(GoogleConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
	})

	user, err := p.Exchange(context.Background(), "auth-code")
	require.NoError(t, err)

	assert.Equal(t, "authorization_code", gotGrantType)
	assert.Equal(t, "auth-code", gotCode)
	assert.Equal(t, "Bearer at-42", gotAuthz)

	assert.Equal(t, "g-sub-1", user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, "https://img.example.com/jane.png", user.Picture)
}

func TestGoogleExchangeRejectedCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	p := NewGoogleProvider(GoogleConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
	})

	_, err := p.Exchange(context.Background(), "stale-code")
	assert.Error(t, err)
}
