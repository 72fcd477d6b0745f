package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// GoogleConfig carries the OAuth client registration. The endpoint URLs
// default to Google's and are overridable in tests.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// GoogleProvider runs the authorization-code flow against Google.
type GoogleProvider struct {
	cfg GoogleConfig
}

func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	if cfg.AuthURL == "" {
		cfg.AuthURL = googleAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = googleTokenURL
	}
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = googleUserInfoURL
	}
	return &GoogleProvider{cfg: cfg}
}

// Enabled reports whether client credentials are present. The routes are
// registered either way; a disabled provider makes them answer 501.
func (p *GoogleProvider) Enabled() bool {
	if p == nil {
		return false
	}
	return p.cfg.ClientID != "" && p.cfg.ClientSecret != ""
}

// LoginURL builds the consent-screen URL carrying the given CSRF state.
func (p *GoogleProvider) LoginURL(state string) string {
	params := url.Values{
		"client_id":     {p.cfg.ClientID},
		"redirect_uri":  {p.cfg.RedirectURL},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"state":         {state},
		"access_type":   {"offline"},
	}
	return p.cfg.AuthURL + "?" + params.Encode()
}

// GoogleUser is the identity Google reports for an exchanged code.
type GoogleUser struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Exchange trades the authorization code for an access token and fetches
// the user's profile with it.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	token, err := p.exchangeToken(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange token: %w", err)
	}

	info, err := p.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}

	return &GoogleUser{
		ID:      info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

func (p *GoogleProvider) exchangeToken(ctx context.Context, code string) (*googleTokenResponse, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {p.cfg.ClientID},
		"client_secret": {p.cfg.ClientSecret},
		"redirect_uri":  {p.cfg.RedirectURL},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var token googleTokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("malformed token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token response carries no access token")
	}
	return &token, nil
}

func (p *GoogleProvider) fetchUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("malformed userinfo response: %w", err)
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("userinfo response carries no subject")
	}
	return &info, nil
}
