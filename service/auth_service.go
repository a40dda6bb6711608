package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rajalakshmi-growphil/zoho-crm-integration/config"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/logger"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/model"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/repository"
)

var (
	// ErrMissingCode is returned when the provider redirected back without
	// an authorization code.
	ErrMissingCode = errors.New("authorization code not found")
	// ErrAuthRequired is returned when no refresh token has been stored yet.
	// The user has to go through /auth before API calls can be made.
	ErrAuthRequired = errors.New("no refresh token found, please authenticate via /auth first")
)

// authScope is the fixed permission set requested from Zoho. prompt=consent
// forces the consent screen on every run so a refresh token is always issued.
const authScope = "ZohoCRM.modules.ALL,ZohoCRM.settings.modules.READ,ZohoCRM.settings.fields.READ"

// TokenExchangeError means the provider rejected a refresh-token exchange or
// returned a payload without the expected fields.
type TokenExchangeError struct {
	Reason string
}

func (e *TokenExchangeError) Error() string {
	return e.Reason
}

// IncompleteTokenResponseError carries the raw provider payload of an
// authorization-code exchange that came back without all three of
// refresh_token, access_token and api_domain.
type IncompleteTokenResponseError struct {
	Response json.RawMessage
}

func (e *IncompleteTokenResponseError) Error() string {
	return "missing refresh_token, access_token or api_domain in auth response"
}

// TransportError wraps a network-level failure talking to the provider.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach provider: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthService implements the OAuth2 authorization flow and token refresh
// against the Zoho accounts server.
type AuthService struct {
	cfg    *config.Config
	store  repository.ITokenStore
	client *http.Client
}

func NewAuthService(cfg *config.Config, store repository.ITokenStore, client *http.Client) *AuthService {
	return &AuthService{
		cfg:    cfg,
		store:  store,
		client: client,
	}
}

// BuildAuthorizationURL constructs the consent URL the user must visit to
// grant access. The URL is returned percent-decoded for readability.
func (s *AuthService) BuildAuthorizationURL() string {
	params := url.Values{}
	params.Set("scope", authScope)
	params.Set("client_id", s.cfg.Zoho.ClientID)
	params.Set("response_type", "code")
	params.Set("access_type", "offline")
	params.Set("redirect_uri", s.cfg.Zoho.RedirectURI)
	params.Set("prompt", "consent")

	authURL := s.cfg.Zoho.AccountsURL + "/oauth/v2/auth?" + params.Encode()
	readable, err := url.QueryUnescape(authURL)
	if err != nil {
		return authURL
	}
	return readable
}

// HandleCallback exchanges the authorization code for an initial token set
// and persists it. The raw provider payload is returned so the handler can
// echo it back to the caller.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (json.RawMessage, error) {
	if code == "" {
		return nil, ErrMissingCode
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", s.cfg.Zoho.ClientID)
	form.Set("client_secret", s.cfg.Zoho.ClientSecret)
	form.Set("redirect_uri", s.cfg.Zoho.RedirectURI)
	form.Set("code", code)

	raw, parsed, err := s.exchange(ctx, form)
	if err != nil {
		return nil, err
	}

	if parsed.RefreshToken == "" || parsed.AccessToken == "" || parsed.APIDomain == "" {
		return raw, &IncompleteTokenResponseError{Response: raw}
	}

	record := &model.TokenRecord{
		RefreshToken: parsed.RefreshToken,
		AccessToken:  parsed.AccessToken,
		APIDomain:    parsed.APIDomain,
	}
	if err := s.store.Save(record); err != nil {
		return raw, err
	}

	logger.Log.WithField("api_domain", parsed.APIDomain).Info("Tokens fetched and saved successfully")
	return raw, nil
}

// Refresh exchanges the stored refresh token for a new access token. Only
// AccessToken and APIDomain are rewritten; the refresh token survives every
// refresh untouched. Returns the new access token.
func (s *AuthService) Refresh(ctx context.Context) (string, error) {
	record, err := s.store.Load()
	if err != nil {
		return "", err
	}
	if record.RefreshToken == "" {
		return "", ErrAuthRequired
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", s.cfg.Zoho.ClientID)
	form.Set("client_secret", s.cfg.Zoho.ClientSecret)
	form.Set("refresh_token", record.RefreshToken)

	_, parsed, err := s.exchange(ctx, form)
	if err != nil {
		return "", err
	}

	if parsed.AccessToken == "" || parsed.APIDomain == "" {
		reason := parsed.Error
		if reason == "" {
			reason = "failed to refresh access token"
		}
		logger.Log.WithField("reason", reason).Warn("Access token refresh rejected by provider")
		return "", &TokenExchangeError{Reason: reason}
	}

	if _, err := s.store.Update(func(r *model.TokenRecord) error {
		r.AccessToken = parsed.AccessToken
		r.APIDomain = parsed.APIDomain
		return nil
	}); err != nil {
		return "", err
	}

	return parsed.AccessToken, nil
}

func (s *AuthService) exchange(ctx context.Context, form url.Values) (json.RawMessage, *model.TokenResponse, error) {
	tokenURL := s.cfg.Zoho.AccountsURL + "/oauth/v2/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, fmt.Errorf("could not build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Err: err}
	}

	parsed := &model.TokenResponse{}
	if err := json.Unmarshal(body, parsed); err != nil {
		return nil, nil, &TokenExchangeError{Reason: "unexpected response from token endpoint"}
	}
	return body, parsed, nil
}
