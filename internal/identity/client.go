// Package identity wraps the external identity provider's REST API.
// The provider owns sessions, token formats and confirmation emails;
// this client only performs the calls the claim workflow needs and
// treats everything else as opaque.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"
)

//go:generate mockery --name Provider --output ./mocks --outpkg mocks --case=underscore
type Provider interface {
	// ExchangeCode trades an authorization code from the auth redirect for a session.
	ExchangeCode(ctx context.Context, code string) (*model.Session, error)
	// GetUser fetches the identity behind an access token.
	GetUser(ctx context.Context, accessToken string) (*model.Identity, error)
	// ResendConfirmation asks the provider to re-send the sign-up confirmation email.
	ResendConfirmation(ctx context.Context, email string) error
	// SignOut revokes the session behind an access token.
	SignOut(ctx context.Context, accessToken string) error
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// wireUser is the provider's user representation. Email confirmation is
// reported as a timestamp; absence means unconfirmed.
type wireUser struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt *string        `json:"email_confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

func (u *wireUser) toIdentity() *model.Identity {
	return &model.Identity{
		ID:             u.ID,
		Email:          u.Email,
		EmailConfirmed: u.EmailConfirmedAt != nil && *u.EmailConfirmedAt != "",
		Metadata:       u.UserMetadata,
	}
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (*model.Session, error) {
	logger := middleware.GetLogger(ctx)

	payload, err := json.Marshal(map[string]string{"auth_code": code})
	if err != nil {
		return nil, fmt.Errorf("identity: encoding exchange payload: %w", err)
	}

	resp, err := c.post(ctx, "/token?grant_type=pkce", "", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Code exchange rejected by provider", "status", resp.StatusCode)
		return nil, model.NewAppError("AUTH_EXCHANGE_FAILED", "Could not complete sign-in.", "", model.ErrUnauthorized)
	}

	var session model.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("identity: decoding session: %w", err)
	}
	if session.AccessToken == "" {
		return nil, model.NewAppError("AUTH_EXCHANGE_FAILED", "Could not complete sign-in.", "", model.ErrUnauthorized)
	}
	return &session, nil
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (*model.Identity, error) {
	logger := middleware.GetLogger(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("identity: creating user request: %w", err)
	}
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: calling /user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("User fetch rejected by provider", "status", resp.StatusCode)
		return nil, model.NewAppError("AUTH_USER_FETCH_FAILED", "Could not load the signed-in user.", "", model.ErrUnauthorized)
	}

	var user wireUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("identity: decoding user: %w", err)
	}
	if user.ID == "" {
		return nil, model.NewAppError("AUTH_USER_FETCH_FAILED", "Could not load the signed-in user.", "", model.ErrUnauthorized)
	}
	return user.toIdentity(), nil
}

func (c *Client) ResendConfirmation(ctx context.Context, email string) error {
	logger := middleware.GetLogger(ctx)

	payload, err := json.Marshal(map[string]string{"type": "signup", "email": email})
	if err != nil {
		return fmt.Errorf("identity: encoding resend payload: %w", err)
	}

	resp, err := c.post(ctx, "/resend", "", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Warn("Resend confirmation rejected by provider", "status", resp.StatusCode)
		return model.NewAppError("RESEND_FAILED", "Could not send the confirmation email.", "", model.ErrInternalServer)
	}
	return nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	resp, err := c.post(ctx, "/logout", accessToken, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return model.NewAppError("SIGNOUT_FAILED", "Could not sign out.", "", model.ErrInternalServer)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path, accessToken string, payload []byte) (*http.Response, error) {
	var body *bytes.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("identity: creating request for %s: %w", path, err)
	}
	c.setHeaders(req, accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: calling %s: %w", path, err)
	}
	return resp, nil
}

func (c *Client) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", c.apiKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}
