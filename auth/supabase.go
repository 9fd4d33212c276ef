package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

const (
	defaultAudience    = "authenticated"
	defaultHTTPTimeout = 15 * time.Second
)

// SupabaseProvider talks to the GoTrue REST API of a Supabase project and
// verifies access tokens locally with the project's JWT secret.
type SupabaseProvider struct {
	baseURL    string
	anonKey    string
	jwtSecret  []byte
	audience   string
	httpClient *http.Client
	now        func() time.Time
}

type SupabaseConfig struct {
	URL       string
	AnonKey   string
	JWTSecret string
	Audience  string
}

func NewSupabaseProvider(cfg SupabaseConfig, httpClient *http.Client) *SupabaseProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	audience := cfg.Audience
	if audience == "" {
		audience = defaultAudience
	}
	return &SupabaseProvider{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		jwtSecret:  []byte(cfg.JWTSecret),
		audience:   audience,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// tokenResponse is the body of a successful password grant
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// errorResponse covers the error shapes GoTrue returns
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e errorResponse) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Claims are the access token claims the guard relies on
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (p *SupabaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign-in payload: %w", err)
	}

	resp, body, err := p.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", payload)
	if err != nil {
		return nil, errs.NewExternalServiceError("auth", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp errorResponse
		_ = json.Unmarshal(body, &errorResp)
		message := errorResp.text()
		if message == "" {
			message = fmt.Sprintf("auth API error (status %d)", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return nil, errs.NewInvalidLoginError(message)
		}
		return nil, errs.NewExternalServiceError("auth", errors.New(message))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, errs.NewExternalServiceError("auth", fmt.Errorf("failed to parse token response: %w", err))
	}

	session, err := p.SessionFromToken(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}
	session.RefreshToken = token.RefreshToken
	if session.Email == "" {
		session.Email = token.User.Email
	}
	return session, nil
}

func (p *SupabaseProvider) SessionFromToken(_ context.Context, accessToken string) (*Session, error) {
	if accessToken == "" {
		return nil, errs.NewMissingTokenError()
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		return p.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(p.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, errs.NewExpiredTokenError()
	}
	if err != nil {
		return nil, errs.NewInvalidTokenError(err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errs.NewInvalidTokenError(fmt.Errorf("subject is not a user id: %w", err))
	}

	return &Session{
		AccessToken: accessToken,
		ExpiresAt:   claims.ExpiresAt.Time,
		UserID:      userID,
		Email:       claims.Email,
	}, nil
}

func (p *SupabaseProvider) SignOut(ctx context.Context, accessToken string) error {
	resp, body, err := p.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil)
	if err != nil {
		return errs.NewExternalServiceError("auth", err)
	}
	// a token the server no longer knows is already signed out
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK ||
		resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound {
		return nil
	}
	log.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("Supabase sign-out failed")
	return errs.NewExternalServiceError("auth", fmt.Errorf("sign-out returned status %d", resp.StatusCode))
}

func (p *SupabaseProvider) do(ctx context.Context, method, path, bearer string, payload []byte) (*http.Response, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create auth API request: %w", err)
	}
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request to auth API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read auth API response: %w", err)
	}
	return resp, body, nil
}
