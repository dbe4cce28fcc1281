// internal/common/auth/keycloak.go
package auth

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"property-listings/internal/common/errors"
	"property-listings/internal/models"
)

var (
	ErrMissingToken = stderrors.New("missing bearer token")
	ErrInvalidToken = stderrors.New("token is not active")
)

// Authenticator verifies a bearer token and returns the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Principal, error)
}

// KeycloakClient validates access tokens with Keycloak's token introspection
// endpoint using the service's confidential client credentials.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// IntrospectionResponse holds the fields we read from the introspection
// endpoint.
type IntrospectionResponse struct {
	Active    bool   `json:"active"`
	Subject   string `json:"sub"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	ClientID  string `json:"client_id"`
	SessionID string `json:"sid"`
	ExpiresAt int64  `json:"exp"`
}

// NewKeycloakClient creates a new instance of KeycloakClient.
func NewKeycloakClient(baseURL, realm, clientID, clientSecret string, timeout time.Duration) *KeycloakClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Authenticate introspects token. An inactive or unknown token yields an
// AUTHENTICATION_ERROR; an unreachable identity provider yields a retryable
// internal error.
func (k *KeycloakClient) Authenticate(ctx context.Context, token string) (*models.Principal, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", ErrMissingToken, errors.NewAuthenticationError("no bearer token"))
	}

	introspectURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token/introspect", k.baseURL, k.realm)

	data := url.Values{}
	data.Set("token", token)
	data.Set("client_id", k.clientID)
	data.Set("client_secret", k.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, introspectURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, providerError("failed to create introspection request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, providerError("failed to send request to Keycloak", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, providerError("keycloak introspection failed",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var ir IntrospectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return nil, providerError("failed to decode introspection response", err)
	}

	if !ir.Active {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, errors.NewAuthenticationError("token inactive or expired"))
	}

	p := &models.Principal{
		Subject:   ir.Subject,
		Username:  ir.Username,
		Email:     ir.Email,
		ClientID:  ir.ClientID,
		SessionID: ir.SessionID,
	}
	if ir.ExpiresAt > 0 {
		p.ExpiresAt = time.Unix(ir.ExpiresAt, 0).UTC()
	}
	return p, nil
}

func providerError(msg string, err error) *errors.StandardError {
	se := errors.Normalize(fmt.Errorf("%s: %w", msg, err))
	se.Message = "Identity provider unavailable"
	se.Retryable = true
	return se
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
