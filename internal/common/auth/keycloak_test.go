package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-listings/internal/common/errors"
)

func newIntrospectionServer(t *testing.T, handler http.HandlerFunc) *KeycloakClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewKeycloakClient(srv.URL+"/", "listings", "property-listings-api", "s3cret", time.Second)
}

func TestAuthenticate_ActiveToken(t *testing.T) {
	client := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/realms/listings/protocol/openid-connect/token/introspect", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "good-token", r.PostForm.Get("token"))
		assert.Equal(t, "property-listings-api", r.PostForm.Get("client_id"))
		assert.Equal(t, "s3cret", r.PostForm.Get("client_secret"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"active":   true,
			"sub":      "user-1",
			"username": "agent.smith",
			"sid":      "sess-9",
			"exp":      1735689600,
		})
	})

	p, err := client.Authenticate(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.Subject)
	assert.Equal(t, "agent.smith", p.Username)
	assert.Equal(t, "sess-9", p.SessionID)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.ExpiresAt)
}

func TestAuthenticate_InactiveToken(t *testing.T) {
	client := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"active":false}`))
	})

	_, err := client.Authenticate(context.Background(), "expired")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, http.StatusUnauthorized, errors.HTTPStatus(errors.Normalize(err).Code))
}

func TestAuthenticate_MissingToken(t *testing.T) {
	client := NewKeycloakClient("http://127.0.0.1:1", "listings", "id", "secret", time.Second)

	_, err := client.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Equal(t, errors.ErrCodeAuthentication, errors.Normalize(err).Code)
}

func TestAuthenticate_ProviderFailure(t *testing.T) {
	client := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "realm unavailable", http.StatusServiceUnavailable)
	})

	_, err := client.Authenticate(context.Background(), "any")
	require.Error(t, err)
	se := errors.Normalize(err)
	assert.Equal(t, errors.ErrCodeInternal, se.Code)
	assert.True(t, se.Retryable)
	assert.Contains(t, se.Details, "status 503")
}

func TestAuthenticate_MalformedResponse(t *testing.T) {
	client := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"active":`))
	})

	_, err := client.Authenticate(context.Background(), "any")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.Normalize(err).Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
	assert.Equal(t, "", BearerToken("Bearer"))
}
