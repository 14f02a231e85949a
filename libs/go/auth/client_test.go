package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cyphera/multichain-auth/libs/go/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSigner struct {
	signature string
	err       error
}

func (s *staticSigner) SignMessage(message string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.signature + ":" + message, nil
}

func issueToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

type authServer struct {
	token        string
	nonceCalls   int
	loginCalls   int
	failuresLeft int
}

func (s *authServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/nonce", func(w http.ResponseWriter, r *http.Request) {
		s.nonceCalls++
		json.NewEncoder(w).Encode(auth.NonceResponse{Nonce: "nonce-123"})
	})
	mux.HandleFunc("/api/v2/login", func(w http.ResponseWriter, r *http.Request) {
		s.loginCalls++
		if s.failuresLeft > 0 {
			s.failuresLeft--
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		var req auth.SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Signature == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(auth.SignInResponse{AccessToken: s.token})
	})
	return mux
}

func TestClient_GetAccessTokenCachesUntilExpiry(t *testing.T) {
	backend := &authServer{token: issueToken(t, time.Hour)}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	client := auth.NewClient(server.URL, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", &staticSigner{signature: "sig"})

	token, err := client.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backend.token, token)
	assert.Equal(t, 1, backend.loginCalls)

	// Cached token is reused without another round trip
	again, err := client.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, token, again)
	assert.Equal(t, 1, backend.loginCalls)
}

func TestClient_GetAccessTokenRefreshesExpiredToken(t *testing.T) {
	backend := &authServer{token: issueToken(t, time.Second)}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	client := auth.NewClient(server.URL, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", &staticSigner{signature: "sig"})

	_, err := client.GetAccessToken(context.Background())
	require.NoError(t, err)

	// A token expiring within the refresh margin triggers a new sign in
	backend.token = issueToken(t, time.Hour)
	token, err := client.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backend.token, token)
	assert.Equal(t, 2, backend.loginCalls)
}

func TestClient_GetAccessTokenRetriesTransientFailures(t *testing.T) {
	backend := &authServer{token: issueToken(t, time.Hour), failuresLeft: 2}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	client := auth.NewClient(server.URL, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", &staticSigner{signature: "sig"})

	token, err := client.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backend.token, token)
	assert.Equal(t, 3, backend.loginCalls)
}

func TestClient_GetAccessTokenDoesNotRetryRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := auth.NewClient(server.URL, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", &staticSigner{signature: "sig"})

	_, err := client.GetAccessToken(context.Background())
	require.Error(t, err)
}

func TestClient_InvalidateSessionForcesSignIn(t *testing.T) {
	backend := &authServer{token: issueToken(t, time.Hour)}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	client := auth.NewClient(server.URL, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", &staticSigner{signature: "sig"})

	_, err := client.GetAccessToken(context.Background())
	require.NoError(t, err)

	client.InvalidateSession()
	_, err = client.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, backend.loginCalls)
}
