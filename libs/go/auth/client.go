// Package auth implements the session-token flow against the profile service:
// nonce retrieval, wallet sign-in, and access-token caching with expiry.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// defaultTokenTTL is assumed when the access token carries no exp claim
	defaultTokenTTL = time.Hour
	// expiryMargin refreshes the token slightly before it actually expires
	expiryMargin = 30 * time.Second
	// maxSignInRetries bounds the exponential backoff on transient failures
	maxSignInRetries = 3
)

// MessageSigner signs the sign-in challenge with the wallet's key. Key
// material stays behind this interface; the client never sees it.
type MessageSigner interface {
	SignMessage(message string) (string, error)
}

// NonceResponse is the challenge returned by the profile service
type NonceResponse struct {
	Nonce string `json:"nonce"`
}

// SignInRequest is the wallet sign-in payload
type SignInRequest struct {
	Address   string `json:"address"`
	Nonce     string `json:"nonce"`
	Signature string `json:"signature"`
}

// SignInResponse carries the issued access token
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

type session struct {
	accessToken string
	expiresAt   time.Time
}

// Client orchestrates the sign-in request/response flow and caches the
// resulting access token until it expires.
type Client struct {
	baseURL    string
	address    string
	signer     MessageSigner
	httpClient *http.Client

	mu      sync.Mutex
	session *session
}

// ClientOption configures the auth client
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for requests
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates an auth client for the given wallet address
func NewClient(baseURL, address string, signer MessageSigner, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:    baseURL,
		address:    address,
		signer:     signer,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// GetAccessToken returns a valid access token, signing in again only when the
// cached one is missing or about to expire.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil && time.Until(c.session.expiresAt) > expiryMargin {
		return c.session.accessToken, nil
	}

	var resp *SignInResponse
	operation := func() error {
		var err error
		resp, err = c.signIn(ctx)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxSignInRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", errors.Wrap(err, "sign in failed")
	}

	c.session = &session{
		accessToken: resp.AccessToken,
		expiresAt:   tokenExpiry(resp.AccessToken),
	}
	return c.session.accessToken, nil
}

// InvalidateSession drops the cached token, forcing a fresh sign-in
func (c *Client) InvalidateSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

func (c *Client) signIn(ctx context.Context) (*SignInResponse, error) {
	nonce, err := c.fetchNonce(ctx)
	if err != nil {
		return nil, err
	}

	signature, err := c.signer.SignMessage(nonce)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "failed to sign nonce"))
	}

	body, err := json.Marshal(SignInRequest{
		Address:   c.address,
		Nonce:     nonce,
		Signature: signature,
	})
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/v2/login", body)
	if err != nil {
		return nil, err
	}

	var resp SignInResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.Wrap(err, "invalid sign in response")
	}
	if resp.AccessToken == "" {
		return nil, errors.New("sign in response missing access token")
	}
	return &resp, nil
}

func (c *Client) fetchNonce(ctx context.Context) (string, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/api/v2/nonce?address="+c.address, nil)
	if err != nil {
		return "", err
	}

	var resp NonceResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", errors.Wrap(err, "invalid nonce response")
	}
	return resp.Nonce, nil
}

// doRequest handles the common HTTP request/response logic for the profile
// service endpoints
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 500 {
		return nil, errors.Errorf("profile service error: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(errors.Errorf("profile service rejected request: status %d", resp.StatusCode))
	}

	return respBody, nil
}

// tokenExpiry reads the exp claim from the access token without verifying the
// signature; the token is opaque to us and verified by the issuing service.
func tokenExpiry(accessToken string) time.Time {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Now().Add(defaultTokenTTL)
	}
	return claims.ExpiresAt.Time
}
