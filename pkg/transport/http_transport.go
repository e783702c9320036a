package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPTransport talks to a remote tracker over HTTPS. It performs no
// internal retries; every failure surfaces as a TransportError and the
// caller decides whether to rerun the operation.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport rooted at baseURL. The timeout
// bounds each individual request; zero means no bound.
func NewHTTPTransport(baseURL string, timeout time.Duration) (*HTTPTransport, error) {
	parsed, e := url.Parse(baseURL)
	if e != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, NewTransportError("new", CodeValidationErr, baseURL, 0,
			fmt.Errorf("invalid base URL: %s", baseURL))
	}

	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Authenticate exchanges credentials for a session token. Bearer
// credentials are used as-is; OAuth credentials are exchanged through
// the remote's token endpoint. SSH keys have no meaning over HTTPS.
func (t *HTTPTransport) Authenticate(ctx context.Context, creds Credentials) (Token, error) {
	if e := creds.Validate(); e != nil {
		return "", e
	}

	switch creds.Kind {
	case CredentialBearer:
		return Token(creds.BearerToken), nil
	case CredentialOAuth:
		return t.refreshOAuth(ctx, creds)
	default:
		return "", NewTransportError("authenticate", CodeValidationErr, t.baseURL, 0,
			fmt.Errorf("credential kind %s is not supported over https", creds.Kind))
	}
}

// Get fetches the resource at path
func (t *HTTPTransport) Get(ctx context.Context, path string, token Token) ([]byte, error) {
	return t.roundTrip(ctx, http.MethodGet, path, nil, token)
}

// Post creates a resource at path
func (t *HTTPTransport) Post(ctx context.Context, path string, body []byte, token Token) ([]byte, error) {
	return t.roundTrip(ctx, http.MethodPost, path, body, token)
}

// Put replaces the resource at path
func (t *HTTPTransport) Put(ctx context.Context, path string, body []byte, token Token) ([]byte, error) {
	return t.roundTrip(ctx, http.MethodPut, path, body, token)
}

// Delete removes the resource at path
func (t *HTTPTransport) Delete(ctx context.Context, path string, token Token) error {
	_, e := t.roundTrip(ctx, http.MethodDelete, path, nil, token)
	return e
}

func (t *HTTPTransport) refreshOAuth(ctx context.Context, creds Credentials) (Token, error) {
	payload, e := json.Marshal(map[string]string{
		"grant_type":    "refresh_token",
		"client_id":     creds.ClientID,
		"refresh_token": creds.RefreshToken,
	})
	if e != nil {
		return "", NewTransportError("authenticate", CodeValidationErr, t.baseURL, 0, e)
	}

	body, e := t.roundTrip(ctx, http.MethodPost, "/auth/token", payload, "")
	if e != nil {
		return "", e
	}

	var response struct {
		AccessToken string `json:"access_token"`
	}
	if e := json.Unmarshal(body, &response); e != nil {
		return "", NewTransportError("authenticate", CodeTransportErr, t.baseURL, 0,
			fmt.Errorf("malformed token response: %w", e))
	}
	if response.AccessToken == "" {
		return "", NewTransportError("authenticate", CodeTransportErr, t.baseURL, 0,
			fmt.Errorf("token endpoint returned no access token"))
	}

	return Token(response.AccessToken), nil
}

func (t *HTTPTransport) roundTrip(ctx context.Context, method, path string, body []byte, token Token) ([]byte, error) {
	endpoint := t.baseURL + "/" + strings.TrimLeft(path, "/")

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	request, e := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if e != nil {
		return nil, NewTransportError(strings.ToLower(method), CodeValidationErr, endpoint, 0, e)
	}
	request.Header.Set("Content-Type", "application/json")
	if token.IsValid() {
		request.Header.Set("Authorization", "Bearer "+string(token))
	}

	response, e := t.client.Do(request)
	if e != nil {
		return nil, NewTransportError(strings.ToLower(method), CodeTransportErr, endpoint, 0, e)
	}
	defer response.Body.Close()

	payload, e := io.ReadAll(response.Body)
	if e != nil {
		return nil, NewTransportError(strings.ToLower(method), CodeTransportErr, endpoint, response.StatusCode, e)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, NewTransportError(strings.ToLower(method), CodeTransportErr, endpoint, response.StatusCode,
			fmt.Errorf("remote returned %s", response.Status))
	}

	return payload, nil
}
