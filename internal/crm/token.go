package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const defaultAccountsURL = "https://accounts.zoho.com/oauth/v2/token"

// expirySlack is shaved off the advertised lifetime so a token is never
// handed out moments before the API would reject it.
const expirySlack = 2 * time.Minute

// Credentials for the Zoho OAuth refresh-token grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Configured reports whether all three OAuth fields are present.
func (c Credentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// TokenSource owns the process-wide access token: a single in-memory cell
// behind a mutex, lazily fetched and refreshed when the advertised
// lifetime runs out.
type TokenSource struct {
	creds       Credentials
	accountsURL string
	client      *http.Client
	now         func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func NewTokenSource(creds Credentials) *TokenSource {
	return &TokenSource{
		creds:       creds,
		accountsURL: defaultAccountsURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		now:         time.Now,
	}
}

// WithAccountsURL points the source at a different OAuth endpoint.
func (ts *TokenSource) WithAccountsURL(u string) *TokenSource {
	ts.accountsURL = u
	return ts
}

// WithClock overrides the source's clock.
func (ts *TokenSource) WithClock(now func() time.Time) *TokenSource {
	ts.now = now
	return ts
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

// Token returns a valid access token, fetching or refreshing as needed.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	if !ts.creds.Configured() {
		return "", fmt.Errorf("zoho credentials not configured")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.now().Before(ts.expiry) {
		return ts.token, nil
	}

	q := url.Values{}
	q.Set("refresh_token", ts.creds.RefreshToken)
	q.Set("client_id", ts.creds.ClientID)
	q.Set("client_secret", ts.creds.ClientSecret)
	q.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.accountsURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh zoho token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zoho token endpoint (%d): %s", resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.Error != "" {
		return "", fmt.Errorf("zoho token endpoint: %s", tr.Error)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("zoho token endpoint returned no access token")
	}

	lifetime := time.Duration(tr.ExpiresIn) * time.Second
	if lifetime <= expirySlack {
		lifetime = time.Hour
	}
	ts.token = tr.AccessToken
	ts.expiry = ts.now().Add(lifetime - expirySlack)
	return ts.token, nil
}
