// Package auth manages the OIDC session with the identity provider.
//
// The session is an explicit dependency: commands obtain a TokenSource here
// and hand it to the API client, so nothing below the command layer reaches
// for ambient authentication state.
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"github.com/storksoft/cashtrack/internal/common"
)

// Config identifies the realm and client against the identity provider.
type Config struct {
	Issuer    string
	Realm     string
	ClientID  string
	TokenFile string
}

// Endpoint returns the OAuth2 endpoints for the configured realm.
func (c Config) Endpoint() oauth2.Endpoint {
	base := fmt.Sprintf("%s/realms/%s/protocol/openid-connect", c.Issuer, c.Realm)
	return oauth2.Endpoint{
		AuthURL:  base + "/auth",
		TokenURL: base + "/token",
	}
}

func (c Config) oauthConfig(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    c.ClientID,
		Endpoint:    c.Endpoint(),
		RedirectURL: redirectURL,
		Scopes:      []string{"openid", "profile", "email"},
	}
}

// TokenSource returns a token source backed by the saved session. Tokens
// are refreshed on demand and refreshed tokens are written back to the
// session file so the next invocation picks them up.
func TokenSource(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	token, err := LoadToken(cfg.TokenFile)
	if err != nil {
		return nil, common.ErrNoSession
	}

	src := cfg.oauthConfig("").TokenSource(ctx, token)

	return &persistingTokenSource{
		src:  oauth2.ReuseTokenSource(token, src),
		file: cfg.TokenFile,
		last: token.AccessToken,
	}, nil
}

// persistingTokenSource writes refreshed tokens back to the session file.
type persistingTokenSource struct {
	src  oauth2.TokenSource
	file string
	last string
	mu   sync.Mutex
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSessionExpired, err)
	}

	if token.AccessToken != s.last {
		if saveErr := SaveToken(s.file, token); saveErr != nil {
			return nil, fmt.Errorf("failed to persist refreshed session: %w", saveErr)
		}
		s.last = token.AccessToken
	}

	return token, nil
}

// LoadToken loads a saved session token.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)
	return token, err
}

// SaveToken writes a session token to disk, readable by the owner only.
func SaveToken(path string, token *oauth2.Token) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return nil
}

// ClearSession removes the saved session file. Removing a session that does
// not exist is not an error.
func ClearSession(cfg Config) error {
	if err := os.Remove(cfg.TokenFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Claims are the identity claims the CLI cares about, read from the access
// token without signature verification (display only; the backend verifies).
type Claims struct {
	Subject           string `json:"sub"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
}

// ParseClaims extracts display claims from a JWT access token.
func ParseClaims(accessToken string) (*Claims, error) {
	parts := strings.Split(accessToken, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed access token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse token claims: %w", err)
	}

	return &claims, nil
}
