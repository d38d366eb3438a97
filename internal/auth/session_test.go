package auth

import (
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Endpoint(t *testing.T) {
	cfg := Config{
		Issuer:   "https://id.example.com/auth",
		Realm:    "cash-app",
		ClientID: "cli",
	}

	endpoint := cfg.Endpoint()
	assert.Equal(t, "https://id.example.com/auth/realms/cash-app/protocol/openid-connect/auth", endpoint.AuthURL)
	assert.Equal(t, "https://id.example.com/auth/realms/cash-app/protocol/openid-connect/token", endpoint.TokenURL)
}

func TestSaveLoadToken_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}
	require.NoError(t, SaveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestClearSession_MissingFileIsNotAnError(t *testing.T) {
	cfg := Config{TokenFile: filepath.Join(t.TempDir(), "session.json")}

	require.NoError(t, ClearSession(cfg))

	require.NoError(t, SaveToken(cfg.TokenFile, &oauth2.Token{AccessToken: "a"}))
	require.NoError(t, ClearSession(cfg))

	_, err := LoadToken(cfg.TokenFile)
	assert.Error(t, err)
}

func TestParseClaims(t *testing.T) {
	payload, err := json.Marshal(map[string]string{
		"sub":                "user-123",
		"preferred_username": "alice",
		"email":              "alice@example.com",
	})
	require.NoError(t, err)

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256"}`))
	body := base64.RawURLEncoding.EncodeToString(payload)
	token := header + "." + body + ".signature"

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "alice", claims.PreferredUsername)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseClaims_Malformed(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)

	_, err = ParseClaims("a.!!!.c")
	assert.Error(t, err)
}
