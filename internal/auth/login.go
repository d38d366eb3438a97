package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const callbackAddr = "localhost:8399"

// LoginWithPassword exchanges user credentials for a session using the
// direct password grant, mirroring the login form of the web client. The
// token is saved to the configured session file.
func LoginWithPassword(ctx context.Context, cfg Config, username, password string) (*oauth2.Token, error) {
	token, err := cfg.oauthConfig("").PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := SaveToken(cfg.TokenFile, token); err != nil {
		return nil, err
	}

	slog.Info("Logged in", "session_file", cfg.TokenFile)
	return token, nil
}

// LoginInteractive performs the browser-based authorization code flow with
// a temporary localhost callback server. Used when the realm disallows the
// password grant or the user signs in through an external identity (e.g.
// Google).
func LoginInteractive(ctx context.Context, cfg Config) (*oauth2.Token, error) {
	redirectURL := "http://" + callbackAddr + "/callback"
	oauthConfig := cfg.oauthConfig(redirectURL)

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	codeChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			errorChan <- fmt.Errorf("state mismatch in callback")
			_, _ = fmt.Fprint(w, "<html><body><h1>Authentication failed</h1><p>State mismatch. Please try again.</p></body></html>")
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			errorChan <- fmt.Errorf("no authorization code received")
			_, _ = fmt.Fprint(w, "<html><body><h1>Authentication failed</h1><p>No authorization code received. Please try again.</p></body></html>")
			return
		}

		codeChan <- code
		_, _ = fmt.Fprint(w, "<html><body><h1>Authentication successful!</h1><p>You can close this window and return to the terminal.</p></body></html>")
	})

	server := &http.Server{Addr: callbackAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errorChan <- fmt.Errorf("failed to start callback server: %w", err)
		}
	}()

	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)

	slog.Info("Authentication required")
	slog.Info("Please visit this URL to sign in", "url", authURL)
	slog.Info("Waiting for authentication...")

	var authCode string
	select {
	case authCode = <-codeChan:
	case err := <-errorChan:
		_ = server.Shutdown(ctx)
		return nil, err
	case <-time.After(5 * time.Minute):
		_ = server.Shutdown(ctx)
		return nil, fmt.Errorf("authentication timeout - no response received within 5 minutes")
	case <-ctx.Done():
		_ = server.Shutdown(context.Background())
		return nil, ctx.Err()
	}

	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("Error shutting down callback server", "error", err)
	}

	token, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := SaveToken(cfg.TokenFile, token); err != nil {
		return nil, err
	}

	slog.Info("Logged in", "session_file", cfg.TokenFile)
	return token, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
