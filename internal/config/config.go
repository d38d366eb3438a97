// Package config provides typed access to the client's configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/storksoft/cashtrack/internal/common"
)

// API holds the backend connection settings.
type API struct {
	BaseURL string
}

// Auth holds the identity-provider settings. The issuer must be configured;
// realm, client id, and token file fall back to sensible defaults.
type Auth struct {
	Issuer    string
	Realm     string
	ClientID  string
	TokenFile string
}

// Sheets holds the Google credentials used by report export.
type Sheets struct {
	ClientID        string
	ClientSecret    string
	TokenFile       string
	SpreadsheetID   string
	SpreadsheetName string
}

// LoadAPI reads the backend settings from viper.
func LoadAPI() (API, error) {
	baseURL := strings.TrimRight(viper.GetString("api.base_url"), "/")
	if baseURL == "" {
		return API{}, fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	return API{BaseURL: baseURL}, nil
}

// LoadAuth reads the identity-provider settings from viper.
func LoadAuth() (Auth, error) {
	auth := Auth{
		Issuer:    strings.TrimRight(viper.GetString("auth.issuer"), "/"),
		Realm:     viper.GetString("auth.realm"),
		ClientID:  viper.GetString("auth.client_id"),
		TokenFile: ExpandPath(viper.GetString("auth.token_file")),
	}

	if auth.Issuer == "" {
		return Auth{}, fmt.Errorf("%w: auth.issuer", common.ErrMissingConfig)
	}
	if auth.Realm == "" {
		auth.Realm = "cash-app"
	}
	if auth.ClientID == "" {
		auth.ClientID = "cli"
	}
	if auth.TokenFile == "" {
		path, err := DataFilePath("session.json")
		if err != nil {
			return Auth{}, err
		}
		auth.TokenFile = path
	}

	return auth, nil
}

// LoadCachePath resolves the local reference-cache database path.
func LoadCachePath() (string, error) {
	if path := ExpandPath(viper.GetString("cache.path")); path != "" {
		return path, nil
	}
	return DataFilePath("cache.db")
}

// LoadSheets reads the Google Sheets export settings from viper.
func LoadSheets() (Sheets, error) {
	cfg := Sheets{
		ClientID:        viper.GetString("sheets.client_id"),
		ClientSecret:    viper.GetString("sheets.client_secret"),
		TokenFile:       ExpandPath(viper.GetString("sheets.token_file")),
		SpreadsheetID:   viper.GetString("sheets.spreadsheet_id"),
		SpreadsheetName: viper.GetString("sheets.spreadsheet_name"),
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return Sheets{}, fmt.Errorf("%w: sheets.client_id and sheets.client_secret", common.ErrMissingConfig)
	}
	if cfg.TokenFile == "" {
		path, err := DataFilePath("sheets_token.json")
		if err != nil {
			return Sheets{}, err
		}
		cfg.TokenFile = path
	}
	if cfg.SpreadsheetName == "" {
		cfg.SpreadsheetName = "Cashtrack Operations"
	}

	return cfg, nil
}

// DataFilePath returns a path under the application's XDG data directory,
// creating the directory if needed.
func DataFilePath(name string) (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "cashtrack")
	if err := os.MkdirAll(appDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return filepath.Join(appDir, name), nil
}

// ExpandPath expands a leading ~ and any environment variables in a path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	} else if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
