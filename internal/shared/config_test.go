package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.URL != "http://localhost:8000" {
			t.Errorf("expected api url http://localhost:8000, got %s", config.API.URL)
		}
		if config.Loading.Interval() != 2*time.Second {
			t.Errorf("expected 2s loading interval, got %v", config.Loading.Interval())
		}
		if config.Poster.Theme != "SunsetBeach" {
			t.Errorf("expected SunsetBeach theme, got %s", config.Poster.Theme)
		}
		if config.Poster.PixelRatio != 3 {
			t.Errorf("expected pixel ratio 3, got %d", config.Poster.PixelRatio)
		}
		if config.Database.Path != "./tidalfest.db" {
			t.Errorf("expected database path ./tidalfest.db, got %s", config.Database.Path)
		}
		if config.Server.Addr() != "127.0.0.1:3000" {
			t.Errorf("expected server addr 127.0.0.1:3000, got %s", config.Server.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[api]
url = "https://fest.example.com"
timeout_seconds = 5

[poster]
theme = "DesertDawn"
pixel_ratio = 2

[server]
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.URL != "https://fest.example.com" {
			t.Errorf("expected api url https://fest.example.com, got %s", config.API.URL)
		}
		if config.API.Timeout() != 5*time.Second {
			t.Errorf("expected 5s timeout, got %v", config.API.Timeout())
		}
		if config.Poster.Theme != "DesertDawn" {
			t.Errorf("expected DesertDawn theme, got %s", config.Poster.Theme)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
		if config.Server.Host != "127.0.0.1" {
			t.Errorf("expected default host to survive partial file, got %s", config.Server.Host)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api\nurl = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("SaveConfig Round Trip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.API.URL = "https://saved.example.com"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}
		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.API.URL != "https://saved.example.com" {
			t.Errorf("expected saved api url, got %s", loaded.API.URL)
		}
	})
}

func TestConfigEnv(t *testing.T) {
	t.Run("ApplyEnv Overrides URL", func(t *testing.T) {
		t.Setenv(APIURLEnv, "https://env.example.com")
		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.URL != "https://env.example.com" {
			t.Errorf("expected env url, got %s", config.API.URL)
		}
	})

	t.Run("LoadEnv Reads Dotenv File", func(t *testing.T) {
		t.Setenv(APIURLEnv, "")
		os.Unsetenv(APIURLEnv)

		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte(APIURLEnv+"=https://dotenv.example.com\n"), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		if err := LoadEnv(envPath, filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := os.Getenv(APIURLEnv); got != "https://dotenv.example.com" {
			t.Errorf("expected dotenv value, got %q", got)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tc := []struct {
		name    string
		url     string
		ratio   int
		wantErr bool
	}{
		{name: "valid", url: "https://fest.example.com", ratio: 3},
		{name: "empty url", url: "", ratio: 3, wantErr: true},
		{name: "relative url", url: "/api", ratio: 3, wantErr: true},
		{name: "zero pixel ratio", url: "https://fest.example.com", ratio: 0, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.API.URL = tt.url
			config.Poster.PixelRatio = tt.ratio

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
