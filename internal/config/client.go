package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// NotSetLabel is what the app shows in place of an unconfigured backend URL.
const NotSetLabel = "(not set)"

// Client is the configuration of the airide CLI.
type Client struct {
	// BackendURL is the backend origin without the /api suffix. Empty means
	// not configured; calls then fail instead of guessing a host.
	BackendURL string
	StorePath  string
	LogPath    string
	Timeout    time.Duration
}

// BackendLabel returns the backend URL for display, or NotSetLabel.
func (c Client) BackendLabel() string {
	if c.BackendURL == "" {
		return NotSetLabel
	}
	return c.BackendURL
}

// NewClientViper returns a viper instance with the client defaults and env
// bindings. The CLI binds its flags on top of it.
func NewClientViper() *viper.Viper {
	// Load .env (if present)
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("airide")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	dataDir := defaultDataDir()
	v.SetDefault("backend_url", "")
	v.SetDefault("store_path", filepath.Join(dataDir, "device.db"))
	v.SetDefault("log_path", filepath.Join(dataDir, "logs", "airide.log"))
	v.SetDefault("timeout", 10*time.Second)

	// The mobile build read the backend origin from EXPO_PUBLIC_BACKEND_URL.
	_ = v.BindEnv("backend_url", "AIRIDE_BACKEND_URL", "EXPO_PUBLIC_BACKEND_URL")
	return v
}

// LoadClient reads the client configuration out of v.
func LoadClient(v *viper.Viper) Client {
	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return Client{
		BackendURL: strings.TrimRight(strings.TrimSpace(v.GetString("backend_url")), "/"),
		StorePath:  v.GetString("store_path"),
		LogPath:    v.GetString("log_path"),
		Timeout:    timeout,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "airide")
	}
	return ".airide"
}
