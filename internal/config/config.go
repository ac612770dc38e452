package config

import (
	"os"
	"strconv"
)

// Config holds all winnow configuration.
type Config struct {
	Store StoreConfig
	Run   RunConfig
	Log   LogConfig
}

// StoreConfig holds remote store settings.
type StoreConfig struct {
	Provider        string // "drive", "memory"
	CredentialsPath string
}

// RunConfig holds per-run synchronization settings.
type RunConfig struct {
	FolderID  string // root container holding the raw source files
	TodayOnly bool   // only sync sources modified today
	Timezone  string // IANA zone name for the today-only window
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // "debug", "info", "warn", "error"
	File  string // when set, logs also go to this rotating file
	JSON  bool
}

// Load reads configuration from environment variables with sensible defaults.
// Command-line flags override these values afterwards.
func Load() Config {
	return Config{
		Store: StoreConfig{
			Provider:        getenv("WINNOW_STORE", "drive"),
			CredentialsPath: getenv("WINNOW_CREDENTIALS", "credentials.json"),
		},
		Run: RunConfig{
			FolderID:  os.Getenv("WINNOW_FOLDER_ID"),
			TodayOnly: getenvBool("WINNOW_RUN_TODAY_ONLY", true),
			Timezone:  getenv("WINNOW_TZ", "America/New_York"),
		},
		Log: LogConfig{
			Level: getenv("WINNOW_LOG_LEVEL", "info"),
			File:  os.Getenv("WINNOW_LOG_FILE"),
			JSON:  getenvBool("WINNOW_LOG_JSON", false),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
