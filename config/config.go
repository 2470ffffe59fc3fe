package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultScheme is the protocol prefix registered for deep-link activation.
	// Matching is literal and case-sensitive; the payload after the prefix is opaque.
	DefaultScheme = "com.tamshai.ai://"

	// DefaultCoordinationName keys the process-independent exclusivity marker.
	DefaultCoordinationName = "TamshaiAiUnified_SingleInstance"

	// DefaultSlotFileName is the one-slot handoff file created under the OS temp dir.
	DefaultSlotFileName = "tamshai_ai_callback_url.txt"

	EnvPathEnvVar = "TAMSHAI_DESKTOP_ENV"
)

type LoadOptions struct {
	SlotPathOverride string
	SchemeOverride   string
}

type Config struct {
	Scheme            string
	CoordinationName  string
	SlotPath          string
	CallbackURI       string
	AuthURL           string
	WindowTitle       string
	LogLevel          string
	EnableFileLogging bool
	LogDir            string
	PollIntervalMS    int
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, use TAMSHAI_DESKTOP_ENV env var as a path to a config file
	envPath := resolveEnvPath()
	if envPath != "" {
		_ = godotenv.Load(envPath)
	}

	scheme := getEnvWithDefault("TAMSHAI_SCHEME", DefaultScheme)
	if override := strings.TrimSpace(opts.SchemeOverride); override != "" {
		scheme = override
	}

	// Poll interval for the UI-facing callback slot polling, in milliseconds.
	pollIntervalMS := 500
	if v := os.Getenv("TAMSHAI_POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pollIntervalMS = n
		}
	}

	cfg := &Config{
		Scheme:            scheme,
		CoordinationName:  getEnvWithDefault("TAMSHAI_COORDINATION_NAME", DefaultCoordinationName),
		SlotPath:          resolveSlotPath(opts),
		CallbackURI:       getEnvWithDefault("TAMSHAI_CALLBACK_URI", scheme+"callback"),
		AuthURL:           os.Getenv("TAMSHAI_AUTH_URL"),
		WindowTitle:       getEnvWithDefault("TAMSHAI_WINDOW_TITLE", "TamshaiAI"),
		LogLevel:          getEnvWithDefault("TAMSHAI_LOG_LEVEL", "info"),
		EnableFileLogging: strings.ToLower(os.Getenv("TAMSHAI_ENABLE_FILE_LOGGING")) == "true",
		LogDir:            os.Getenv("TAMSHAI_LOG_DIR"),
		PollIntervalMS:    pollIntervalMS,
	}

	return cfg, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	execDir := filepath.Dir(execPath)
	exeEnv := filepath.Join(execDir, ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvPathEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func resolveSlotPath(opts LoadOptions) string {
	if override := strings.TrimSpace(opts.SlotPathOverride); override != "" {
		return override
	}
	if envPath := strings.TrimSpace(os.Getenv("TAMSHAI_SLOT_FILE")); envPath != "" {
		return envPath
	}
	return filepath.Join(os.TempDir(), DefaultSlotFileName)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
