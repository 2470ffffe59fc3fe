package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	os.Setenv("TAMSHAI_COORDINATION_NAME", "TestCoordination")
	os.Setenv("TAMSHAI_ENABLE_FILE_LOGGING", "true")
	os.Setenv("TAMSHAI_LOG_LEVEL", "debug")
	os.Setenv("TAMSHAI_POLL_INTERVAL_MS", "250")

	defer func() {
		os.Unsetenv("TAMSHAI_COORDINATION_NAME")
		os.Unsetenv("TAMSHAI_ENABLE_FILE_LOGGING")
		os.Unsetenv("TAMSHAI_LOG_LEVEL")
		os.Unsetenv("TAMSHAI_POLL_INTERVAL_MS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.CoordinationName != "TestCoordination" {
		t.Errorf("Expected CoordinationName to be 'TestCoordination', got '%s'", cfg.CoordinationName)
	}
	if !cfg.EnableFileLogging {
		t.Errorf("Expected EnableFileLogging to be true, got %v", cfg.EnableFileLogging)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be 'debug', got '%s'", cfg.LogLevel)
	}
	if cfg.PollIntervalMS != 250 {
		t.Errorf("Expected PollIntervalMS to be 250, got %d", cfg.PollIntervalMS)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Scheme != DefaultScheme {
		t.Errorf("Expected default scheme '%s', got '%s'", DefaultScheme, cfg.Scheme)
	}
	if cfg.CallbackURI != DefaultScheme+"callback" {
		t.Errorf("Expected callback URI derived from scheme, got '%s'", cfg.CallbackURI)
	}
	want := filepath.Join(os.TempDir(), DefaultSlotFileName)
	if cfg.SlotPath != want {
		t.Errorf("Expected slot path '%s', got '%s'", want, cfg.SlotPath)
	}
}

func TestLoadWithOptions(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{
		SlotPathOverride: "/tmp/custom_slot.txt",
		SchemeOverride:   "com.example.app://",
	})
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.SlotPath != "/tmp/custom_slot.txt" {
		t.Errorf("Expected slot path override, got '%s'", cfg.SlotPath)
	}
	if cfg.Scheme != "com.example.app://" {
		t.Errorf("Expected scheme override, got '%s'", cfg.Scheme)
	}
}
