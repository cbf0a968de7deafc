package config

import (
	"testing"
	"time"

	"github.com/playforge/assetloader/internal/bytesize"
)

func TestApplyDefaults_Logging(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default log output 'stdout', got %q", cfg.Logging.Output)
	}
}

func TestApplyDefaults_ShutdownTimeout(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
}

func TestApplyDefaults_Loader(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Loader.MaxConcurrentLoads != 3 {
		t.Errorf("Expected default max_concurrent_loads 3, got %d", cfg.Loader.MaxConcurrentLoads)
	}
	if cfg.Loader.TickInterval != 16*time.Millisecond {
		t.Errorf("Expected default tick_interval 16ms, got %v", cfg.Loader.TickInterval)
	}
	if cfg.Loader.QueueWarnDepth != 256 {
		t.Errorf("Expected default queue_warn_depth 256, got %d", cfg.Loader.QueueWarnDepth)
	}
}

func TestApplyDefaults_Cache(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("Expected default ttl 10m, got %v", cfg.Cache.TTL)
	}
	if cfg.Cache.SweepInterval != time.Minute {
		t.Errorf("Expected default sweep_interval 1m, got %v", cfg.Cache.SweepInterval)
	}
	if cfg.Cache.MaxSize != 100*bytesize.MiB {
		t.Errorf("Expected default max_size 100Mi, got %v", cfg.Cache.MaxSize)
	}
}

func TestApplyDefaults_API(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.API.Port != 8080 {
		t.Errorf("Expected default API port 8080, got %d", cfg.API.Port)
	}
	if cfg.API.ReadTimeout != 10*time.Second {
		t.Errorf("Expected default read timeout 10s, got %v", cfg.API.ReadTimeout)
	}
	if cfg.API.WriteTimeout != 10*time.Second {
		t.Errorf("Expected default write timeout 10s, got %v", cfg.API.WriteTimeout)
	}
	if cfg.API.IdleTimeout != 60*time.Second {
		t.Errorf("Expected default idle timeout 60s, got %v", cfg.API.IdleTimeout)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "DEBUG",
			Format: "json",
			Output: "/var/log/assetloader.log",
		},
		ShutdownTimeout: 60 * time.Second,
		Loader: LoaderConfig{
			MaxConcurrentLoads: 8,
			TickInterval:       50 * time.Millisecond,
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
	}

	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected explicit level 'DEBUG' to be preserved, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected explicit format 'json' to be preserved, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "/var/log/assetloader.log" {
		t.Errorf("Expected explicit output to be preserved, got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 60*time.Second {
		t.Errorf("Expected explicit timeout 60s to be preserved, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Loader.MaxConcurrentLoads != 8 {
		t.Errorf("Expected explicit max_concurrent_loads 8 to be preserved, got %d", cfg.Loader.MaxConcurrentLoads)
	}
	if cfg.Loader.TickInterval != 50*time.Millisecond {
		t.Errorf("Expected explicit tick_interval 50ms to be preserved, got %v", cfg.Loader.TickInterval)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Expected explicit ttl 1h to be preserved, got %v", cfg.Cache.TTL)
	}
}

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("Default config should be valid, got error: %v", err)
	}
}

func TestGetDefaultConfig_HasRequiredFields(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.Logging.Level == "" {
		t.Error("Default config missing logging level")
	}
	if cfg.Bundle.Path == "" {
		t.Error("Default config missing bundle path")
	}
	if cfg.Loader.MaxConcurrentLoads == 0 {
		t.Error("Default config missing max_concurrent_loads")
	}
	if cfg.API.Port == 0 {
		t.Error("Default config missing API port")
	}
}
