package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var keys = []string{
	"APP_ENV", "HTTP_ADDR", "STORAGE_DRIVER", "DATA_DIR", "STATIC_DIR", "LOG_LEVEL",
	"ANNOTATE_FRAMES", "MAX_FRAME_WIDTH", "MEDIAPIPE_SCRIPT", "MEDIAPIPE_PYTHON",
	"ESTIMATOR_IDLE_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "TRUSTED_PROXIES",
	"STREAM_MOTION_THRESHOLD", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != StorageSQLite {
		t.Errorf("StorageDriver = %q, want sqlite", cfg.StorageDriver)
	}
	if !cfg.AnnotateFrames {
		t.Error("AnnotateFrames should default to true")
	}
	if cfg.MaxFrameWidth != 960 {
		t.Errorf("MaxFrameWidth = %d, want 960", cfg.MaxFrameWidth)
	}
	if cfg.EstimatorIdle != 30*time.Second {
		t.Errorf("EstimatorIdle = %v, want 30s", cfg.EstimatorIdle)
	}
	if cfg.RateLimitRPS != 20 || cfg.RateLimitBurst != 40 {
		t.Errorf("rate limit = %v/%d, want 20/40", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.MotionThreshold != 0 {
		t.Errorf("MotionThreshold = %v, want 0 (reuse off)", cfg.MotionThreshold)
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Errorf("TrustedProxies = %v, want none", cfg.TrustedProxies)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if filepath.Base(cfg.DataDir) != ".motionlab" {
		t.Errorf("DataDir = %q, want a .motionlab directory", cfg.DataDir)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORAGE_DRIVER", "CSV")
	t.Setenv("ANNOTATE_FRAMES", "false")
	t.Setenv("ESTIMATOR_IDLE_TIMEOUT", "45")
	t.Setenv("HTTP_READ_TIMEOUT", "2m")
	t.Setenv("DATA_DIR", "/tmp/motionlab")
	t.Setenv("TRUSTED_PROXIES", "10.1.2.3/8, 127.0.0.1,::1")
	t.Setenv("STREAM_MOTION_THRESHOLD", "1.5")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if !cfg.IsTest() {
		t.Error("expected test environment")
	}
	if cfg.StorageDriver != StorageCSV {
		t.Errorf("StorageDriver = %q, want csv", cfg.StorageDriver)
	}
	if cfg.AnnotateFrames {
		t.Error("AnnotateFrames should be false")
	}
	if cfg.EstimatorIdle != 45*time.Second {
		t.Errorf("EstimatorIdle = %v, want 45s", cfg.EstimatorIdle)
	}
	if cfg.ReadTimeout != 2*time.Minute {
		t.Errorf("ReadTimeout = %v, want 2m", cfg.ReadTimeout)
	}
	if cfg.MotionThreshold != 1.5 {
		t.Errorf("MotionThreshold = %v, want 1.5", cfg.MotionThreshold)
	}
	wantProxies := []string{"10.0.0.0/8", "127.0.0.1/32", "::1/128"}
	if len(cfg.TrustedProxies) != len(wantProxies) {
		t.Fatalf("TrustedProxies = %v, want %v", cfg.TrustedProxies, wantProxies)
	}
	for i, p := range cfg.TrustedProxies {
		if p.String() != wantProxies[i] {
			t.Errorf("TrustedProxies[%d] = %s, want %s", i, p, wantProxies[i])
		}
	}
	if cfg.LogDir() != filepath.Join("/tmp/motionlab", "logs") {
		t.Errorf("LogDir = %q", cfg.LogDir())
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"STORAGE_DRIVER", "postgres"},
		{"MAX_FRAME_WIDTH", "wide"},
		{"RATE_LIMIT_RPS", "fast"},
		{"ANNOTATE_FRAMES", "maybe"},
		{"ESTIMATOR_IDLE_TIMEOUT", "soon"},
		{"TRUSTED_PROXIES", "10.0.0.0/33"},
		{"TRUSTED_PROXIES", "proxy.local"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := FromEnv(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "HTTP_ADDR=:9090\nRATE_LIMIT_BURST=5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("RATE_LIMIT_BURST", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.RateLimitBurst != 7 {
		t.Errorf("RateLimitBurst = %d, want environment value 7", cfg.RateLimitBurst)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
