// Package config loads process settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	StorageSQLite = "sqlite"
	StorageCSV    = "csv"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Env             string
	HTTPAddr        string
	StorageDriver   string
	DataDir         string
	StaticDir       string
	LogLevel        string
	AnnotateFrames  bool
	MaxFrameWidth   int
	MediaPipeScript string
	MediaPipePython string
	EstimatorIdle   time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	TrustedProxies  []netip.Prefix
	MotionThreshold float64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then builds a Config from it. Missing .env files are
// ignored; variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	e := &envReader{}

	cfg := Config{
		Env:             e.str("APP_ENV", "development"),
		HTTPAddr:        e.str("HTTP_ADDR", ":8080"),
		StorageDriver:   strings.ToLower(e.str("STORAGE_DRIVER", StorageSQLite)),
		DataDir:         e.str("DATA_DIR", defaultDataDir()),
		StaticDir:       e.str("STATIC_DIR", ""),
		LogLevel:        e.str("LOG_LEVEL", "debug"),
		AnnotateFrames:  e.boolean("ANNOTATE_FRAMES", true),
		MaxFrameWidth:   e.integer("MAX_FRAME_WIDTH", 960),
		MediaPipeScript: e.str("MEDIAPIPE_SCRIPT", ""),
		MediaPipePython: e.str("MEDIAPIPE_PYTHON", ""),
		EstimatorIdle:   e.duration("ESTIMATOR_IDLE_TIMEOUT", 30*time.Second),
		RateLimitRPS:    e.float("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  e.integer("RATE_LIMIT_BURST", 40),
		TrustedProxies:  e.prefixes("TRUSTED_PROXIES"),
		MotionThreshold: e.float("STREAM_MOTION_THRESHOLD", 0),
		ReadTimeout:     e.duration("HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    e.duration("HTTP_WRITE_TIMEOUT", 30*time.Second),
	}
	if e.err != nil {
		return Config{}, e.err
	}

	if cfg.StorageDriver != StorageSQLite && cfg.StorageDriver != StorageCSV {
		return Config{}, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", cfg.StorageDriver)
	}
	return cfg, nil
}

// IsTest reports whether the service runs under APP_ENV=test.
func (c Config) IsTest() bool {
	return c.Env == "test"
}

// LogDir is where rotated log files are written.
func (c Config) LogDir() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "logs")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".motionlab"
	}
	return filepath.Join(home, ".motionlab")
}

// envReader collects the first parse error so FromEnv can report it once.
type envReader struct {
	err error
}

func (e *envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (e *envReader) integer(key string, def int) int {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return n
}

func (e *envReader) float(key string, def float64) float64 {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return f
}

func (e *envReader) boolean(key string, def bool) bool {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return b
}

// prefixes reads a comma separated list of CIDRs or bare IPs.
func (e *envReader) prefixes(key string) []netip.Prefix {
	var out []netip.Prefix
	for _, item := range strings.Split(e.str(key, ""), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				e.fail(key, err)
				return nil
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			e.fail(key, err)
			return nil
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out
}

// duration accepts Go durations ("45s") or a bare number of seconds.
func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return def
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, err)
		return def
	}
	return d
}
