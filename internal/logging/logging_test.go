package logging

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"", logrus.DebugLevel},
		{"chatty", logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(Options{Level: tt.level, Env: "test"})
			if logger.GetLevel() != tt.want {
				t.Errorf("level = %s, want %s", logger.GetLevel(), tt.want)
			}
			if !logger.ReportCaller {
				t.Error("expected caller reporting")
			}
		})
	}
}

func TestNew_FileOutputDisabledInTest(t *testing.T) {
	dir := t.TempDir()

	logger := New(Options{Level: "info", Dir: dir, Env: "test"})
	logger.Info("hello")

	matches, _ := filepath.Glob(filepath.Join(dir, "*.log"))
	if len(matches) != 0 {
		t.Errorf("expected no log files in test env, found %v", matches)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.WithField("k", "v").Error("dropped")
}
