package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mondrian/pkg/errors"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("x") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("x") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.DebugLevel))

	prog.step("Script replayed", "script", "grid.txt")
	prog.done("Rendered 2 file(s)")

	out := buf.String()
	for _, want := range []string{"Script replayed", "script=grid.txt", "took=", "Rendered 2 file(s) ("} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProgressStepsHiddenAtInfo(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.step("Canvas ready")
	if buf.Len() != 0 {
		t.Errorf("step logged at info level: %q", buf.String())
	}
}

func TestRedirectLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	restore, err := redirectLogs(logger, "")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("discarded")
	restore()
	if buf.Len() != 0 {
		t.Errorf("discarded output reached the original writer: %q", buf.String())
	}

	path := filepath.Join(t.TempDir(), "draw.log")
	restore, err = redirectLogs(logger, path)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("to file")
	restore()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
}

func TestRedirectLogsBadPath(t *testing.T) {
	logger := newLogger(&bytes.Buffer{}, log.InfoLevel)
	_, err := redirectLogs(logger, filepath.Join(t.TempDir(), "missing", "draw.log"))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("redirectLogs() error = %v, want INVALID_PATH", err)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), custom)) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}
