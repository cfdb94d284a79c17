package shared

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("SetLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&buf)

		if err := SetLogLevel(l, "debug"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if l.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", l.GetLevel())
		}
	})

	t.Run("SetLogLevel Rejects Unknown Level", func(t *testing.T) {
		l := NewLogger(&bytes.Buffer{})
		err := SetLogLevel(l, "chatty")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("SetLogLevel Empty Is Noop", func(t *testing.T) {
		l := NewLogger(&bytes.Buffer{})
		before := l.GetLevel()
		if err := SetLogLevel(l, "  "); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if l.GetLevel() != before {
			t.Error("expected level to be unchanged")
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "tui.log")
		l, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		l.Info("hello from the file logger")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "hello from the file logger") {
			t.Errorf("expected log line in file, got %q", string(data))
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string of length 36, got %d", len(a))
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	tc := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "absolute path", in: "/tmp/prefs.toml", want: "/tmp/prefs.toml"},
		{name: "home prefix", in: "~/.tidalfest/prefs.toml", want: filepath.Join(home, ".tidalfest/prefs.toml")},
		{name: "empty path", in: "   ", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExpandPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExpandPath() = %v, want %v", got, tt.want)
			}
		})
	}
}
