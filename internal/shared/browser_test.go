package shared

import (
	"strings"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	tc := []struct {
		goos    string
		program string
		wantErr bool
	}{
		{goos: "darwin", program: "open"},
		{goos: "linux", program: "xdg-open"},
		{goos: "windows", program: "rundll32"},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, "https://fest.example.com/api/auth/tidal/login")
			if (err != nil) != tt.wantErr {
				t.Fatalf("browserCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !strings.HasSuffix(cmd.Path, tt.program) && cmd.Args[0] != tt.program {
				t.Errorf("expected program %s, got %s", tt.program, cmd.Args[0])
			}
			if last := cmd.Args[len(cmd.Args)-1]; last != "https://fest.example.com/api/auth/tidal/login" {
				t.Errorf("expected url as final argument, got %s", last)
			}
		})
	}

	t.Run("OpenBrowser Unsupported Platform", func(t *testing.T) {
		orig := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = orig }()

		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
