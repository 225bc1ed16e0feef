package decode_test

import (
	"testing"

	"github.com/0x6d61/plistdecode/internal/decode"
)

func TestIsToolReportedError(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   bool
	}{
		{"empty", "", false},
		{"info", "INFO loaded", false},
		{"warn", "WARN deprecated key", false},
		{"error", "ERROR bad magic", true},
		{"mixed info and error", "INFO start\nERROR fatal", false},
		{"warning inside message", "failed: WARNING flag missing", false},
		{"lowercase info", "info: loaded", true},
		{"newline only", "\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decode.IsToolReportedErrorForTest(tt.stderr); got != tt.want {
				t.Errorf("isToolReportedError(%q) = %v, want %v", tt.stderr, got, tt.want)
			}
		})
	}
}
