package decode_test

import (
	"testing"

	"github.com/0x6d61/plistdecode/internal/decode"
)

func TestNewRequest_DefaultTool(t *testing.T) {
	req, err := decode.NewRequest("/tmp/x.plist", "")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if req.ToolPath() != "ipsw" {
		t.Errorf("expected default tool 'ipsw', got %q", req.ToolPath())
	}
}

func TestNewRequest_EmptySource(t *testing.T) {
	if _, err := decode.NewRequest("  ", "ipsw"); err == nil {
		t.Error("expected error for empty source path")
	}
}

func TestRequest_OutputPath(t *testing.T) {
	req, _ := decode.NewRequest("/tmp/x.plist", "ipsw")
	if got := req.OutputPath(); got != "/tmp/x.plist_decode.json" {
		t.Errorf("unexpected output path %q", got)
	}
	if got := decode.OutputPathFor("/a/b.plist"); got != "/a/b.plist_decode.json" {
		t.Errorf("unexpected output path %q", got)
	}
}

func TestRequest_ArgsAndCommandLine(t *testing.T) {
	req, _ := decode.NewRequest("/tmp/my file.plist", "/opt/ipsw/bin/ipsw")

	args := req.Args()
	if len(args) != 2 || args[0] != "plist" || args[1] != "/tmp/my file.plist" {
		t.Errorf("unexpected args %v", args)
	}
	want := `"/opt/ipsw/bin/ipsw" plist "/tmp/my file.plist"`
	if got := req.CommandLine(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
