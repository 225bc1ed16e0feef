package decode_test

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeTool は stdout / stderr / 終了コードを固定で返す ipsw 代替スクリプトを作る。
// 受け取った引数は <dir>/args に1行ずつ記録される。
func fakeTool(t *testing.T, stdout, stderr string, exitCode int) (toolPath, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool requires /bin/sh")
	}
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args")
	script := fmt.Sprintf(`#!/bin/sh
for a in "$@"; do printf '%%s\n' "$a" >> %s; done
printf '%%s' %s
printf '%%s' %s >&2
exit %d
`, shQuote(argsFile), shQuote(stdout), shQuote(stderr), exitCode)

	toolPath = filepath.Join(dir, "ipsw")
	if err := os.WriteFile(toolPath, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return toolPath, argsFile
}

func shQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// writePlist は空の plist ファイルを作ってそのパスを返す。
func writePlist(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("bplist00"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
