// Package target resolves which plist file a decode command should act on.
package target

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0x6d61/plistdecode/internal/decode"
)

// 事前条件違反。いずれの場合もツールは起動しない。
var (
	ErrNoTarget = errors.New("No plist file selected")
	ErrNotPlist = errors.New("Selected file is not a .plist file")
	ErrNotExist = errors.New("File does not exist")
)

// ActiveFileEnv は「現在開いているファイル」を外部から渡すための環境変数。
const ActiveFileEnv = "PLISTDECODE_ACTIVE_FILE"

// Resolve はデコード対象のパスを決める。
// explicit（引数で明示されたファイル）が優先され、空なら active（現在開いているファイル）を使う。
// 戻り値は絶対パス。
func Resolve(explicit, active string) (string, error) {
	path := strings.TrimSpace(explicit)
	if path == "" {
		path = strings.TrimSpace(active)
	}
	if path == "" {
		return "", ErrNoTarget
	}
	if err := Validate(path); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("target: resolve %s: %w", path, err)
	}
	return abs, nil
}

// Validate は拡張子と存在を確認する。
func Validate(path string) error {
	if !strings.HasSuffix(path, decode.PlistExt) {
		return ErrNotPlist
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotExist
		}
		return fmt.Errorf("target: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return ErrNotExist
	}
	return nil
}
