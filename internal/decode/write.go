package decode

import (
	"fmt"
	"os"
	"path/filepath"
)

const outputPerm = 0o644

// writeOutput は data をそのまま path に書き出す。既存ファイルは上書きする。
//
// atomic=false の場合は直接上書きするため、書き込み途中で落ちると
// 途中までのファイルが残る。atomic=true なら同じディレクトリの一時ファイルに
// 書いてから rename する。
func writeOutput(path string, data []byte, atomic bool) error {
	if !atomic {
		if err := os.WriteFile(path, data, outputPerm); err != nil {
			return fmt.Errorf("write decoded output: %w", err)
		}
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write decoded output: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write decoded output: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write decoded output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("write decoded output: %w", err)
	}
	if err := os.Chmod(tmpName, outputPerm); err != nil {
		cleanup()
		return fmt.Errorf("write decoded output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("write decoded output: %w", err)
	}
	return nil
}
