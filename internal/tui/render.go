package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// readDecoded はデコード済みファイルを読み込む。
func readDecoded(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open decoded file: %w", err)
	}
	return data, nil
}

// renderDecoded はデコード結果を json コードブロックとして glamour でレンダリングする。
// ダークスタイルを明示指定（WithAutoStyle は非 TTY 環境で plain にフォールバックするため使わない）。
func renderDecoded(content string, width int) (string, error) {
	// glamour dark スタイルのマージン分を差し引く（左2+右2=4）
	wrapWidth := width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", err
	}
	return r.Render("```json\n" + content + "\n```\n")
}
