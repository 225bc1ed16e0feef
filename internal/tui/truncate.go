package tui

import (
	"fmt"
	"strings"
)

// 失敗詳細の表示で残す行数。Result.ErrorDetail 自体は切り詰めない。
const (
	detailHeadLines = 12
	detailTailLines = 6
)

// truncateHeadTail は先頭 head 行 + 末尾 tail 行を残す。
// 合計行数が head+tail 以下なら全行を返す。
func truncateHeadTail(text string, head, tail int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	total := len(lines)
	if head+tail >= total {
		return strings.Join(lines, "\n")
	}

	omitted := total - head - tail
	var sb strings.Builder
	for _, l := range lines[:head] {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	sb.WriteString(fmt.Sprintf("--- %d lines omitted ---\n", omitted))
	sb.WriteString(strings.Join(lines[total-tail:], "\n"))
	return sb.String()
}
