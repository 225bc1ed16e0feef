package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/0x6d61/plistdecode/internal/decode"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  ⚡ Starting plistdecode...\n"
	}

	statusBar := m.renderStatusBar()

	var body string
	switch m.state {
	case stateRunning:
		body = m.renderRunning()
	case stateSucceeded:
		body = m.renderSucceeded()
	case stateFailed:
		body = m.renderFailed()
	case stateViewing:
		return lipgloss.JoinVertical(lipgloss.Left,
			statusBar,
			viewerStyle.Width(m.viewport.Width).Render(m.viewport.View()),
			m.renderHints("↑/↓ scroll", "esc back", "q quit"),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, statusBar, "", body)
}

// renderStatusBar renders the single-line header with app name and the source file.
func (m Model) renderStatusBar() string {
	appName := appNameStyle.Render("⚡ PLISTDECODE")
	nameWidth := max(10, m.width-20)
	file := runewidth.Truncate(filepath.Base(m.source), nameWidth, "…")
	return statusBarStyle.Width(m.width).Render(appName + "  " + mutedStyle.Render(file))
}

func (m Model) renderRunning() string {
	var sb strings.Builder
	sb.WriteString("  " + m.spinner.View() + " " + messageStyle.Render(m.message) + "\n\n")
	sb.WriteString("  " + m.progress.ViewAs(float64(m.percent)/100) + "\n")
	sb.WriteString("  " + mutedStyle.Render(fmt.Sprintf("%d%%", m.percent)) + "\n")
	return sb.String()
}

func (m Model) renderSucceeded() string {
	var sb strings.Builder
	sb.WriteString("  " + successStyle.Render("✓ "+SuccessMessage(m.result)) + "\n")
	sb.WriteString("  " + mutedStyle.Render(m.result.OutputPath) + "\n")
	if m.result.Stderr != "" {
		sb.WriteString("  " + mutedStyle.Render(firstLine(m.result.Stderr)) + "\n")
	}
	if m.openErr != nil {
		sb.WriteString("\n  " + failureStyle.Render(m.openErr.Error()) + "\n")
	}
	sb.WriteString("\n" + m.renderHints("[o] "+OpenActionLabel, "[q] Quit"))
	return sb.String()
}

func (m Model) renderFailed() string {
	var sb strings.Builder
	sb.WriteString("  " + failureStyle.Render("✗ Failed to decode plist") + "\n")
	sb.WriteString("  " + mutedStyle.Render(failureLabel(m.result.Kind)) + "\n\n")

	detail := truncateHeadTail(m.result.ErrorDetail, detailHeadLines, detailTailLines)
	box := detailBoxStyle
	if m.width > 8 {
		box = box.Width(m.width - 6)
	}
	sb.WriteString(indent(box.Render(detail), "  ") + "\n")
	sb.WriteString("\n" + m.renderHints("[q] Quit"))
	return sb.String()
}

func (m Model) renderHints(hints ...string) string {
	return "  " + keyHintStyle.Render(strings.Join(hints, "  "))
}

// failureLabel は失敗分類の表示名。
func failureLabel(kind decode.Kind) string {
	switch kind {
	case decode.KindToolNotFound:
		return "ipsw tool not found (check ipsw_path)"
	case decode.KindToolReported:
		return "ipsw reported an error"
	default:
		return "unexpected error"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
