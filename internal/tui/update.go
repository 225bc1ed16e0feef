package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/0x6d61/plistdecode/internal/decode"
)

// Update implements tea.Model and routes all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != stateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m.percent = msg.percent
		if m.state == stateRunning {
			m.message = msg.message
		}
		return m, waitForProgress(m.progressCh)

	case resultMsg:
		m.result = decode.Result(msg)
		if m.result.Success {
			m.state = stateSucceeded
			m.percent = 100
		} else {
			m.state = stateFailed
		}
		return m, nil
	}

	return m, nil
}

// handleResize は端末サイズ変更を各コンポーネントに反映する。
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	m.progress.Width = max(10, width-8)
	// 上下: ステータスバー(1) + 枠(2) + ヒント(1)
	m.viewport.Width = max(20, width-2)
	m.viewport.Height = max(3, height-4)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case "q":
		if m.state == stateRunning {
			// 実行中はキャンセル手段がないため終了しない
			return m, nil
		}
		return m, tea.Quit
	}

	switch m.state {
	case stateSucceeded:
		switch msg.String() {
		case "o", "enter":
			m.openDecoded()
		case "esc":
			return m, tea.Quit
		}
	case stateFailed:
		if msg.String() == "esc" || msg.String() == "enter" {
			return m, tea.Quit
		}
	case stateViewing:
		if msg.String() == "esc" {
			m.state = stateSucceeded
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// openDecoded はデコード済みファイルを読み込んでビューアに表示する。
func (m *Model) openDecoded() {
	data, err := readDecoded(m.result.OutputPath)
	if err != nil {
		m.openErr = err
		return
	}
	m.openErr = nil

	content := string(data)
	rendered, err := renderDecoded(content, m.viewport.Width)
	if err != nil {
		// フォールバック: プレーンテキスト
		rendered = content
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
	m.state = stateViewing
}
