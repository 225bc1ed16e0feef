// Package tui implements the Bubble Tea front end for plistdecode.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/0x6d61/plistdecode/internal/decode"
)

// state は画面の状態。Running → Succeeded | Failed、Succeeded → Viewing。
type state int

const (
	stateRunning   state = iota // ipsw 実行中
	stateSucceeded              // 成功通知 +「開く」の提示
	stateFailed                 // 失敗通知
	stateViewing                // デコード済みファイルの表示
)

// DecodeFunc は1回分のデコードを実行する。進捗は reporter に通知する。
type DecodeFunc func(ctx context.Context, reporter decode.Reporter) decode.Result

// progressMsg は Decode からの進捗通知。
type progressMsg struct {
	percent int
	message string
}

// resultMsg は Decode の完了通知。
type resultMsg decode.Result

// Model is the root Bubble Tea model for a single decode run.
type Model struct {
	width  int
	height int
	ready  bool
	state  state

	source  string
	percent int
	message string
	result  decode.Result
	openErr error

	spinner  spinner.Model
	progress progress.Model
	viewport viewport.Model

	ctx        context.Context
	cancel     context.CancelFunc
	run        DecodeFunc
	progressCh chan progressMsg
}

// New は source をデコードする Model を返す。デコードは Init で開始される。
// ctrl+c で終了すると ctx から派生したコンテキストがキャンセルされ、実行中の ipsw も止まる。
func New(ctx context.Context, source string, run DecodeFunc) Model {
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = messageStyle

	return Model{
		state:      stateRunning,
		source:     source,
		message:    "Decoding plist file...",
		spinner:    sp,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		viewport:   viewport.New(80, 20),
		ctx:        ctx,
		cancel:     cancel,
		run:        run,
		progressCh: make(chan progressMsg, 8),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startDecode(), waitForProgress(m.progressCh))
}

// Result は完了した Decode の結果を返す。実行中はゼロ値。
func (m Model) Result() decode.Result {
	return m.result
}

// Cancel は実行中の Decode をキャンセルする。完了後に呼んでも何もしない。
func (m Model) Cancel() {
	m.cancel()
}

// Done は Decode が完了しているかを返す。
func (m Model) Done() bool {
	return m.state != stateRunning
}

// startDecode は Decode をバックグラウンドで実行する tea.Cmd を返す。
// 進捗は progressCh に流し、完了したらチャネルを閉じる。
func (m Model) startDecode() tea.Cmd {
	ctx, run, ch := m.ctx, m.run, m.progressCh
	return func() tea.Msg {
		defer close(ch)
		res := run(ctx, decode.ReporterFunc(func(p int, msg string) {
			ch <- progressMsg{percent: p, message: msg}
		}))
		return resultMsg(res)
	}
}

// waitForProgress は次の進捗通知を待つ tea.Cmd。チャネルが閉じたら nil を返す。
func waitForProgress(ch <-chan progressMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
