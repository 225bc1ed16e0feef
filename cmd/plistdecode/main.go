package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/0x6d61/plistdecode/internal/config"
	"github.com/0x6d61/plistdecode/internal/decode"
	"github.com/0x6d61/plistdecode/internal/target"
	"github.com/0x6d61/plistdecode/internal/tui"
	"github.com/0x6d61/plistdecode/internal/watch"
)

// 終了コード
const (
	exitOK           = 0
	exitDecodeFailed = 1
	exitUsage        = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("plistdecode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "config/config.yaml", "設定ファイルのパス")
		envPath    = fs.String("env", ".env", ".env ファイルのパス")
		ipswPath   = fs.String("ipsw", "", "ipsw のパスまたはコマンド名（設定ファイル・IPSW_PATH より優先）")
		active     = fs.String("active", "", "引数なしの場合にデコードする「現在開いている」ファイル（省略時は "+target.ActiveFileEnv+"）")
		plain      = fs.Bool("plain", false, "TUI を使わずプレーンテキストで結果を出力する")
		open       = fs.Bool("open", false, "成功後にデコード結果を標準出力に表示する（-plain 時）")
		watchMode  = fs.Bool("watch", false, "plist の変更を監視して再デコードする")
		atomic     = fs.Bool("atomic", false, "一時ファイル経由で出力を書き込む")
		logFile    = fs.String("log", "", "ログファイルのパス（省略時は設定ファイルの log_file）")
		verbose    = fs.Bool("v", false, "ログを標準エラーに出力する")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, `⚡ plistdecode — decode a .plist with ipsw

Usage:
  plistdecode [flags] [file.plist]

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Environment:
  IPSW_PATH                ipsw のパス (default: ipsw)
  PLISTDECODE_ACTIVE_FILE  引数省略時のデコード対象

Examples:
  plistdecode Info.plist                   # TUI で進捗を表示し、完了後 [o] で結果を開く
  plistdecode -plain -open Info.plist      # 結果を標準出力に表示
  plistdecode -watch Info.plist            # 保存のたびに再デコード
`)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	// --- Config ---
	// 優先順位: フラグ > 環境変数（.env を含む） > 設定ファイル > デフォルト
	if err := config.LoadDotEnv(*envPath); err != nil {
		fmt.Fprintln(stderr, "設定エラー:", err)
		return exitUsage
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "設定エラー:", err)
		return exitUsage
	}
	applyFlags(cfg, *ipswPath, *atomic, *plain, *logFile)

	// --- Logger ---
	logger, closeLog, err := newLogger(cfg.LogFile, *verbose, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "ログ初期化エラー:", err)
		return exitUsage
	}
	defer closeLog()

	// --- Target ---
	// .env 読み込み後に参照する
	activeFile := *active
	if activeFile == "" {
		activeFile = os.Getenv(target.ActiveFileEnv)
	}
	source, err := target.Resolve(fs.Arg(0), activeFile)
	if err != nil {
		fmt.Fprintln(stderr, tui.PreconditionMessage(err))
		return exitUsage
	}
	req, err := decode.NewRequest(source, cfg.IPSWPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	logger.Printf("[main] ipsw=%s source=%s atomic=%v", req.ToolPath(), req.SourcePath(), cfg.AtomicWrite)
	opts := []decode.Option{
		decode.WithAtomicWrite(cfg.AtomicWrite),
		decode.WithLogger(logger),
	}

	// グレースフルシャットダウン
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *watchMode:
		return runWatch(ctx, req, opts, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, logger, stdout, stderr)
	case cfg.UI.Plain:
		res := decode.Decode(ctx, req, opts...)
		if err := tui.PrintResult(stdout, res, *open); err != nil {
			fmt.Fprintln(stderr, err)
		}
		return exitCode(res)
	default:
		return runTUI(ctx, req, opts, stderr)
	}
}

// applyFlags は明示指定されたフラグで設定を上書きする。
func applyFlags(cfg *config.AppConfig, ipswPath string, atomic, plain bool, logFile string) {
	if ipswPath != "" {
		cfg.IPSWPath = ipswPath
	}
	if atomic {
		cfg.AtomicWrite = true
	}
	if plain {
		cfg.UI.Plain = true
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
}

// runTUI は Bubble Tea で進捗と結果を表示する（ブロッキング）。
// TUI が終了した時点で実行中の ipsw はキャンセルされる。
func runTUI(ctx context.Context, req decode.Request, opts []decode.Option, stderr io.Writer) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.New(ctx, req.SourcePath(), func(ctx context.Context, r decode.Reporter) decode.Result {
		return decode.Decode(ctx, req, append(opts, decode.WithReporter(r))...)
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	cancel()
	if err != nil {
		fmt.Fprintln(stderr, "TUI エラー:", err)
		return exitDecodeFailed
	}
	fm, ok := final.(tui.Model)
	if !ok || !fm.Done() {
		return exitDecodeFailed
	}
	// AltScreen を抜けた後も結果が残るように通知を出し直す
	_ = tui.PrintResult(stderr, fm.Result(), false)
	return exitCode(fm.Result())
}

// runWatch は初回デコード後、plist が変更されるたびに再デコードする。
func runWatch(ctx context.Context, req decode.Request, opts []decode.Option, debounce time.Duration, logger *log.Logger, stdout, stderr io.Writer) int {
	decodeOnce := func(ctx context.Context) {
		res := decode.Decode(ctx, req, opts...)
		_ = tui.PrintResult(stdout, res, false)
	}
	decodeOnce(ctx)

	w := watch.New(req.SourcePath(), decodeOnce,
		watch.WithDebounce(debounce),
		watch.WithLogger(logger),
	)
	fmt.Fprintf(stderr, "Watching %s (Ctrl+C to stop)\n", req.SourcePath())
	if err := w.Run(ctx); err != nil {
		fmt.Fprintln(stderr, "監視エラー:", err)
		return exitUsage
	}
	return exitOK
}

// newLogger はログ出力先を決める。TUI 描画を崩さないよう、既定では捨てる。
func newLogger(path string, verbose bool, stderr io.Writer) (*log.Logger, func(), error) {
	var out io.Writer = io.Discard
	closer := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		out = f
		closer = func() { _ = f.Close() }
	}
	if verbose {
		if out == io.Discard {
			out = stderr
		} else {
			out = io.MultiWriter(out, stderr)
		}
	}
	return log.New(out, "", log.LstdFlags), closer, nil
}

func exitCode(res decode.Result) int {
	if res.Success {
		return exitOK
	}
	return exitDecodeFailed
}
