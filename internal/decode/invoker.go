package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os/exec"
	"strings"
	"time"
)

// Option は Decode の挙動を変更する。
type Option func(*invoker)

// WithReporter は進捗通知先を設定する。
func WithReporter(r Reporter) Option {
	return func(inv *invoker) {
		if r != nil {
			inv.reporter = r
		}
	}
}

// WithAtomicWrite が true の場合、出力を一時ファイルに書いてから rename する。
// デフォルトは直接上書き。
func WithAtomicWrite(atomic bool) Option {
	return func(inv *invoker) { inv.atomic = atomic }
}

// WithLogger は実行コマンドなどのログ出力先を設定する。
func WithLogger(l *log.Logger) Option {
	return func(inv *invoker) {
		if l != nil {
			inv.logger = l
		}
	}
}

type invoker struct {
	reporter Reporter
	atomic   bool
	logger   *log.Logger
}

// Decode は req.ToolPath() を `plist <source>` の引数で実行し、stdout を
// req.OutputPath() に書き出す。
//
// 失敗はすべて Result に正規化され、Decode 自体はエラーを返さない。
// ctx が唯一のキャンセル手段で、デフォルトのタイムアウトは設けない。
func Decode(ctx context.Context, req Request, opts ...Option) Result {
	inv := &invoker{
		reporter: nopReporter{},
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv.run(ctx, req)
}

func (inv *invoker) run(ctx context.Context, req Request) (res Result) {
	res = Result{
		SourcePath: req.SourcePath(),
		OutputPath: req.OutputPath(),
		StartedAt:  time.Now(),
	}
	defer func() {
		if p := recover(); p != nil {
			res.fail(KindUnclassified, fmt.Sprint(p))
		}
		res.FinishedAt = time.Now()
		if res.Success {
			inv.logger.Printf("[decode] wrote %s (%d bytes) in %s", res.OutputPath, res.StdoutBytes, res.Duration())
		} else {
			inv.logger.Printf("[decode] failed (%s): %s", res.Kind, res.ErrorDetail)
		}
	}()

	inv.reporter.Report(0, MsgRunning)
	inv.logger.Printf("[decode] executing command: %s", req.CommandLine())

	stdout, stderr, err := execute(ctx, req)
	res.StdoutBytes = len(stdout)
	res.Stderr = stderr
	if err != nil {
		res.fail(classifyExecError(ctx, req, stderr, err))
		return res
	}

	// stderr 判定は書き込みより前に行う。ツールがエラーを報告した場合は
	// 出力ファイルを作成・変更しない。
	if isToolReportedError(stderr) {
		res.fail(KindToolReported, "IPSW stderr: "+stderr)
		return res
	}

	inv.reporter.Report(50, MsgWriting)

	if err := writeOutput(res.OutputPath, stdout, inv.atomic); err != nil {
		res.fail(KindUnclassified, err.Error())
		return res
	}

	inv.reporter.Report(100, MsgDone)
	res.Success = true
	res.Kind = KindNone
	return res
}

// execute はツールを起動し、stdout と stderr を最後まで読み切って返す。
func execute(ctx context.Context, req Request) ([]byte, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, req.ToolPath(), req.Args()...) // nosemgrep: go.lang.security.audit.dangerous-exec-command.dangerous-exec-command -- ツールパスはユーザー設定
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.String(), err
}

// classifyExecError は exec の失敗を Kind とメッセージに振り分ける。
func classifyExecError(ctx context.Context, req Request, stderr string, err error) (Kind, string) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return KindUnclassified, ctxErr.Error()
	}
	if isNotFound(err) {
		return KindToolNotFound, fmt.Sprintf(
			"IPSW tool not found. Please ensure '%s' is installed and accessible at: %s",
			DefaultTool, req.ToolPath())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := "Command failed: " + req.CommandLine()
		if s := strings.TrimRight(stderr, "\n"); s != "" {
			msg += "\n" + s
		}
		// ipsw は stderr にエラーを出して非ゼロ終了する。INFO/WARN 以外の
		// stderr があればツール側のエラー報告として扱う。
		if isToolReportedError(stderr) {
			return KindToolReported, msg
		}
		return KindUnclassified, msg
	}
	return KindUnclassified, err.Error()
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
