// Package watch re-runs a decode whenever the source plist changes on disk.
package watch

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/0x6d61/plistdecode/internal/decode"
	"github.com/0x6d61/plistdecode/internal/target"
)

// Option は Watcher の設定を変更する。
type Option func(*Watcher)

// WithDebounce はイベントをまとめる待ち時間を設定する。
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger はログ出力先を設定する。
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher は plist ファイルの変更を監視し、変更のたびに onChange を呼ぶ。
// エディタの rename 保存にも追従できるよう、ファイルではなく親ディレクトリを監視する。
// onChange は監視ゴルーチン上で逐次呼ばれるため、同時に2回走ることはない。
type Watcher struct {
	path     string
	output   string
	debounce time.Duration
	logger   *log.Logger
	onChange func(context.Context)

	fsWatcher *fsnotify.Watcher
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

// New は path を監視する Watcher を返す。Start を呼ぶまで監視は始まらない。
func New(path string, onChange func(context.Context), opts ...Option) *Watcher {
	clean := filepath.Clean(path)
	w := &Watcher{
		path:     clean,
		output:   decode.OutputPathFor(clean),
		debounce: 300 * time.Millisecond,
		logger:   log.New(io.Discard, "", 0),
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start は監視を開始する。ディレクトリの登録が終わってから戻る。
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create fsnotify: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch: watch %s: %w", dir, err)
	}
	w.fsWatcher = fsw
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.loop()
	w.logger.Printf("[watch] watching %s", w.path)
	return nil
}

// Stop は監視を終了し、実行中の onChange が戻るのを待つ。複数回呼んでもよい。
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		w.wg.Wait()
		if w.fsWatcher != nil {
			err = w.fsWatcher.Close()
		}
	})
	return err
}

// Run は Start してから ctx が終わるまでブロックする。
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("[watch] WARNING: fsnotify error: %v", err)

		case <-timer.C:
			if err := target.Validate(w.path); err != nil {
				w.logger.Printf("[watch] skip %s: %v", w.path, err)
				continue
			}
			w.logger.Printf("[watch] change detected: %s", w.path)
			w.onChange(w.ctx)
		}
	}
}

// relevant は監視対象ファイル自身への書き込み・作成かどうかを判定する。
// rename 保存は移動先パスの Create として届く。監視対象パスの Rename は
// ファイルが移動されたことを意味するので無視する。
// 自分が書き出す _decode.json も無視する。
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if name == w.output || name != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
