package decode

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// PlistExt はデコード対象ファイルの拡張子。
	PlistExt = ".plist"
	// OutputSuffix はソースパスに連結して出力先パスを作るサフィックス。
	OutputSuffix = "_decode.json"
	// DefaultTool は ipsw_path 未設定時に PATH から解決されるツール名。
	DefaultTool = "ipsw"
	// Subcommand は ipsw に渡すモード指定。
	Subcommand = "plist"
)

// Request は1回のデコード要求。NewRequest で構築し、以後は変更しない。
type Request struct {
	sourcePath string
	toolPath   string
}

// NewRequest は Request を構築する。toolPath が空なら DefaultTool を使う。
// 拡張子や存在確認は target パッケージ側の責務で、ここでは空文字だけを弾く。
func NewRequest(sourcePath, toolPath string) (Request, error) {
	if strings.TrimSpace(sourcePath) == "" {
		return Request{}, errors.New("decode: source path must not be empty")
	}
	if strings.TrimSpace(toolPath) == "" {
		toolPath = DefaultTool
	}
	return Request{sourcePath: sourcePath, toolPath: toolPath}, nil
}

// SourcePath はデコード対象の plist パス。
func (r Request) SourcePath() string { return r.sourcePath }

// ToolPath は実行する ipsw のパスまたはコマンド名。
func (r Request) ToolPath() string { return r.toolPath }

// OutputPath は出力先パス。常に SourcePath + OutputSuffix。
func (r Request) OutputPath() string { return OutputPathFor(r.sourcePath) }

// Args は ipsw に渡す位置引数（モード指定, ソースパス）。
func (r Request) Args() []string { return []string{Subcommand, r.sourcePath} }

// CommandLine はログ表示用のクォート済みコマンドライン。
// 実行時はシェルを経由せず argv として渡すため、このクォートは表示専用。
func (r Request) CommandLine() string {
	return fmt.Sprintf("%q %s %q", r.toolPath, Subcommand, r.sourcePath)
}

// OutputPathFor は sourcePath に対応する出力先パスを返す。
func OutputPathFor(sourcePath string) string {
	return sourcePath + OutputSuffix
}
