// Package decode runs the external ipsw tool against a plist file and persists its decoded output.
package decode

import "time"

// Kind は失敗の分類。
type Kind string

const (
	KindNone         Kind = ""               // 成功
	KindToolNotFound Kind = "tool_not_found" // ツールバイナリが起動できない（設定の見直しが必要）
	KindToolReported Kind = "tool_reported"  // ツールが stderr でエラーを報告した
	KindUnclassified Kind = "unclassified"   // その他（非ゼロ終了・書き込み失敗・キャンセル）
)

// unknownError は ErrorDetail にメッセージが取れなかった場合のフォールバック。
const unknownError = "Unknown error occurred"

// Result は Decode 1回分の結果。呼び出し元はこれを見て
// 「デコード済みファイルを開く」を提示するかどうかを決める。
type Result struct {
	SourcePath  string
	OutputPath  string
	Success     bool
	Kind        Kind
	ErrorDetail string

	StdoutBytes int
	Stderr      string // INFO/WARN のみで成功扱いになった場合もここに残る

	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration は実行時間を返す。
func (r Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *Result) fail(kind Kind, detail string) {
	if detail == "" {
		detail = unknownError
	}
	r.Success = false
	r.Kind = kind
	r.ErrorDetail = detail
}
