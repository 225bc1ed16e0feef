package decode

// Reporter は進捗通知の受け手。percent は 0 / 50 / 100 の目安値で、
// 実際の処理量とは連動しない。
type Reporter interface {
	Report(percent int, message string)
}

// ReporterFunc は関数を Reporter として使うためのアダプタ。
type ReporterFunc func(percent int, message string)

// Report implements Reporter.
func (f ReporterFunc) Report(percent int, message string) { f(percent, message) }

type nopReporter struct{}

func (nopReporter) Report(int, string) {}

// 進捗メッセージ
const (
	MsgRunning = "Running ipsw decode..."
	MsgWriting = "Writing decoded output..."
	MsgDone    = "Complete!"
)
