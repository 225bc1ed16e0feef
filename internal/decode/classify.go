package decode

import "strings"

// isToolReportedError は stderr がツールのエラー報告かどうかを判定する。
//
// ipsw は INFO / WARN レベルのログも stderr に出すため、どちらかの部分文字列を
// 含む stderr はノイズとして無視する。判定は行単位ではなく stderr 全体に対する
// 部分一致なので、INFO 行と本物のエラー行が混在していても成功扱いになる。
func isToolReportedError(stderr string) bool {
	if stderr == "" {
		return false
	}
	return !strings.Contains(stderr, "INFO") && !strings.Contains(stderr, "WARN")
}
