package tui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/0x6d61/plistdecode/internal/decode"
)

// OpenActionLabel は成功時に提示する「開く」アクションのラベル。
const OpenActionLabel = "Open Decoded File"

// SuccessMessage は成功通知の本文。
func SuccessMessage(res decode.Result) string {
	return fmt.Sprintf("Plist decoded successfully to %s", filepath.Base(res.OutputPath))
}

// FailureMessage は失敗通知の本文。
func FailureMessage(res decode.Result) string {
	return "Failed to decode plist: " + res.ErrorDetail
}

// PreconditionMessage は事前条件違反（対象なし・拡張子違い・ファイルなし）の通知本文。
func PreconditionMessage(err error) string {
	return err.Error()
}

// PrintResult は TUI を使わないモードで結果を w に書き出す。
// open が true で成功した場合はデコード済みファイルの中身も続けて出力する。
func PrintResult(w io.Writer, res decode.Result, open bool) error {
	if !res.Success {
		_, err := fmt.Fprintln(w, FailureMessage(res))
		return err
	}
	if _, err := fmt.Fprintln(w, SuccessMessage(res)); err != nil {
		return err
	}
	if !open {
		return nil
	}
	data, err := readDecoded(res.OutputPath)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
