package decode

// IsToolReportedErrorForTest は isToolReportedError をテストから呼べるようにエクスポートする。
func IsToolReportedErrorForTest(stderr string) bool {
	return isToolReportedError(stderr)
}

// WriteOutputForTest は writeOutput をテストから呼べるようにエクスポートする。
func WriteOutputForTest(path string, data []byte, atomic bool) error {
	return writeOutput(path, data, atomic)
}
