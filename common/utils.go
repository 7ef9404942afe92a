package common

// TruncateString keeps upstream error bodies readable in diagnostics without
// dumping whole responses into logs or API replies.
func TruncateString(s string, maxLength int) string {
	if maxLength <= 0 || len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "...(truncated)"
}
