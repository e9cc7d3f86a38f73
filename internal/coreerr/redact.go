package coreerr

import "strings"

// Redact strips the working-directory prefix from diagnostic strings
// before they become user-visible, per the core's error-handling design:
// stack traces and absolute file paths must not leak the host filesystem
// layout into a tool's isError text.
func Redact(workingDir, s string) string {
	if workingDir == "" || s == "" {
		return s
	}
	return strings.ReplaceAll(s, workingDir, ".")
}
