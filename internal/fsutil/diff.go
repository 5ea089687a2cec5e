package fsutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// DefaultDiffMaxLines caps previews printed before a file is replaced.
const DefaultDiffMaxLines = 40

// PreviewReplace returns a unified diff between the file currently at path
// and next. It returns "" when the file is missing, unreadable, or unchanged.
func PreviewReplace(path string, next []byte, maxLines int) string {
	current, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return UnifiedDiff(path, current, next, maxLines)
}

// UnifiedDiff renders a truncated unified diff of current against next.
func UnifiedDiff(path string, current []byte, next []byte, maxLines int) string {
	if string(current) == string(next) {
		return ""
	}
	if maxLines <= 0 {
		maxLines = DefaultDiffMaxLines
	}
	diff := udiff.Unified(path+" (installed)", path+" (new)", string(current), string(next))
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], fmt.Sprintf("... (truncated to %d lines)", maxLines))
	}
	return strings.Join(lines, "\n") + "\n"
}
