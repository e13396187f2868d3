package ocr

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// sanitizeTranscript normalizes an engine transcript: NFKC fold, strip
// non-printables except newline/space, trim each line, and drop trailing
// blank lines while keeping internal ones (they carry block structure).
func sanitizeTranscript(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var b strings.Builder
	for _, r := range text {
		if r == '\n' || r == '\t' || (r >= 0x20 && r <= 0x7E) {
			b.WriteRune(r)
		}
	}
	lines := strings.Split(b.String(), "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSpace(ln)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// snippet returns a shortened version of text for logging.
func snippet(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
