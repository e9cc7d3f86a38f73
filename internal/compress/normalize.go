package compress

import (
	"regexp"
	"strings"
)

var (
	digitsRe  = regexp.MustCompile(`\d+`)
	hexRunRe  = regexp.MustCompile(`\b[0-9a-fA-F]{6,}\b`)
	wsRe      = regexp.MustCompile(`\s+`)
	ipRe      = regexp.MustCompile(`\b\d{1,3}(\.\d{1,3}){3}\b`)
	durationRe = regexp.MustCompile(`\b\d+(\.\d+)?(ms|s|m|h)\b`)
	quotedRe  = regexp.MustCompile(`'[^']*'|"[^"]*"`)
	uuidRe    = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)
	pathRe    = regexp.MustCompile(`(?:/[\w.\-]+)+`)
	urlRe     = regexp.MustCompile(`https?://[^\s]+`)
	emailRe   = regexp.MustCompile(`\b[\w.\-]+@[\w.\-]+\.\w+\b`)
	timestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:?\d{2})?`)
)

// normalizeGeneric applies the Generic compressor's placeholder set:
// digits -> N, hex runs -> HASH, whitespace collapsed.
func normalizeGeneric(line string) string {
	s := hexRunRe.ReplaceAllString(line, "HASH")
	s = digitsRe.ReplaceAllString(s, "N")
	s = wsRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalizeLog applies Generic's placeholders plus IP, duration, and
// quoted-string substitution, used by the Logs compressor.
func normalizeLog(line string) string {
	s := ipRe.ReplaceAllString(line, "IP")
	s = durationRe.ReplaceAllString(s, "DURATION")
	s = quotedRe.ReplaceAllString(s, "'X'")
	s = hexRunRe.ReplaceAllString(s, "HASH")
	s = digitsRe.ReplaceAllString(s, "N")
	s = wsRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// placeholderize substitutes variable-looking spans in the order
// required by the CFTL extractor: UUID, IP, HASH, TIMESTAMP, PATH,
// URL, EMAIL, STRING, NUM.
func placeholderize(s string) string {
	s = uuidRe.ReplaceAllString(s, "<UUID>")
	s = ipRe.ReplaceAllString(s, "<IP>")
	s = hexRunRe.ReplaceAllString(s, "<HASH>")
	s = timestampRe.ReplaceAllString(s, "<TIMESTAMP>")
	s = pathRe.ReplaceAllString(s, "<PATH>")
	s = urlRe.ReplaceAllString(s, "<URL>")
	s = emailRe.ReplaceAllString(s, "<EMAIL>")
	s = quotedRe.ReplaceAllString(s, "<STRING>")
	s = digitsRe.ReplaceAllString(s, "<NUM>")
	return wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
}
