package sdk

import (
	"regexp"
	"strings"

	"github.com/compresr/optiflow/internal/compress"
	"github.com/compresr/optiflow/internal/model"
)

// Conversation is the `conversation` bridge surface: compress,
// createMemory, extractDecisions, extractCodeRefs.
type Conversation struct{}

func (Conversation) Compress(messages []compress.Message, opts compress.ConversationOptions) ([]compress.Message, model.CompressionStats) {
	return compress.Conversation(messages, opts)
}

// CreateMemory builds a single persistent-memory string out of a
// message transcript, for priming a fresh context window.
func (Conversation) CreateMemory(messages []compress.Message) string {
	var b strings.Builder
	b.WriteString("## Session memory\n")
	for _, d := range Conversation{}.ExtractDecisions(messages) {
		b.WriteString("- ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	refs := Conversation{}.ExtractCodeRefs(messages)
	if len(refs) > 0 {
		b.WriteString("## Files referenced\n")
		for _, r := range refs {
			b.WriteString("- ")
			b.WriteString(r)
			b.WriteString("\n")
		}
	}
	return b.String()
}

var decisionRe = regexp.MustCompile(`(?i)\b(decided|will use|should|must|chose|going with)\b`)

// ExtractDecisions pulls lines that read like a decision was made.
func (Conversation) ExtractDecisions(messages []compress.Message) []string {
	var out []string
	for _, m := range messages {
		for _, line := range strings.Split(m.Content, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && decisionRe.MatchString(line) {
				out = append(out, line)
			}
		}
	}
	return out
}

var codeRefRe = regexp.MustCompile(`[A-Za-z0-9_./-]+\.[A-Za-z]{1,5}(?::\d+)?`)

// ExtractCodeRefs pulls file-path-like tokens out of the transcript.
func (Conversation) ExtractCodeRefs(messages []compress.Message) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range messages {
		for _, match := range codeRefRe.FindAllString(m.Content, -1) {
			if !seen[match] {
				seen[match] = true
				out = append(out, match)
			}
		}
	}
	return out
}
