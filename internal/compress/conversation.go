package compress

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/compresr/optiflow/internal/model"
)

// ConversationStrategy selects how the Conversation compressor folds
// dropped messages into one synthesized summary message.
type ConversationStrategy string

const (
	ConvRollingSummary ConversationStrategy = "rolling-summary"
	ConvKeyExtraction  ConversationStrategy = "key-extraction"
	ConvHybrid         ConversationStrategy = "hybrid"
)

// Message mirrors a single turn in a conversation transcript.
type Message struct {
	Role    string // "system" | "user" | "assistant"
	Content string
}

// ConversationOptions configures the Conversation compressor.
type ConversationOptions struct {
	Strategy        ConversationStrategy
	PreserveSystem  bool
	KeepLastN       int
}

var (
	assistantLeadRe = regexp.MustCompile(`^(I |I'll |Created |Fixed |Added |Updated |Removed |Implemented )`)
	importanceRe    = regexp.MustCompile(`(?i)decided|will use|should|must|critical`)
	backtickRe      = regexp.MustCompile("`[^`]+`")
	bulletRe        = regexp.MustCompile(`^\s*([-*]|\d+\.)\s+`)
	fileExtRe       = regexp.MustCompile(`\.\w{1,5}\b`)
)

// Conversation keeps system messages (when requested) and the last N
// messages verbatim, replacing everything else with one synthesized
// system-role summary message produced by the chosen strategy.
func Conversation(messages []Message, opts ConversationOptions) (compressed []Message, stats model.CompressionStats) {
	keepLastN := opts.KeepLastN
	if keepLastN <= 0 {
		keepLastN = 5
	}

	var preserved []Message
	var middle []Message
	tailStart := len(messages) - keepLastN
	if tailStart < 0 {
		tailStart = 0
	}

	for i, m := range messages {
		if opts.PreserveSystem && m.Role == "system" {
			preserved = append(preserved, m)
			continue
		}
		if i >= tailStart {
			continue
		}
		middle = append(middle, m)
	}

	var summaryText string
	switch opts.Strategy {
	case ConvKeyExtraction:
		summaryText = keyExtraction(middle)
	case ConvHybrid:
		summaryText = rollingSummary(middle) + "\n" + keyExtraction(middle)
	default:
		summaryText = rollingSummary(middle)
	}

	out := append([]Message{}, preserved...)
	if summaryText != "" {
		out = append(out, Message{Role: "system", Content: summaryText})
	}
	out = append(out, messages[tailStart:]...)

	orig := joinMessages(messages)
	comp := joinMessages(out)
	r := buildResult(orig, comp, "conversation:"+string(opts.Strategy))
	return out, r.Stats
}

func rollingSummary(messages []Message) string {
	var lines []string
	for _, m := range messages {
		switch m.Role {
		case "user":
			if first := firstMeaningfulLine(m.Content); first != "" {
				lines = append(lines, "User: "+first)
			}
		case "assistant":
			first := firstMeaningfulLine(m.Content)
			if assistantLeadRe.MatchString(first) {
				lines = append(lines, "Assistant: "+first)
			}
		}
	}
	refs := fileReferences(messages)
	if len(refs) > 0 {
		lines = append(lines, "Files referenced: "+strings.Join(refs, ", "))
	}
	return strings.Join(lines, "\n")
}

func keyExtraction(messages []Message) string {
	var bullets []string
	for _, m := range messages {
		for _, line := range splitLines(m.Content) {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if importanceRe.MatchString(trimmed) || backtickRe.MatchString(trimmed) ||
				bulletRe.MatchString(trimmed) || fileExtRe.MatchString(trimmed) || strings.Contains(trimmed, "http") {
				bullets = append(bullets, "- "+trimmed)
			}
		}
	}
	return strings.Join(bullets, "\n")
}

func firstMeaningfulLine(content string) string {
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func fileReferences(messages []Message) []string {
	seen := map[string]bool{}
	var out []string
	pathLike := regexp.MustCompile(`[\w./\-]+\.\w{1,5}\b`)
	for _, m := range messages {
		for _, match := range pathLike.FindAllString(m.Content, -1) {
			if !seen[match] {
				seen[match] = true
				out = append(out, match)
			}
		}
	}
	return out
}

func joinMessages(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&b, "[%s] %s\n", m.Role, m.Content)
	}
	return b.String()
}
