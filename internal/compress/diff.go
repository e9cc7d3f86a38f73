package compress

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/compresr/optiflow/internal/model"
	"github.com/compresr/optiflow/internal/tfidf"
	"github.com/compresr/optiflow/internal/tokencount"
)

// DiffStrategy selects how the Diff compressor renders a parsed diff.
type DiffStrategy string

const (
	DiffHunksOnly DiffStrategy = "hunks-only"
	DiffSummary   DiffStrategy = "summary"
	DiffSemantic  DiffStrategy = "semantic"
)

// FileStatus is a unified-diff file-level change classification.
type FileStatus string

const (
	StatusModified FileStatus = "modified"
	StatusAdded    FileStatus = "added"
	StatusDeleted  FileStatus = "deleted"
	StatusRenamed  FileStatus = "renamed"
)

// Hunk is one `@@ ... @@` unified-diff section.
type Hunk struct {
	Header    string
	Lines     []string
	Additions int
	Deletions int
}

// FileDiff is one file's parsed unified-diff record.
type FileDiff struct {
	OldPath   string
	NewPath   string
	Status    FileStatus
	IsBinary  bool
	Hunks     []Hunk
	Additions int
	Deletions int
}

var (
	diffGitRe    = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	oldPathRe    = regexp.MustCompile(`^--- (?:a/)?(.+)$`)
	newPathRe    = regexp.MustCompile(`^\+\+\+ (?:b/)?(.+)$`)
	hunkRe       = regexp.MustCompile(`^@@ .+ @@.*$`)
	binaryRe     = regexp.MustCompile(`^Binary files .+ differ$`)
	renameFromRe = regexp.MustCompile(`^rename from (.+)$`)
	renameToRe   = regexp.MustCompile(`^rename to (.+)$`)
	newFileRe    = regexp.MustCompile(`^new file mode`)
	deletedFileRe = regexp.MustCompile(`^deleted file mode`)
)

// ParseUnifiedDiff parses a GNU diff / git diff dialect unified diff
// into per-file records, recognizing binary markers and rename
// detection via `rename from`/`rename to`; `similarity index` lines
// are not used.
func ParseUnifiedDiff(content string) []FileDiff {
	lines := splitLines(content)
	var files []FileDiff
	var cur *FileDiff
	var curHunk *Hunk

	flushHunk := func() {
		if cur != nil && curHunk != nil {
			cur.Hunks = append(cur.Hunks, *curHunk)
			curHunk = nil
		}
	}
	flushFile := func() {
		flushHunk()
		if cur != nil {
			files = append(files, *cur)
			cur = nil
		}
	}

	for _, line := range lines {
		switch {
		case diffGitRe.MatchString(line):
			flushFile()
			m := diffGitRe.FindStringSubmatch(line)
			cur = &FileDiff{OldPath: m[1], NewPath: m[2], Status: StatusModified}
		case cur == nil:
			continue
		case newFileRe.MatchString(line):
			cur.Status = StatusAdded
		case deletedFileRe.MatchString(line):
			cur.Status = StatusDeleted
		case renameFromRe.MatchString(line):
			cur.Status = StatusRenamed
			cur.OldPath = renameFromRe.FindStringSubmatch(line)[1]
		case renameToRe.MatchString(line):
			cur.Status = StatusRenamed
			cur.NewPath = renameToRe.FindStringSubmatch(line)[1]
		case binaryRe.MatchString(line):
			cur.IsBinary = true
		case oldPathRe.MatchString(line):
			cur.OldPath = oldPathRe.FindStringSubmatch(line)[1]
		case newPathRe.MatchString(line):
			cur.NewPath = newPathRe.FindStringSubmatch(line)[1]
		case hunkRe.MatchString(line):
			flushHunk()
			curHunk = &Hunk{Header: line}
		case curHunk != nil:
			curHunk.Lines = append(curHunk.Lines, line)
			if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
				curHunk.Additions++
				cur.Additions++
			} else if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
				curHunk.Deletions++
				cur.Deletions++
			}
		}
	}
	flushFile()
	return files
}

// Diff renders a parsed unified diff under one of three strategies.
func Diff(content string, strategy DiffStrategy, maxTokens int, opts Options) model.CompressedResult {
	files := ParseUnifiedDiff(content)

	var compressed string
	switch strategy {
	case DiffSummary:
		compressed = renderSummary(files)
	case DiffSemantic:
		if maxTokens <= 0 {
			maxTokens = tokencount.Count(content) / 2
		}
		compressed = renderSemantic(files, maxTokens)
	default:
		compressed = renderHunksOnly(files, opts)
	}

	return buildResult(content, compressed, "diff:"+string(strategy))
}

func renderSummary(files []FileDiff) string {
	byStatus := map[FileStatus][]string{}
	adds, dels := 0, 0
	for _, f := range files {
		byStatus[f.Status] = append(byStatus[f.Status], f.NewPath)
		adds += f.Additions
		dels += f.Deletions
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d files changed, %d additions, %d deletions\n", len(files), adds, dels)
	for _, status := range []FileStatus{StatusAdded, StatusModified, StatusDeleted, StatusRenamed} {
		paths := byStatus[status]
		if len(paths) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", status, strings.Join(paths, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHunksOnly(files []FileDiff, opts Options) string {
	contextLines := 3
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", f.OldPath, f.NewPath)
		if f.IsBinary {
			b.WriteString("Binary files differ\n")
			continue
		}
		for _, h := range f.Hunks {
			b.WriteString(h.Header + "\n")
			for i, l := range h.Lines {
				if strings.HasPrefix(l, "+") || strings.HasPrefix(l, "-") || withinContext(h.Lines, i, contextLines) {
					b.WriteString(l + "\n")
				}
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func withinContext(lines []string, i, contextLines int) bool {
	for d := 1; d <= contextLines; d++ {
		if i-d >= 0 && (strings.HasPrefix(lines[i-d], "+") || strings.HasPrefix(lines[i-d], "-")) {
			return true
		}
		if i+d < len(lines) && (strings.HasPrefix(lines[i+d], "+") || strings.HasPrefix(lines[i+d], "-")) {
			return true
		}
	}
	return false
}

type scoredHunk struct {
	file  string
	hunk  Hunk
	score float64
}

var (
	errKeywordRe = regexp.MustCompile(`error|exception|fail|throw|panic`)
	defRe        = regexp.MustCompile(`\b(func|function|class|type|def|struct|interface)\b`)
	testPathRe   = regexp.MustCompile(`(_test\.|test_|\.test\.|/tests?/)`)
)

// renderSemantic ranks hunks by TF-IDF score plus heuristic boosts and
// greedily packs the highest scoring ones into maxTokens.
func renderSemantic(files []FileDiff, maxTokens int) string {
	var docs []string
	var hunks []scoredHunk
	for _, f := range files {
		for _, h := range f.Hunks {
			docs = append(docs, strings.Join(h.Lines, "\n"))
			hunks = append(hunks, scoredHunk{file: f.NewPath, hunk: h})
		}
	}
	scores := tfidf.Scores(docs)

	for i := range hunks {
		text := docs[i]
		score := scores[i]
		if errKeywordRe.MatchString(text) {
			score += 0.3
		}
		if defRe.MatchString(text) {
			score += 0.2
		}
		if testPathRe.MatchString(hunks[i].file) {
			score -= 0.1
		}
		magnitude := float64(hunks[i].hunk.Additions+hunks[i].hunk.Deletions) / 50
		if magnitude > 0.2 {
			magnitude = 0.2
		}
		score += magnitude
		hunks[i].score = score
	}

	sort.SliceStable(hunks, func(i, j int) bool { return hunks[i].score > hunks[j].score })

	var b strings.Builder
	budget := maxTokens
	lastFile := ""
	for _, sh := range hunks {
		block := sh.hunk.Header + "\n" + strings.Join(sh.hunk.Lines, "\n") + "\n"
		cost := tokencount.Count(block)
		if budget-cost < 0 && b.Len() > 0 {
			continue
		}
		if sh.file != lastFile {
			fmt.Fprintf(&b, "--- %s ---\n", sh.file)
			lastFile = sh.file
		}
		b.WriteString(block)
		budget -= cost
	}
	return strings.TrimRight(b.String(), "\n")
}
