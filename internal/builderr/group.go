package builderr

import (
	"regexp"
	"sort"
	"strings"

	"github.com/compresr/optiflow/internal/model"
)

var (
	quotedString = regexp.MustCompile(`'[^']*'|"[^"]*"|` + "`[^`]*`")
	numberRun    = regexp.MustCompile(`\d+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

const maxSignatureLen = 100
const maxAffectedFiles = 3
const maxSamples = 3

// normalize folds out the volatile parts of a message — quoted
// identifiers and numeric literals — so that errors differing only in
// a type name or line number still collapse to one signature.
func normalize(s string) string {
	s = quotedString.ReplaceAllString(s, "'X'")
	s = numberRun.ReplaceAllString(s, "N")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > maxSignatureLen {
		s = s[:maxSignatureLen]
	}
	return s
}

func signatureOf(code, message string) string {
	return normalize(code) + ":" + normalize(message)
}

// Group deduplicates raw findings into ErrorGroups: identical
// signatures merge, the first occurrence's location is kept, affected
// files are set-unioned, and at most maxSamples raw samples survive
// per group. Groups are returned sorted by count descending.
func Group(errs []ParsedError) []model.ErrorGroup {
	order := make([]string, 0, len(errs))
	byKey := make(map[string]*model.ErrorGroup, len(errs))
	filesSeen := make(map[string]map[string]bool, len(errs))

	for _, e := range errs {
		file := e.File
		if strings.TrimSpace(file) == "" {
			file = "unknown"
		}
		sig := signatureOf(e.Code, e.Message)

		g, ok := byKey[sig]
		if !ok {
			g = &model.ErrorGroup{
				Signature: sig,
				Code:      e.Code,
				Message:   e.Message,
				Severity:  e.Severity,
				First:     model.Location{File: file, Line: e.Line},
			}
			byKey[sig] = g
			filesSeen[sig] = map[string]bool{}
			order = append(order, sig)
		}

		g.Count++
		if !filesSeen[sig][file] {
			filesSeen[sig][file] = true
			g.AffectedFiles = append(g.AffectedFiles, file)
		}
		if len(g.Samples) < maxSamples {
			g.Samples = append(g.Samples, e.Raw)
		}
	}

	out := make([]model.ErrorGroup, 0, len(order))
	for _, sig := range order {
		g := *byKey[sig]
		sort.Strings(g.AffectedFiles)
		if len(g.AffectedFiles) > maxAffectedFiles {
			g.ExtraFileCount = len(g.AffectedFiles) - maxAffectedFiles
			g.AffectedFiles = g.AffectedFiles[:maxAffectedFiles]
		}
		out = append(out, g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// ParseAndGroup is the component's single entry point: parse raw
// toolchain output, then group the findings.
func ParseAndGroup(output string, toolchain Toolchain) []model.ErrorGroup {
	return Group(Parse(output, toolchain))
}
