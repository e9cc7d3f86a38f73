package sdk

import (
	"regexp"

	"github.com/compresr/optiflow/internal/astparse"
	"github.com/compresr/optiflow/internal/coreerr"
	"github.com/compresr/optiflow/internal/model"
)

// Search is the `search` bridge surface: grep, symbols, files,
// references, all operating over caller-supplied in-memory content.
type Search struct{}

// Match is one grep hit.
type Match struct {
	Path string
	Line int
	Text string
}

// Grep runs a regular-expression search across path->content pairs.
func (Search) Grep(pattern string, files map[string]string) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.KindInvalidRegex, err, "invalid regex: %v", err)
	}
	var out []Match
	for path, content := range files {
		for i, line := range splitLines(content) {
			if re.MatchString(line) {
				out = append(out, Match{Path: path, Line: i + 1, Text: line})
			}
		}
	}
	return out, nil
}

// Symbols returns every parsed declaration across path->content pairs.
func (Search) Symbols(files map[string]string) (map[string][]model.CodeElement, error) {
	out := make(map[string][]model.CodeElement, len(files))
	for path, content := range files {
		fs, err := astparse.ForPath(path).Parse(content)
		if err != nil {
			return nil, err
		}
		out[path] = fs.AllElements()
	}
	return out, nil
}

// Files matches path names against a glob pattern from a candidate set.
func (Search) Files(pattern string, candidates []string) ([]string, error) {
	re, err := globToRegexp(pattern)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, c := range candidates {
		if re.MatchString(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// References finds every line across files referencing name as a
// whole word (a `\b`-bounded match), a cheap cross-file usage search.
func (Search) References(name string, files map[string]string) ([]Match, error) {
	return Search{}.Grep(`\b`+regexp.QuoteMeta(name)+`\b`, files)
}

var (
	globDoubleStarRe = regexp.MustCompile(`\\\*\\\*`)
	globStarRe       = regexp.MustCompile(`\\\*`)
)

func globToRegexp(pattern string) (*regexp.Regexp, error) {
	escaped := regexp.QuoteMeta(pattern)
	escaped = globDoubleStarRe.ReplaceAllString(escaped, `.*`)
	escaped = globStarRe.ReplaceAllString(escaped, `[^/]*`)
	return regexp.Compile("^" + escaped + "$")
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
