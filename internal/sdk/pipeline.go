package sdk

import (
	"sort"
	"time"

	"github.com/compresr/optiflow/internal/astparse"
	"github.com/compresr/optiflow/internal/compress"
	"github.com/compresr/optiflow/internal/model"
)

// PipelineStats reports what a Pipeline.Build run did.
type PipelineStats struct {
	StepsExecuted   int
	ItemsProcessed  int
	ExecutionTimeMs int64
	Errors          []string
}

type pipelineStep struct {
	name string
	run  func(items []any) ([]any, error)
}

// Pipeline is an immutable, chainable sequence of data-shaping steps
// over a list of items. Each combinator returns a new Pipeline value;
// the original is left untouched. Execution is deferred until Build.
type Pipeline struct {
	files    Files
	steps    []pipelineStep
	recovery func(err error) []any
}

// NewPipeline starts an empty pipeline rooted at the given Files
// bridge, used by Glob/Read steps to resolve paths.
func NewPipeline(files Files) Pipeline {
	return Pipeline{files: files}
}

func (p Pipeline) withStep(name string, run func(items []any) ([]any, error)) Pipeline {
	next := make([]pipelineStep, len(p.steps)+1)
	copy(next, p.steps)
	next[len(p.steps)] = pipelineStep{name: name, run: run}
	p.steps = next
	return p
}

// FromData seeds the pipeline with an in-memory slice instead of
// file-backed input.
func (p Pipeline) FromData(xs []any) Pipeline {
	return p.withStep("fromData", func([]any) ([]any, error) {
		out := make([]any, len(xs))
		copy(out, xs)
		return out, nil
	})
}

// Glob seeds the pipeline with paths matching pattern.
func (p Pipeline) Glob(pattern string) Pipeline {
	return p.withStep("glob", func([]any) ([]any, error) {
		matches, err := p.files.Glob(pattern)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(matches))
		for i, m := range matches {
			out[i] = m
		}
		return out, nil
	})
}

// Read maps each item (a path string) to its file content.
func (p Pipeline) Read() Pipeline {
	return p.withStep("read", func(items []any) ([]any, error) {
		out := make([]any, 0, len(items))
		for _, it := range items {
			path, ok := it.(string)
			if !ok {
				continue
			}
			content, err := p.files.Read(path)
			if err != nil {
				return nil, err
			}
			out = append(out, content)
		}
		return out, nil
	})
}

// Parse maps each item (source content string) to its parsed
// model.FileStructure, using path to resolve the language.
func (p Pipeline) Parse(path string) Pipeline {
	return p.withStep("parse", func(items []any) ([]any, error) {
		out := make([]any, 0, len(items))
		for _, it := range items {
			content, ok := it.(string)
			if !ok {
				continue
			}
			fs, err := astparse.ForPath(path).Parse(content)
			if err != nil {
				return nil, err
			}
			out = append(out, fs)
		}
		return out, nil
	})
}

// Filter keeps only items for which keep returns true.
func (p Pipeline) Filter(keep func(any) bool) Pipeline {
	return p.withStep("filter", func(items []any) ([]any, error) {
		out := items[:0:0]
		for _, it := range items {
			if keep(it) {
				out = append(out, it)
			}
		}
		return out, nil
	})
}

// Map transforms every item with fn.
func (p Pipeline) Map(fn func(any) any) Pipeline {
	return p.withStep("map", func(items []any) ([]any, error) {
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = fn(it)
		}
		return out, nil
	})
}

// FlatMap transforms every item into zero or more items and flattens.
func (p Pipeline) FlatMap(fn func(any) []any) Pipeline {
	return p.withStep("flatMap", func(items []any) ([]any, error) {
		var out []any
		for _, it := range items {
			out = append(out, fn(it)...)
		}
		return out, nil
	})
}

// Exclude drops items for which drop returns true.
func (p Pipeline) Exclude(drop func(any) bool) Pipeline {
	return p.Filter(func(x any) bool { return !drop(x) })
}

// Take keeps at most n leading items.
func (p Pipeline) Take(n int) Pipeline {
	return p.withStep("take", func(items []any) ([]any, error) {
		if n < len(items) {
			return items[:n], nil
		}
		return items, nil
	})
}

// Skip drops the first n items.
func (p Pipeline) Skip(n int) Pipeline {
	return p.withStep("skip", func(items []any) ([]any, error) {
		if n < len(items) {
			return items[n:], nil
		}
		return nil, nil
	})
}

// Sort orders items with less.
func (p Pipeline) Sort(less func(a, b any) bool) Pipeline {
	return p.withStep("sort", func(items []any) ([]any, error) {
		out := make([]any, len(items))
		copy(out, items)
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
		return out, nil
	})
}

// Unique deduplicates items by the string key returned by keyOf.
func (p Pipeline) Unique(keyOf func(any) string) Pipeline {
	return p.withStep("unique", func(items []any) ([]any, error) {
		seen := map[string]bool{}
		out := items[:0:0]
		for _, it := range items {
			k := keyOf(it)
			if !seen[k] {
				seen[k] = true
				out = append(out, it)
			}
		}
		return out, nil
	})
}

// Compress runs the generic compressor over every item, treating each
// as source text.
func (p Pipeline) Compress(opts compress.Options) Pipeline {
	return p.withStep("compress", func(items []any) ([]any, error) {
		out := make([]any, 0, len(items))
		for _, it := range items {
			content, ok := it.(string)
			if !ok {
				continue
			}
			out = append(out, compress.Generic(content, opts))
		}
		return out, nil
	})
}

// Tap runs fn for its side effects on every item and passes items
// through unchanged.
func (p Pipeline) Tap(fn func(any)) Pipeline {
	return p.withStep("tap", func(items []any) ([]any, error) {
		for _, it := range items {
			fn(it)
		}
		return items, nil
	})
}

// Recover registers a fallback invoked when the step immediately
// before this recover step fails, substituting its return value and
// letting Build continue with the remaining steps. A pipeline holds one
// fallback; a later Recover call replaces an earlier one.
func (p Pipeline) Recover(fallback func(err error) []any) Pipeline {
	p.recovery = fallback
	return p.withStep("recover", func(items []any) ([]any, error) {
		return items, nil
	})
}

// Build executes every registered step in order, returning the final
// item slice and run statistics, or the first step's error if no
// Recover step absorbed it.
func (p Pipeline) Build() ([]any, PipelineStats, error) {
	var items []any
	stats := PipelineStats{}
	start := time.Now()
	for i, step := range p.steps {
		if step.name == "recover" {
			stats.StepsExecuted++
			continue
		}
		next, err := step.run(items)
		if err != nil {
			stats.Errors = append(stats.Errors, err.Error())
			if p.recovery != nil && i+1 < len(p.steps) && p.steps[i+1].name == "recover" {
				items = p.recovery(err)
				stats.StepsExecuted++
				continue
			}
			stats.ExecutionTimeMs = time.Since(start).Milliseconds()
			return nil, stats, err
		}
		items = next
		stats.StepsExecuted++
	}
	stats.ItemsProcessed = len(items)
	stats.ExecutionTimeMs = time.Since(start).Milliseconds()
	return items, stats, nil
}

var _ = model.FileStructure{}
