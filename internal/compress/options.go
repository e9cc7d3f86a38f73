// Package compress implements one compressor per content shape
// (generic, logs, stacktrace, diff, config, conversation), each
// producing a uniform model.CompressedResult.
package compress

import "regexp"

// Detail is the requested aggressiveness of a compression pass.
type Detail string

const (
	DetailMinimal  Detail = "minimal"
	DetailNormal   Detail = "normal"
	DetailDetailed Detail = "detailed"
)

// Options is shared across every compressor.
type Options struct {
	Detail          Detail
	PreservePattern []*regexp.Regexp // matching lines are never merged or dropped
}

func (o Options) preserved(line string) bool {
	for _, re := range o.PreservePattern {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// groupThreshold returns the minimum run length before a group of
// identical normalized lines collapses into a representative + omitted
// count, per detail level.
func (o Options) groupThreshold() int {
	switch o.Detail {
	case DetailMinimal:
		return 2
	case DetailDetailed:
		return 5
	default:
		return 3
	}
}

var errorKeyword = regexp.MustCompile(`error|Error|ERROR|fail|fatal|warn|Warning`)
