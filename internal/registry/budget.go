package registry

import (
	"encoding/json"

	"github.com/compresr/optiflow/internal/coreerr"
	"github.com/compresr/optiflow/internal/tokencount"
)

// DescribeAll serializes the tool listing and asserts it against a
// token budget.
func (r *Registry) DescribeAll(maxTokens int) (string, error) {
	listing := r.List()
	b, err := json.Marshal(listing)
	if err != nil {
		return "", coreerr.Wrap(coreerr.KindCompressFailed, err, "describe-all marshal failed: %v", err)
	}
	serialized := string(b)
	tokens := tokencount.Count(serialized)
	if maxTokens > 0 && tokens > maxTokens {
		return serialized, coreerr.New(coreerr.KindInvalidRatio,
			"tool listing exceeds token budget")
	}
	return serialized, nil
}
