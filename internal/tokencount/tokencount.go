// Package tokencount estimates the number of LLM tokens a string would
// consume. It is the unit of accounting for every other component in
// the context optimization core: compressor stats, cache savings, and
// session counters all flow through Count, never through a character-
// or word-count substitute.
package tokencount

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
)

// encodingName is the fixed GPT-family BPE encoding used for every
// count. cl100k_base is shared by gpt-3.5/gpt-4-era models and is close
// enough to any modern coding-assistant tokenizer for budgeting
// purposes; what matters is that the encoding is fixed and
// deterministic, not which model it nominally belongs to.
const encodingName = "cl100k_base"

var (
	once     sync.Once
	encoding *tiktoken.Tiktoken
)

func encoder() *tiktoken.Tiktoken {
	once.Do(func() {
		enc, err := tiktoken.GetEncoding(encodingName)
		if err != nil {
			log.Warn().Err(err).Msg("tokencount: failed to load BPE encoding, falling back to estimate")
			encoding = nil
			return
		}
		encoding = enc
	})
	return encoding
}

// Count returns the number of tokens s would encode to. It is pure,
// deterministic, and safe to call concurrently - the underlying
// encoder is immutable after construction.
func Count(s string) int {
	if s == "" {
		return 0
	}
	enc := encoder()
	if enc == nil {
		return estimate(s)
	}
	return len(enc.Encode(s, nil, nil))
}

// estimate is the fallback used only if the BPE encoding failed to
// load. It is flagged distinctly from an exact count by IsEstimated.
func estimate(s string) int {
	n := len(s) / 4
	if n == 0 && s != "" {
		n = 1
	}
	return n
}

// IsEstimated reports whether Count is currently falling back to the
// character-ratio estimate rather than the real BPE encoder.
func IsEstimated() bool {
	return encoder() == nil
}
