package compress

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenericCollapsesSimilarLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString(fmt.Sprintf("processing item %d\n", 120+i))
	}
	res := Generic(b.String(), Options{Detail: DetailNormal})
	require.Contains(t, res.Compressed, "similar lines omitted")
	require.Less(t, res.Stats.CompressedLines, res.Stats.OriginalLines)
}

func TestGenericKeepsErrorLinesUngrouped(t *testing.T) {
	content := "error: something broke at 1\nerror: something broke at 2\n"
	res := Generic(content, Options{Detail: DetailNormal})
	require.Equal(t, 2, strings.Count(res.Compressed, "error:"))
}

func TestLogsOrdersErrorsFirst(t *testing.T) {
	content := "[INFO] starting up\n[ERROR] disk full\n[WARN] low memory\n"
	res := Logs(content, Options{Detail: DetailNormal})
	lines := strings.Split(res.Compressed, "\n")
	require.Contains(t, lines[0], "ERROR")
}

func TestStacktraceCollapsesInternalFrames(t *testing.T) {
	content := `Error: boom
    at Object.<anonymous> (/app/node_modules/foo/index.js:1:1)
    at Module._compile (internal/modules/cjs/loader.js:999:1)
    at Object.handler (/app/src/handler.js:10:5)
`
	res := Stacktrace(content, Options{Detail: DetailNormal})
	require.Contains(t, res.Compressed, "handler.js")
	require.Contains(t, res.Compressed, "internal frames omitted")
}

func TestDiffSummaryStrategy(t *testing.T) {
	content := `diff --git a/foo.go b/foo.go
index 111..222 100644
--- a/foo.go
+++ b/foo.go
@@ -1,2 +1,2 @@
-old line
+new line
`
	res := Diff(content, DiffSummary, 0, Options{})
	require.Contains(t, res.Compressed, "1 files changed")
	require.Contains(t, res.Compressed, "modified: foo.go")
}

func TestConfigCollapsesDeepJSON(t *testing.T) {
	content := `{"a":{"b":{"c":{"d":1}}}}`
	res := Config(content, Options{Detail: DetailMinimal})
	require.Contains(t, res.Compressed, "keys")
}

func TestConversationPreservesSystemAndTail(t *testing.T) {
	messages := []Message{
		{Role: "system", Content: "you are a helpful assistant"},
		{Role: "user", Content: "do thing one"},
		{Role: "assistant", Content: "I'll do thing one"},
		{Role: "user", Content: "do thing two"},
		{Role: "assistant", Content: "Created file x.go"},
	}
	out, _ := Conversation(messages, ConversationOptions{Strategy: ConvRollingSummary, PreserveSystem: true, KeepLastN: 2})
	require.Equal(t, "system", out[0].Role)
	require.Equal(t, "do thing two", out[len(out)-2].Content)
}
