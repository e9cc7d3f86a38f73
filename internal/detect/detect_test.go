package detect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectDiff(t *testing.T) {
	in := "diff --git a/foo.go b/foo.go\n@@ -1,3 +1,4 @@\n+added line\n"
	require.Equal(t, TypeDiff, Detect(in, ""))
}

func TestDetectStacktraceJS(t *testing.T) {
	in := "Error: boom\n    at Object.<anonymous> (/app/index.js:10:5)\n    at Module._compile (node:internal/modules/cjs/loader:1105:14)\n"
	require.Equal(t, TypeStacktrace, Detect(in, ""))
}

func TestDetectStacktraceGo(t *testing.T) {
	in := "panic: runtime error\n\ngoroutine 1 [running]:\nmain.main()\n\t/app/main.go:10 +0x25\n"
	require.Equal(t, TypeStacktrace, Detect(in, ""))
}

func TestDetectLogs(t *testing.T) {
	in := "2024-01-01T10:00:00 [INFO] server started\n2024-01-01T10:00:01 [ERROR] connection refused\nplain line\n"
	require.Equal(t, TypeLogs, Detect(in, ""))
}

func TestDetectConfigJSON(t *testing.T) {
	require.Equal(t, TypeConfig, Detect(`{"a": 1, "b": 2}`, ""))
}

func TestDetectConfigYAMLish(t *testing.T) {
	in := "name: foo\nversion: 1.0\nenabled: true\n"
	require.Equal(t, TypeConfig, Detect(in, ""))
}

func TestDetectCodeByExtension(t *testing.T) {
	require.Equal(t, TypeCode, Detect("const x = 1", "foo.ts"))
}

func TestDetectCodeByKeyword(t *testing.T) {
	require.Equal(t, TypeCode, Detect("function foo() { return 1 }", ""))
}

func TestDetectGenericFallback(t *testing.T) {
	require.Equal(t, TypeGeneric, Detect("just some plain prose about nothing in particular", ""))
}

func TestDetectIsTotal(t *testing.T) {
	inputs := []string{"", " ", "\n\n\n", "random text 123", "a: b\nc d e"}
	for _, in := range inputs {
		got := Detect(in, "")
		require.NotEmpty(t, got)
	}
}
