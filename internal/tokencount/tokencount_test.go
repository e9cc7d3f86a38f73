package tokencount

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountEmpty(t *testing.T) {
	require.Equal(t, 0, Count(""))
}

func TestCountDeterministic(t *testing.T) {
	s := "func main() { fmt.Println(\"hello world\") }"
	a := Count(s)
	b := Count(s)
	require.Equal(t, a, b)
	require.Greater(t, a, 0)
}

func TestCountMonotonicWithLength(t *testing.T) {
	short := "hello"
	long := strings.Repeat("hello world ", 50)
	require.Greater(t, Count(long), Count(short))
}

func TestCountConcurrentSafe(t *testing.T) {
	done := make(chan int, 16)
	for i := 0; i < 16; i++ {
		go func() {
			done <- Count("concurrent access to the shared encoder must not race")
		}()
	}
	for i := 0; i < 16; i++ {
		require.Greater(t, <-done, 0)
	}
}
