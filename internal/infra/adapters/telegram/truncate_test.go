package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	short := "halo"
	assert.Equal(t, short, Truncate(short))

	exact := strings.Repeat("a", maxMessageLen)
	assert.Equal(t, exact, Truncate(exact))

	long := strings.Repeat("b", maxMessageLen+500)
	got := Truncate(long)
	assert.Equal(t, maxMessageLen+1, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestTruncateRuneSafe(t *testing.T) {
	long := strings.Repeat("📡", maxMessageLen+10)
	got := []rune(Truncate(long))
	assert.Equal(t, maxMessageLen+1, len(got))
	assert.Equal(t, '…', got[maxMessageLen])
}
