package uploader

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReader_Monotone(t *testing.T) {
	data := strings.Repeat("x", 1000)

	var seen []int
	pr := &progressReader{
		r:          strings.NewReader(data),
		total:      int64(len(data)),
		onProgress: func(pct int) { seen = append(seen, pct) },
	}

	buf := make([]byte, 100)
	for {
		_, err := pr.Read(buf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	require.NotEmpty(t, seen)
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1])
	}
	assert.Equal(t, 100, seen[len(seen)-1])
}

func TestProgressReader_ZeroTotal(t *testing.T) {
	called := false
	pr := &progressReader{
		r:          strings.NewReader(""),
		total:      0,
		onProgress: func(int) { called = true },
	}

	_, err := io.Copy(io.Discard, pr)
	require.NoError(t, err)
	assert.False(t, called)
}
