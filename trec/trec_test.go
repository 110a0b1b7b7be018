package trec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocmap(t *testing.T) {
	docs, err := LoadDocmap(strings.NewReader("GX000-00-0000000\nGX000-00-0000001\nGX000-01-0000000\n"))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "GX000-01-0000000", docs[2])
}

func TestWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "Q0", "R0")

	require.NoError(t, w.WriteResult("703", "GX000-00-0000000", 0, 12.5))
	require.NoError(t, w.WriteResult("703", "GX000-00-0000001", 1, 7.25))
	require.NoError(t, w.Flush())

	want := "703\tQ0\tGX000-00-0000000\t0\t12.500000\tR0\n" +
		"703\tQ0\tGX000-00-0000001\t1\t7.250000\tR0\n"
	assert.Equal(t, want, buf.String())
}

func TestWriterBuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, "Q0", "R0")

	require.NoError(t, w.WriteResult("1", "d", 0, 1))
	require.NoError(t, w.Flush())
	assert.Equal(t, "1\tQ0\td\t0\t1.000000\tR0\n", buf.String())
}
