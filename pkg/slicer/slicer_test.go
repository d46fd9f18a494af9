package slicer

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accreader "github.com/netvl/acc-reader"
)

func TestReader(t *testing.T) {
	// The slices deliberately jump backward; the accumulating reader
	// underneath makes that possible over a forward-only source.
	source := accreader.New(strings.NewReader("0123456789"))
	r, err := NewReader(source, []Slice{
		{Offset: 6, Length: 2},
		{Offset: 1, Length: 3},
		{Offset: 8, Length: 2},
	})
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "6712389", string(out))
}

func TestOverlaps(t *testing.T) {
	s := Slice{Offset: 10, Length: 5}
	assert.True(t, s.Overlaps(Slice{Offset: 12, Length: 2}))
	assert.False(t, s.Overlaps(Slice{Offset: 3, Length: 2}))
}
