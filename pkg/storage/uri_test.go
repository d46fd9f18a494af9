package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURIBarePath(t *testing.T) {
	u, err := ParseURI("some/relative/path")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(FileScheme))
	assert.True(t, filepath.IsAbs(u.Filepath()))
}

func TestParseURISchemes(t *testing.T) {
	u, err := ParseURI("s3://bucket/key")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(S3Scheme))
	assert.Equal(t, "s3://bucket/key", u.String())

	u, err = ParseURI(Stdin)
	require.NoError(t, err)
	assert.True(t, u.HasScheme(StdioScheme))
	assert.Equal(t, "/stdin", u.Path)

	u, err = ParseURI("https://example.com/obj")
	require.NoError(t, err)
	assert.True(t, u.HasScheme(HTTPSScheme))
}

func TestURIText(t *testing.T) {
	u := MustParseURI("s3://bucket/a/b")
	text, err := u.MarshalText()
	require.NoError(t, err)

	var back URI
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, *u, back)
}

func TestAppendPath(t *testing.T) {
	u := MustParseURI("s3://bucket/a")
	assert.Equal(t, "s3://bucket/a/b/c", u.AppendPath("b", "c").String())
	// The receiver is unchanged.
	assert.Equal(t, "s3://bucket/a", u.String())
}
