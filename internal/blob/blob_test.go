package blob

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	ref, err := s.Put(ctx, "schemas/one/document", []byte("payload"))
	require.NoError(t, err)

	data, err := s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, s.Delete(ctx, ref))

	// Deleting again is a no-op.
	require.NoError(t, s.Delete(ctx, ref))

	_, err = s.Get(ctx, ref)
	assert.Error(t, err)
}

func TestListNewest(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	for _, name := range []string{"a.sample", "b.sample", "c.sample"} {
		_, err := s.Put(ctx, "examples/x/"+name, []byte(name))
		require.NoError(t, err)
	}

	refs, err := s.ListNewest(ctx, "examples/x", 2)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	// Newest first; ties fall back to the lexically larger URL.
	assert.True(t, strings.HasSuffix(refs[0], "c.sample"), refs[0])
	assert.True(t, strings.HasSuffix(refs[1], "b.sample"), refs[1])
}

func TestListNewestMissingPrefix(t *testing.T) {
	s := New(t.TempDir())

	refs, err := s.ListNewest(context.Background(), "examples/none", 3)
	require.NoError(t, err)
	assert.Empty(t, refs)
}
