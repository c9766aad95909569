package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "a@x.com/doc.pdf", Key("a@x.com", "doc.pdf"))
	assert.Equal(t, "_/doc.pdf", Key("..", "doc.pdf"))
	assert.Equal(t, ".._evil/_", Key("../evil", ""))
}

func TestNop(t *testing.T) {
	loc, err := Nop{}.Put(context.Background(), "a@x.com", "doc.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, loc)
}

func TestLocal_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	a, err := NewLocal(dir)
	require.NoError(t, err)

	loc, err := a.Put(context.Background(), "a@x.com", "doc.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a@x.com", "doc.pdf"), loc)

	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))

	loc2, err := a.Put(context.Background(), "a@x.com", "doc.pdf", []byte("v2"))
	require.NoError(t, err)
	assert.Equal(t, loc, loc2, "same owner and name overwrite")
}

func TestLocal_PutStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	a, err := NewLocal(dir)
	require.NoError(t, err)

	loc, err := a.Put(context.Background(), "../../etc", "passwd", []byte("x"))
	require.NoError(t, err)

	rel, err := filepath.Rel(dir, loc)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."+string(filepath.Separator)), "escaped archive dir: %s", rel)
	assert.Equal(t, filepath.Join(".._.._etc", "passwd"), rel)
}
