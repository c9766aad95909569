// Package archive keeps a copy of every uploaded document that produced a
// new cache record, either on local disk or in an S3-compatible bucket.
package archive

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/filex"
)

type Archive interface {
	// Put stores content under owner/name and returns where it went.
	Put(ctx context.Context, owner, name string, content []byte) (string, error)
}

// Key is the object key for an owner's document.
func Key(owner, name string) string {
	return path.Join(clean(owner), clean(name))
}

// clean keeps a key element inside its directory.
func clean(s string) string {
	s = strings.NewReplacer("/", "_", `\`, "_").Replace(s)
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}

// Nop discards everything.
type Nop struct{}

func (Nop) Put(context.Context, string, string, []byte) (string, error) {
	return "", nil
}

// Local writes documents below a directory.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &Local{dir: abs}, nil
}

func (l *Local) Put(_ context.Context, owner, name string, content []byte) (string, error) {
	dst := filepath.Join(l.dir, filepath.FromSlash(Key(owner, name)))
	if err := filex.EnsureParentDir(dst); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, content, 0o640); err != nil {
		return "", fmt.Errorf("archive write: %w", err)
	}
	return dst, nil
}
