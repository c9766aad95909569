package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/extract/extracttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_BaseName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"report.pdf", "report.pdf"},
		{"/tmp/gradio/abc/report.pdf", "report.pdf"},
		{`C:\Users\a\report.pdf`, "report.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Document{Name: tt.in}.BaseName())
	}
}

func TestPDF_ExtractsPagesInOrder(t *testing.T) {
	doc := Document{Name: "doc.pdf", Content: extracttest.PDF("Title: Foo", "Second page")}

	text, err := PDF{}.Extract(context.Background(), doc)
	require.NoError(t, err)

	first := strings.Index(text, "Title: Foo")
	second := strings.Index(text, "Second page")
	require.GreaterOrEqual(t, first, 0, "got %q", text)
	require.Greater(t, second, first, "got %q", text)
	assert.True(t, strings.HasSuffix(text, "\n"), "each page is newline terminated: %q", text)
}

func TestPDF_InvalidContent(t *testing.T) {
	for name, content := range map[string][]byte{
		"empty":     nil,
		"not pdf":   []byte("hello world"),
		"truncated": extracttest.PDF("Title: Foo")[:40],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := PDF{}.Extract(context.Background(), Document{Name: "bad.pdf", Content: content})
			require.ErrorIs(t, err, common.ErrorExtraction)
		})
	}
}

func TestPDF_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PDF{}.Extract(ctx, Document{Name: "doc.pdf", Content: extracttest.PDF("x")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlainText(t *testing.T) {
	text, err := PlainText{}.Extract(context.Background(), Document{Name: "a.txt", Content: []byte("\ufeffTitle: Foo\r\nBody\r\n")})
	require.NoError(t, err)
	assert.Equal(t, "Title: Foo\nBody\n", text)

	_, err = PlainText{}.Extract(context.Background(), Document{Name: "a.txt", Content: []byte{0xff, 0xfe, 0xfd}})
	require.ErrorIs(t, err, common.ErrorExtraction)
}

func TestRouter_ByExtension(t *testing.T) {
	var calls []string
	tag := func(name string) Extractor {
		return ExtractorFunc(func(context.Context, Document) (string, error) {
			calls = append(calls, name)
			return name, nil
		})
	}

	r := NewRouter(tag("fallback")).Handle(tag("text"), ".txt", "MD")

	for _, name := range []string{"a.TXT", "dir/b.md", "c.pdf", "noext"} {
		_, err := r.Extract(context.Background(), Document{Name: name})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"text", "text", "fallback", "fallback"}, calls)
}

func TestNewDefault(t *testing.T) {
	r := NewDefault()

	text, err := r.Extract(context.Background(), Document{Name: "notes.md", Content: []byte("Title: Foo\n")})
	require.NoError(t, err)
	assert.Equal(t, "Title: Foo\n", text)

	_, err = r.Extract(context.Background(), Document{Name: "notes.pdf", Content: []byte("Title: Foo\n")})
	require.True(t, errors.Is(err, common.ErrorExtraction))
}
