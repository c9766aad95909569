package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/docqa/internal/common"
)

// PlainText accepts UTF-8 text files as they are, normalising line endings.
type PlainText struct{}

func (PlainText) Extract(_ context.Context, doc Document) (string, error) {
	if !utf8.Valid(doc.Content) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", common.ErrorExtraction, doc.BaseName())
	}
	text := strings.ReplaceAll(string(doc.Content), "\r\n", "\n")
	return strings.TrimPrefix(text, "\ufeff"), nil
}
