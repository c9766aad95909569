package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/ledongthuc/pdf"
)

// PDF extracts page text with github.com/ledongthuc/pdf.
type PDF struct{}

func (PDF) Extract(ctx context.Context, doc Document) (text string, err error) {
	// the parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %s: %v", common.ErrorExtraction, doc.BaseName(), r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrorExtraction, doc.BaseName(), err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: %s page %d: %v", common.ErrorExtraction, doc.BaseName(), i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
