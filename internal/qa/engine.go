// Package qa implements extractive question answering over document text.
// Every engine returns a span of the supplied context, or no answer.
package qa

import (
	"context"
	"strings"
	"unicode"
)

// Answer is the best span an engine found.
type Answer struct {
	Text  string
	Score float64
}

// Engine answers question from context. common.ErrorNoAnswer means the
// context holds no answer; callers also treat a nil Answer that way.
type Engine interface {
	Answer(ctx context.Context, question, context string) (*Answer, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, question, context string) (*Answer, error)

func (f EngineFunc) Answer(ctx context.Context, question, context string) (*Answer, error) {
	return f(ctx, question, context)
}

// noAnswerToken is what generative engines are told to reply with when
// the context does not contain the answer.
const noAnswerToken = "NO_ANSWER"

// groundSpan returns the part of context that candidate quotes, or "" if
// candidate is not a span of context. Matching ignores case and collapses
// whitespace.
func groundSpan(candidate, context string) string {
	candidate = strings.Trim(strings.TrimSpace(candidate), `"'`+"`")
	if candidate == "" || strings.EqualFold(candidate, noAnswerToken) {
		return ""
	}

	needle := strings.ToLower(collapse(candidate))
	orig := collapse(context)
	hay := strings.ToLower(orig)
	idx := strings.Index(hay, needle)
	if needle == "" || idx < 0 {
		return ""
	}
	if len(hay) != len(orig) {
		// lowercasing changed byte offsets; fall back to the reply itself
		return collapse(candidate)
	}
	return orig[idx : idx+len(needle)]
}

func collapse(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
