package qa

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/docqa/internal/common"
)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a an the is are was were be been being am do does did
		what which who whom whose when where why how of in on at to for from by with about
		as into this that these those it its i me my we our you your he she they them their
		and or but not no if then than so can could should would will shall may might must
		there here any some please tell give show find document pdf file`) {
		stopwords[w] = struct{}{}
	}
}

var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// Lexical is an offline engine. It picks the line or sentence sharing the
// most content words with the question. For "key: value" lines whose key
// matches the question, only the value is returned.
type Lexical struct{}

func NewLexical() *Lexical {
	return &Lexical{}
}

func (l *Lexical) Answer(ctx context.Context, question, text string) (*Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qTerms := terms(question)
	if len(qTerms) == 0 {
		return nil, common.ErrorNoAnswer
	}

	var (
		best      string
		bestScore int
	)
	for _, seg := range segments(text) {
		score, span := scoreSegment(seg, qTerms)
		if score > bestScore {
			best, bestScore = span, score
		}
	}

	if bestScore == 0 || best == "" {
		return nil, common.ErrorNoAnswer
	}
	return &Answer{Text: best, Score: float64(bestScore) / float64(len(qTerms))}, nil
}

// scoreSegment returns the overlap of seg with qTerms and the span to
// answer with.
func scoreSegment(seg string, qTerms map[string]struct{}) (int, string) {
	if key, value, ok := strings.Cut(seg, ":"); ok && strings.TrimSpace(value) != "" {
		if n := overlap(terms(key), qTerms); n > 0 {
			// a matching key outranks a mention anywhere else
			return n + len(qTerms), strings.TrimSpace(value)
		}
	}
	return overlap(terms(seg), qTerms), strings.TrimSpace(seg)
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

// segments splits text into non-empty lines and long lines into sentences.
func segments(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, s := range sentenceEnd.Split(line, -1) {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// terms lowercases s and returns its content words, with a plural "s"
// stripped so that "titles" matches "title".
func terms(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
			w = strings.TrimSuffix(w, "s")
		}
		out[w] = struct{}{}
	}
	return out
}
