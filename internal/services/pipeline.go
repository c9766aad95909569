package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/extract"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/qa"
	"github.com/google/uuid"
)

// Pipeline answers a question about an uploaded document for an identity.
type Pipeline struct {
	gate   *SessionGate
	cache  *DocumentCache
	engine qa.Engine
	log    logging.Logger
}

func NewPipeline(gate *SessionGate, cache *DocumentCache, engine qa.Engine, log logging.Logger) *Pipeline {
	return &Pipeline{
		gate:   gate,
		cache:  cache,
		engine: engine,
		log:    log.With("component", "pipeline"),
	}
}

// AnswerQuestion returns the engine's answer verbatim, or one of the fixed
// messages for an unknown identity or a missing answer. Extractor, engine
// and store errors are returned as errors.
func (p *Pipeline) AnswerQuestion(ctx context.Context, identity string, doc extract.Document, question string) (string, error) {
	if _, ok := logging.RequestID(ctx); !ok {
		ctx = logging.WithRequestID(ctx, uuid.NewString())
	}

	if err := p.gate.RequireAuthenticated(ctx, identity); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			p.log.Info(ctx, "rejected unknown identity", "identity", identity)
			return common.MessageNotLoggedIn, nil
		}
		return "", err
	}

	text, err := p.cache.GetOrExtract(ctx, identity, doc)
	if err != nil {
		return "", err
	}

	ans, err := p.engine.Answer(ctx, question, text)
	if err != nil {
		if errors.Is(err, common.ErrorNoAnswer) {
			return common.MessageNoAnswer, nil
		}
		return "", fmt.Errorf("qa engine: %w", err)
	}
	if ans == nil || ans.Text == "" {
		p.log.Info(ctx, "no answer", "identity", identity, "document", doc.BaseName())
		return common.MessageNoAnswer, nil
	}

	p.log.Info(ctx, "answered", "identity", identity, "document", doc.BaseName(), "score", ans.Score)
	return ans.Text, nil
}
