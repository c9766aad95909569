package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/extract"
)

// Chatbot turns the outcomes of signup, login, logout and questions into
// the user-facing messages. Only store and key failures come back as
// errors, along with QA engine transport errors.
type Chatbot struct {
	creds    *CredentialStore
	pipeline *Pipeline
}

func NewChatbot(creds *CredentialStore, pipeline *Pipeline) *Chatbot {
	return &Chatbot{creds: creds, pipeline: pipeline}
}

func (b *Chatbot) Signup(ctx context.Context, identity, secret string) (string, error) {
	err := b.creds.CreateAccount(ctx, identity, secret)
	switch {
	case err == nil:
		return fmt.Sprintf(common.MessageSignupCreated, identity), nil
	case errors.Is(err, common.ErrorAlreadyExists):
		return common.MessageSignupExists, nil
	default:
		return "", err
	}
}

func (b *Chatbot) Login(ctx context.Context, identity, secret string) (string, error) {
	ok, err := b.creds.Verify(ctx, identity, secret)
	if err != nil {
		return "", err
	}
	if !ok {
		return common.MessageLoginInvalid, nil
	}
	return fmt.Sprintf(common.MessageLoginWelcome, identity), nil
}

func (b *Chatbot) Logout(_ context.Context, identity string) string {
	return b.creds.EndSession(identity)
}

func (b *Chatbot) Ask(ctx context.Context, identity string, doc extract.Document, question string) (string, error) {
	msg, err := b.pipeline.AnswerQuestion(ctx, identity, doc, question)
	if err != nil {
		if errors.Is(err, common.ErrorExtraction) {
			return common.MessageExtractionError, nil
		}
		return "", err
	}
	return msg, nil
}
