// Package usecases - ask.go handles the blocking question/answer path.
package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/0xcro3dile/docchat-go/internal/domain/entities"
	"github.com/0xcro3dile/docchat-go/internal/domain/ports"
	"github.com/0xcro3dile/docchat-go/internal/domain/prompt"
)

// AskUseCase orchestrates resolver, conversation store and LLM for the
// whole-answer path. Single Responsibility: only blocking Q&A logic.
type AskUseCase struct {
	resolver      ports.DocumentResolver
	conversations ports.ConversationStore
	llm           ports.LLMService
	ttl           time.Duration
}

// NewAskUseCase creates an AskUseCase with injected dependencies.
func NewAskUseCase(
	resolver ports.DocumentResolver,
	conversations ports.ConversationStore,
	llm ports.LLMService,
	ttl time.Duration,
) *AskUseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AskUseCase{
		resolver:      resolver,
		conversations: conversations,
		llm:           llm,
		ttl:           ttl,
	}
}

// Ask answers a question about one document, updating its history on
// success. A clear-history request short-circuits before any backend call.
func (uc *AskUseCase) Ask(ctx context.Context, req *entities.AskRequest) (*entities.AskResponse, error) {
	if req.DocumentID == "" || (req.Question == "" && !req.ClearHistory) {
		return nil, entities.ErrInvalidRequest
	}

	if req.ClearHistory {
		uc.conversations.Clear(req.DocumentID)
		return &entities.AskResponse{}, nil
	}

	// 1. Resolve document content
	content, err := uc.resolver.Resolve(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	// 2. Purge silently expired histories before reading
	uc.conversations.SweepExpired(time.Now(), uc.ttl)
	history := uc.conversations.Get(req.DocumentID)

	// 3. Build prompt and generate
	promptText := prompt.Build(content, history, req.Question)
	answer, err := uc.llm.Generate(ctx, promptText)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	// 4. Commit the exchange only after a successful answer
	uc.conversations.Append(req.DocumentID, req.Question, answer)

	return &entities.AskResponse{Answer: answer}, nil
}

// ClearHistory drops the conversation for a document. Idempotent.
func (uc *AskUseCase) ClearHistory(documentID string) {
	uc.conversations.Clear(documentID)
}
