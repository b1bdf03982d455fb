// Package usecases - stream.go handles the streaming question/answer path.
package usecases

import (
	"context"

	"github.com/0xcro3dile/docchat-go/internal/domain/entities"
	"github.com/0xcro3dile/docchat-go/internal/domain/ports"
	"github.com/0xcro3dile/docchat-go/internal/domain/prompt"
)

// StreamUseCase relays an LLM token stream as ordered typed events.
// It guarantees faithful in-order relay and exactly one terminal event;
// separating the <think></think> segment from the answer is the client's
// concern. History is never committed on this path.
type StreamUseCase struct {
	resolver ports.DocumentResolver
	llm      ports.LLMService
}

// NewStreamUseCase creates a StreamUseCase with injected dependencies.
func NewStreamUseCase(resolver ports.DocumentResolver, llm ports.LLMService) *StreamUseCase {
	return &StreamUseCase{resolver: resolver, llm: llm}
}

// Stream validates the request and returns an event channel. Validation
// failures return an error synchronously so the caller can reject before
// opening its event stream; everything later (resolution, backend call,
// decode failures) arrives on the channel and terminates it with exactly
// one end or error event. Cancelling ctx stops forwarding and releases
// the backend stream.
func (uc *StreamUseCase) Stream(ctx context.Context, documentID, question string) (<-chan entities.StreamEvent, error) {
	if documentID == "" || question == "" {
		return nil, entities.ErrInvalidRequest
	}

	events := make(chan entities.StreamEvent, 100)

	go func() {
		defer close(events)

		content, err := uc.resolver.Resolve(ctx, documentID)
		if err != nil {
			uc.emit(ctx, events, entities.StreamEvent{Type: entities.EventError, Err: err.Error()})
			return
		}

		promptText := prompt.BuildThinking(content, question)

		tokens, err := uc.llm.GenerateStream(ctx, promptText)
		if err != nil {
			uc.emit(ctx, events, entities.StreamEvent{Type: entities.EventError, Err: err.Error()})
			return
		}

		for token := range tokens {
			if token.Err != nil {
				uc.emit(ctx, events, entities.StreamEvent{Type: entities.EventError, Err: token.Err.Error()})
				return
			}

			// A bare done sentinel carries no payload to forward.
			if !token.Done || token.Response != "" {
				ok := uc.emit(ctx, events, entities.StreamEvent{
					Type:     entities.EventChunk,
					Response: token.Response,
					Done:     token.Done,
				})
				if !ok {
					// Client gone; abandoning the token channel cancels
					// the backend read via ctx.
					return
				}
			}

			if token.Done {
				uc.emit(ctx, events, entities.StreamEvent{Type: entities.EventEnd})
				return
			}
		}

		// Token channel closed without a done sentinel or error token.
		uc.emit(ctx, events, entities.StreamEvent{Type: entities.EventError, Err: entities.ErrBackendUnavailable.Error()})
	}()

	return events, nil
}

// emit delivers an event unless the request context has ended.
func (uc *StreamUseCase) emit(ctx context.Context, events chan<- entities.StreamEvent, event entities.StreamEvent) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
