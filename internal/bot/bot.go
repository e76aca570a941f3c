// ABOUTME: Chat orchestrator: question → retrieval → prompt → completion → history
// ABOUTME: One Turn call runs the full RAG pipeline for a session
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heulosofia/chatbot/internal/llm"
	"github.com/heulosofia/chatbot/internal/models"
	"github.com/heulosofia/chatbot/internal/prompt"
	"github.com/heulosofia/chatbot/internal/session"
)

// ErrEmptyMessage marks a validation failure the HTTP layer maps to 400.
var ErrEmptyMessage = errors.New("message cannot be empty")

// DefaultTopK is how many chunks are retrieved per question.
const DefaultTopK = 3

// Retriever is the slice of the vector index the bot needs.
type Retriever interface {
	Search(ctx context.Context, text string, k int) ([]models.SearchResult, error)
}

// Answer is the result of one chat turn. Sources is always present in the
// JSON contract but currently stays empty: source attribution through this
// path is disabled.
type Answer struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// Bot runs the per-turn pipeline against a shared index and session store.
type Bot struct {
	retriever Retriever
	completer llm.Completer
	sessions  *session.Store
	topK      int
}

// New wires the pipeline. topK <= 0 falls back to DefaultTopK.
func New(retriever Retriever, completer llm.Completer, sessions *session.Store, topK int) *Bot {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Bot{
		retriever: retriever,
		completer: completer,
		sessions:  sessions,
		topK:      topK,
	}
}

// Turn answers one question for the given session and records the exchange.
// On any error the session history is left untouched.
func (b *Bot) Turn(ctx context.Context, sessionID, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrEmptyMessage
	}

	history := b.sessions.History(sessionID)

	// Retrieval uses the raw question, not a history-aware rewrite.
	// Follow-ups leaning on pronouns may retrieve poorly; that behavior is
	// kept as-is.
	results, err := b.retriever.Search(ctx, question, b.topK)
	if err != nil {
		return Answer{}, fmt.Errorf("retrieving context: %w", err)
	}
	chunks := make([]models.Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}

	messages := prompt.Assemble(question, chunks, history)
	reply, err := b.completer.Complete(ctx, messages)
	if err != nil {
		return Answer{}, fmt.Errorf("generating answer: %w", err)
	}

	turn, err := models.NewTurn(len(history), question, reply)
	if err != nil {
		return Answer{}, err
	}
	b.sessions.Append(sessionID, turn)

	return Answer{Response: reply, Sources: []string{}}, nil
}

// ClearHistory empties the session's conversation history.
func (b *Bot) ClearHistory(sessionID string) {
	b.sessions.Clear(sessionID)
}
