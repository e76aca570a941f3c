// ABOUTME: Provider interfaces consumed by the index and the chat pipeline
// ABOUTME: Keeps the core decoupled from the concrete OpenAI client
package llm

import "context"

// Message roles, mirroring the chat completion wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat completion request.
type Message struct {
	Role    string
	Content string
}

// Embedder turns text into fixed-dimension vectors. EmbedBatch must return
// exactly one vector per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer generates an assistant reply for a conversation. The reply is
// returned whole; any streaming happens inside the provider.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
