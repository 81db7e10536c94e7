package lorem

import (
	"context"
	"fmt"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	"rolodex/internal/assistant"
	"rolodex/internal/domain/models/chat"
)

// Provider is a mock model provider that generates lorem ipsum text.
// Used for development without a real API key. It never issues tool
// calls, so a conversation loop backed by it always completes in one
// iteration.
type Provider struct {
	generator *loremgen.Lorem
	delay     time.Duration
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
		delay:     200 * time.Millisecond,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "lorem"
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-test"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// SendTurn returns a short lorem ipsum paragraph after a simulated
// processing delay. The declared tools are ignored.
func (p *Provider) SendTurn(ctx context.Context, turns []chat.ConversationTurn, _ []assistant.ToolSchema) (*assistant.ModelResponse, error) {
	if len(turns) == 0 {
		return nil, fmt.Errorf("lorem provider: empty conversation")
	}

	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	text := p.generator.Paragraph(1, 3)
	return &assistant.ModelResponse{
		Blocks: []chat.ContentBlock{
			{Type: chat.BlockTypeText, Text: text},
		},
		Model:      "lorem-fast",
		StopReason: "end_turn",
	}, nil
}
