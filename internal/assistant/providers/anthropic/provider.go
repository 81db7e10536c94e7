package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"rolodex/internal/assistant"
	"rolodex/internal/domain/models/chat"
)

// Provider talks to the Anthropic Messages API. One blocking call per
// conversation iteration; tool use comes back as structured content
// blocks rather than a stream.
type Provider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewProvider builds an Anthropic-backed model provider.
func NewProvider(apiKey, model string, maxTokens int) (*Provider, error) {
	if apiKey == "" {
		return nil, assistant.ErrMissingCredentials
	}
	return &Provider{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: int64(maxTokens),
	}, nil
}

func (p *Provider) Name() string { return "anthropic" }

// SupportsModel reports whether the model id belongs to this provider.
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "claude-")
}

// SendTurn sends the accumulated conversation and tool declarations and
// converts the response into domain content blocks.
func (p *Provider) SendTurn(ctx context.Context, turns []chat.ConversationTurn, tools []assistant.ToolSchema) (*assistant.ModelResponse, error) {
	messages, err := convertTurns(turns)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages:  messages,
		Tools:     convertSchemas(tools),
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic message: %w", err)
	}

	return convertResponse(resp), nil
}

func convertTurns(turns []chat.ConversationTurn) ([]anthropic.MessageParam, error) {
	messages := make([]anthropic.MessageParam, 0, len(turns))
	for i := range turns {
		t := turns[i]
		switch t.Role {
		case chat.RoleUser:
			if len(t.Blocks) == 0 {
				messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Content)))
				continue
			}
			blocks := make([]anthropic.ContentBlockParamUnion, 0, len(t.Blocks))
			for _, b := range t.Blocks {
				switch b.Type {
				case chat.BlockTypeText:
					blocks = append(blocks, anthropic.NewTextBlock(b.Text))
				case chat.BlockTypeToolResult:
					blocks = append(blocks, anthropic.NewToolResultBlock(b.ToolResult.ToolUseID, b.ToolResult.Content, b.ToolResult.IsError))
				default:
					return nil, fmt.Errorf("unsupported user block type %q", b.Type)
				}
			}
			messages = append(messages, anthropic.NewUserMessage(blocks...))

		case chat.RoleAssistant:
			if len(t.Blocks) == 0 {
				messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Content)))
				continue
			}
			blocks := make([]anthropic.ContentBlockParamUnion, 0, len(t.Blocks))
			for _, b := range t.Blocks {
				switch b.Type {
				case chat.BlockTypeText:
					blocks = append(blocks, anthropic.NewTextBlock(b.Text))
				case chat.BlockTypeToolUse:
					blocks = append(blocks, anthropic.NewToolUseBlock(b.ToolUse.ID, b.ToolUse.Input, b.ToolUse.Name))
				default:
					return nil, fmt.Errorf("unsupported assistant block type %q", b.Type)
				}
			}
			messages = append(messages, anthropic.NewAssistantMessage(blocks...))

		default:
			return nil, fmt.Errorf("unsupported conversation role %q", t.Role)
		}
	}
	return messages, nil
}

func convertSchemas(tools []assistant.ToolSchema) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		tp := anthropic.ToolUnionParamOfTool(anthropic.ToolInputSchemaParam{
			Properties: t.Properties,
			Required:   t.Required,
		}, t.Name)
		if t.Description != "" {
			tp.OfTool.Description = param.NewOpt(t.Description)
		}
		out = append(out, tp)
	}
	return out
}

func convertResponse(msg *anthropic.Message) *assistant.ModelResponse {
	resp := &assistant.ModelResponse{
		Model:      string(msg.Model),
		StopReason: string(msg.StopReason),
	}
	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			resp.Blocks = append(resp.Blocks, chat.ContentBlock{
				Type: chat.BlockTypeText,
				Text: block.Text,
			})
		case "tool_use":
			input := map[string]interface{}{}
			if len(block.Input) > 0 {
				// A malformed input payload still yields an invocation; the
				// executor reports the missing arguments back to the model.
				_ = json.Unmarshal(block.Input, &input)
			}
			resp.Blocks = append(resp.Blocks, chat.ContentBlock{
				Type: chat.BlockTypeToolUse,
				ToolUse: &chat.ToolInvocation{
					ID:    block.ID,
					Name:  block.Name,
					Input: input,
				},
			})
		}
	}
	return resp
}
