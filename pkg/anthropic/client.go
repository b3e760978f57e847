// Package anthropic adapts the Anthropic Messages API to the single-turn
// prompts enrichment sends: one cached system prompt, one user message, one
// text reply.
package anthropic

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// systemCacheTTL keeps a system prompt in the prompt cache across a batch.
const systemCacheTTL = "1h"

// Client completes single-turn prompts.
type Client interface {
	Complete(ctx context.Context, p Prompt) (*Reply, error)
}

// Prompt is one request. System, when set, is sent as a cached block.
type Prompt struct {
	Model     string
	MaxTokens int64
	System    string
	User      string
}

// Reply is the joined text of a response.
type Reply struct {
	Text       string
	StopReason string
	Usage      Usage
}

// Truncated reports whether the reply stopped at the token limit.
func (r *Reply) Truncated() bool {
	return r.StopReason == "max_tokens"
}

type sdkClient struct {
	client sdk.Client
}

// NewClient creates a Client backed by the SDK. opts are applied after the
// API key.
func NewClient(apiKey string, opts ...option.RequestOption) Client {
	return &sdkClient{
		client: sdk.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...),
	}
}

func (c *sdkClient) Complete(ctx context.Context, p Prompt) (*Reply, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(p.Model),
		MaxTokens: p.MaxTokens,
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(p.User))},
	}
	if p.System != "" {
		cc := sdk.NewCacheControlEphemeralParam()
		cc.TTL = sdk.CacheControlEphemeralTTL(systemCacheTTL)
		params.System = []sdk.TextBlockParam{{Text: p.System, CacheControl: cc}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "anthropic: create message")
	}
	return replyFrom(msg), nil
}

// replyFrom keeps the text blocks of msg; other block types are dropped.
func replyFrom(msg *sdk.Message) *Reply {
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return &Reply{
		Text:       b.String(),
		StopReason: string(msg.StopReason),
		Usage: Usage{
			InputTokens:      msg.Usage.InputTokens,
			OutputTokens:     msg.Usage.OutputTokens,
			CacheWriteTokens: msg.Usage.CacheCreationInputTokens,
			CacheReadTokens:  msg.Usage.CacheReadInputTokens,
		},
	}
}
