package gpt

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// Compile-time interface check.
var _ Chatter = (*LangChain)(nil)

// LangChain adapts any langchaingo model to the Chatter interface.
type LangChain struct {
	model llms.Model
	opts  []llms.CallOption
	log   *logger.Logger
}

// NewLangChain wraps model. Call options (model name, temperature, token
// limit) are applied to every request.
func NewLangChain(model llms.Model, log *logger.Logger, opts ...llms.CallOption) *LangChain {
	return &LangChain{model: model, opts: opts, log: log}
}

// Chat converts messages to langchaingo content and returns the first choice.
func (l *LangChain) Chat(ctx context.Context, messages []Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.TextParts(messageType(m.Role), m.Text()))
	}

	l.log.Debug("langchain: generating (%d messages)", len(content))

	resp, err := l.model.GenerateContent(ctx, content, l.opts...)
	if err != nil {
		return "", fmt.Errorf("langchain: generate: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("langchain: no choices: %w", domain.ErrEmptyResponse)
	}
	return resp.Choices[0].Content, nil
}

func messageType(role string) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
