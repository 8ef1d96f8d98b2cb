package gpt

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// Agent wraps a Chatter with ordering-domain prompt building and reply
// parsing. It is the single entry point the extraction fallback calls.
type Agent struct {
	chat Chatter
	log  *logger.Logger
}

// NewAgent creates an extraction agent backed by the given Chatter.
func NewAgent(chat Chatter, log *logger.Logger) *Agent {
	return &Agent{chat: chat, log: log}
}

// ExtractQuantities asks the model which of the allowed items the text
// names and how many of each. The reply is untrusted: only the first
// well-formed JSON object is read, and values that are not whole numbers
// are dropped. Filtering to the allowed set is left to the caller.
func (a *Agent) ExtractQuantities(ctx context.Context, text string, allowed []string) (map[string]int, error) {
	messages := []Message{
		TextMessage(RoleSystem, PromptExtract),
		TextMessage(RoleUser, buildExtractQuery(text, allowed)),
	}

	raw, err := a.chat.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}

	out, err := parseQuantities(raw)
	if err != nil {
		a.log.Debug("gpt: unusable extraction reply: %v\nraw: %s", err, truncate(raw, 200))
		return nil, err
	}
	a.log.Debug("gpt: extracted %v from %q", out, text)
	return out, nil
}

func buildExtractQuery(text string, allowed []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer message: %q\n", text)
	fmt.Fprintf(&b, "Allowed item IDs: %s\n", strings.Join(allowed, ", "))
	return b.String()
}

// parseQuantities decodes the first well-formed JSON object found in s.
// Prose, code fences and trailing chatter around the object are ignored.
func parseQuantities(s string) (map[string]int, error) {
	s = stripCodeFence(s)
	obj, ok := firstJSONObject(s)
	if !ok {
		return nil, fmt.Errorf("gpt: no JSON object in reply: %w", domain.ErrEmptyResponse)
	}

	out := make(map[string]int, len(obj))
	for k, v := range obj {
		if n, ok := wholeNumber(v); ok {
			out[k] = n
		}
	}
	return out, nil
}

// firstJSONObject tries each '{' in turn and returns the first position
// that decodes as a complete object.
func firstJSONObject(s string) (map[string]any, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:]))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err == nil {
			return obj, true
		}
	}
	return nil, false
}

// wholeNumber accepts JSON numbers and numeric strings that hold an integer.
func wholeNumber(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return clampInt(n)
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return clampInt(int64(f))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func clampInt(n int64) (int, bool) {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

// stripCodeFence removes ```json ... ``` wrappers that LLMs love to add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence line.
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		// Remove closing fence.
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
