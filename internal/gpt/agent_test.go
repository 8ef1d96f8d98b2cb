package gpt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

type fakeChatter struct {
	reply string
	err   error
	got   []Message
}

func (f *fakeChatter) Chat(_ context.Context, messages []Message) (string, error) {
	f.got = messages
	return f.reply, f.err
}

func TestExtractQuantitiesPrompt(t *testing.T) {
	chat := &fakeChatter{reply: `{"brownie":2}`}
	agent := NewAgent(chat, logger.New(logger.LevelOff, nil))

	got, err := agent.ExtractQuantities(context.Background(), "a couple of brownies", []string{"brownie", "choco_volcano"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"brownie": 2}, got)

	require.Len(t, chat.got, 2)
	assert.Equal(t, PromptExtract, chat.got[0].Text())
	assert.Contains(t, chat.got[1].Text(), `"a couple of brownies"`)
	assert.Contains(t, chat.got[1].Text(), "brownie, choco_volcano")
}

func TestExtractQuantitiesChatError(t *testing.T) {
	chat := &fakeChatter{err: domain.ErrUpstream}
	agent := NewAgent(chat, logger.New(logger.LevelOff, nil))

	_, err := agent.ExtractQuantities(context.Background(), "x", []string{"brownie"})
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestParseQuantities(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]int
		wantErr bool
	}{
		{"bare object", `{"margherita":1,"chicken_tikka":2}`, map[string]int{"margherita": 1, "chicken_tikka": 2}, false},
		{"code fence", "```json\n{\"brownie\": 3}\n```", map[string]int{"brownie": 3}, false},
		{"prose around", `Sure! Here you go: {"brownie": 1} Enjoy {"x": 9}`, map[string]int{"brownie": 1}, false},
		{"broken then good", `{oops} then {"brownie": 4}`, map[string]int{"brownie": 4}, false},
		{"numeric string", `{"brownie": "2"}`, map[string]int{"brownie": 2}, false},
		{"float whole", `{"brownie": 2.0}`, map[string]int{"brownie": 2}, false},
		{"float fractional dropped", `{"brownie": 1.5, "choco_volcano": 1}`, map[string]int{"choco_volcano": 1}, false},
		{"non number dropped", `{"brownie": "lots", "x": null}`, map[string]int{}, false},
		{"empty object", `{}`, map[string]int{}, false},
		{"no object", `I could not find anything`, nil, true},
		{"array only", `[1,2]`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuantities(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrEmptyResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
