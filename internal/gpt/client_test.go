package gpt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

func TestClientChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		var body payload
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}
		assert.Equal(t, "gpt-4o-mini", body.Model)
		assert.Len(t, body.Messages, 2)
		assert.Equal(t, RoleSystem, body.Messages[0].Role)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"brownie\":2}"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", logger.New(logger.LevelOff, nil), WithModel("gpt-4o-mini"))
	reply, err := c.Chat(context.Background(), []Message{
		TextMessage(RoleSystem, "sys"),
		TextMessage(RoleUser, "two brownies"),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"brownie":2}`, reply)
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `oops`, domain.ErrUpstream},
		{"no choices", http.StatusOK, `{"choices":[]}`, domain.ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", logger.New(logger.LevelOff, nil))
			_, err := c.Chat(context.Background(), []Message{TextMessage(RoleUser, "hi")})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestMessageText(t *testing.T) {
	m := Message{Role: RoleUser, Content: []Content{
		{Type: "text", Text: "two "},
		{Type: "refusal"},
		{Type: "text", Text: "brownies"},
	}}
	assert.Equal(t, "two brownies", m.Text())
}
