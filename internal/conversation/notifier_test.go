package conversation

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

func TestCLINotifierPlain(t *testing.T) {
	var buf bytes.Buffer
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), WithWriter(&buf))

	require.NoError(t, n.Notify(context.Background(), "soon"))
	require.NoError(t, n.NotifyUrgent(context.Background(), "now"))

	assert.Equal(t, "soon\nnow\n", buf.String())
	assert.NotContains(t, buf.String(), "\033")
}

func TestCLINotifierANSI(t *testing.T) {
	var buf bytes.Buffer
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), WithWriter(&buf), WithANSI())

	require.NoError(t, n.Notify(context.Background(), "soon"))
	require.NoError(t, n.NotifyUrgent(context.Background(), "now"))

	assert.Equal(t, cyan+bold+"soon"+reset+"\n"+red+bold+"now"+reset+"\n", buf.String())
}

func TestCLINotifierRoutesToOutput(t *testing.T) {
	var buf bytes.Buffer
	var normal, urgent []string
	n := NewCLINotifier(logger.New(logger.LevelOff, nil),
		WithWriter(&buf),
		WithOutput(
			func(s string) { normal = append(normal, s) },
			func(s string) { urgent = append(urgent, s) },
		))

	require.NoError(t, n.Notify(context.Background(), "soon"))
	require.NoError(t, n.NotifyUrgent(context.Background(), "now"))

	assert.Equal(t, []string{"soon"}, normal)
	assert.Equal(t, []string{"now"}, urgent)
	assert.Empty(t, buf.String())
}
