package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/crunchyorder/internal/catalog"
	"github.com/hammamikhairi/crunchyorder/internal/checkout"
	"github.com/hammamikhairi/crunchyorder/internal/conversation"
	"github.com/hammamikhairi/crunchyorder/internal/delivery"
	"github.com/hammamikhairi/crunchyorder/internal/dialog"
	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/extract"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
	"github.com/hammamikhairi/crunchyorder/internal/storage"
)

type recordOut struct {
	lines []string
	units int
	total int
}

func (r *recordOut) show(l dialog.Line) { r.lines = append(r.lines, l.Text) }

func (r *recordOut) setCart(units, total int) { r.units, r.total = units, total }

type stubPlacer struct{ n int }

func (s *stubPlacer) PlaceOrder(_ context.Context, itemID string) (*domain.OrderRecord, error) {
	s.n++
	return &domain.OrderRecord{OrderID: fmt.Sprintf("%s-%d", itemID, s.n), ItemID: itemID, ETAMinutes: 1}, nil
}

type quietNotifier struct{}

func (quietNotifier) Notify(context.Context, string) error       { return nil }
func (quietNotifier) NotifyUrgent(context.Context, string) error { return nil }

func newApp(track bool) (*cliApp, *recordOut, *stubPlacer) {
	log := logger.New(logger.LevelOff, nil)
	index := catalog.NewIndex(&domain.Menu{Categories: []domain.MenuCategory{{
		Items: []domain.MenuItem{{ID: "brownie", Name: "Brownie", Price: 99}},
	}}})
	sched := delivery.New(storage.NewMemoryStore(log), quietNotifier{}, index, log,
		delivery.WithTickInterval(5*time.Millisecond),
		delivery.WithMinute(10*time.Millisecond),
	)
	placer := &stubPlacer{}
	co := checkout.New(placer, sched, index, log)
	m := dialog.New(index, catalog.DefaultGroups(), extract.NewPatternExtractor(index, log), co, log)

	out := &recordOut{}
	return &cliApp{machine: m, scheduler: sched, out: out, track: track, log: log}, out, placer
}

func feed(lines ...string) <-chan string {
	ch := make(chan string, len(lines))
	for _, l := range lines {
		ch <- l
	}
	close(ch)
	return ch
}

func TestRunChecksOutOnEOF(t *testing.T) {
	app, out, placer := newApp(false)

	app.run(context.Background(), feed("desserts", "2 brownie"))

	assert.Equal(t, 2, placer.n)
	assert.Equal(t, 2, out.units)
	assert.Equal(t, 198, out.total)
	assert.Equal(t, conversation.LineBye(), out.lines[len(out.lines)-1])
}

func TestRunTracksDeliveries(t *testing.T) {
	app, out, _ := newApp(true)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	app.scheduler.Start(ctx)
	defer app.scheduler.Stop()

	app.run(ctx, feed("desserts", "brownie 1", "no"))

	assert.Contains(t, out.lines, conversation.LineTracking(1))
	pending, err := app.scheduler.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.DeliveryDue, pending[0].Status)
}

func TestReadLines(t *testing.T) {
	var got []string
	for l := range readLines(strings.NewReader("pizza\nveg\n")) {
		got = append(got, l)
	}
	assert.Equal(t, []string{"pizza", "veg"}, got)
}

func TestOpenLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "nested", "crunchy.log")

	f, err := openLogFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("hello\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(b))
}

func TestOpenLogFileBadDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := openLogFile(filepath.Join(blocker, "sub", "crunchy.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not create log dir")
}
