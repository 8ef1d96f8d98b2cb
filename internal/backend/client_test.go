package backend

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

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/menu", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"categories":[{"id":"veg_pizza","name":"Veg Pizza","items":[
			{"id":"margherita","name":"Margherita","type":"veg","price":299,"customizable":true}]}]}`))
	})
	mux.HandleFunc("/order", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req orderRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		switch req.ItemID {
		case "sold_out":
			http.Error(w, "sold out", http.StatusConflict)
			return
		case "no_eta":
			_, _ = w.Write([]byte(`{"order_id":"o-2","item_id":"no_eta","status":"confirmed"}`))
			return
		case "instant":
			_, _ = w.Write([]byte(`{"order_id":"o-3","item_id":"instant","eta_minutes":0,"status":"confirmed"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(domain.OrderRecord{
			OrderID: "o-1", ItemID: req.ItemID, ETAMinutes: 25, Status: "confirmed",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchMenu(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/", logger.New(logger.LevelOff, nil))

	menu, err := c.FetchMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu.Categories, 1)
	item := menu.Categories[0].Items[0]
	assert.Equal(t, "margherita", item.ID)
	assert.Equal(t, 299, item.Price)
	assert.True(t, item.Customizable)
}

func TestPlaceOrder(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, logger.New(logger.LevelOff, nil))

	rec, err := c.PlaceOrder(context.Background(), "margherita")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRecord{OrderID: "o-1", ItemID: "margherita", ETAMinutes: 25, Status: "confirmed"}, *rec)

	_, err = c.PlaceOrder(context.Background(), "sold_out")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.Contains(t, err.Error(), "409")
}

func TestPlaceOrderETA(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, logger.New(logger.LevelOff, nil))

	rec, err := c.PlaceOrder(context.Background(), "no_eta")
	require.NoError(t, err)
	assert.Equal(t, domain.ETAUnknown, rec.ETAMinutes)

	rec, err = c.PlaceOrder(context.Background(), "instant")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.ETAMinutes)
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, logger.New(logger.LevelOff, nil))
	_, err := c.FetchMenu(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}
