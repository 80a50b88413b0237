package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteemart/storefront/internal/domain/cart"
)

// Wire-format types, defined locally so the tests check the actual JSON.
type wireOrder struct {
	Type      string     `json:"type"`
	Items     []wireItem `json:"items"`
	Total     float64    `json:"total"`
	OrderDate string     `json:"orderDate"`
	Status    string     `json:"status"`
}

type wireItem struct {
	Type      string  `json:"type"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func seededStore(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.NewStore(time.Hour)
	s.AddItem("sess", cart.Item{
		ProductID: "p1",
		Name:      "Widget",
		Price:     decimal.RequireFromString("10.00"),
		Quantity:  2,
	})
	s.AddItem("sess", cart.Item{
		ProductID: "p2",
		Name:      "Gadget",
		Price:     decimal.RequireFromString("5.00"),
		Quantity:  1,
	})
	return s
}

func TestSubmit_Success(t *testing.T) {
	var got wireOrder
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api_key")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	carts := seededStore(t)
	sub := NewSubmitter(carts, NewClient(srv.URL, "secret"), "/ordercompleted")

	receipt, err := sub.Submit(context.Background(), "sess")
	require.NoError(t, err)

	assert.Equal(t, StateSucceeded, receipt.State)
	assert.Equal(t, "/ordercompleted", receipt.Redirect)

	// Cart is cleared only after the OK response.
	assert.Empty(t, carts.Snapshot("sess").Items)

	// Wire format matches the order endpoint's contract.
	assert.Equal(t, "secret", apiKey)
	assert.Equal(t, "order", got.Type)
	assert.Equal(t, "pending", got.Status)
	assert.InDelta(t, 25.0, got.Total, 1e-9)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "orderItem", got.Items[0].Type)
	assert.Equal(t, "p1", got.Items[0].ProductID)
	assert.Equal(t, "Widget", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.InDelta(t, 10.0, got.Items[0].Price, 1e-9)

	_, err = time.Parse(time.RFC3339, got.OrderDate)
	assert.NoError(t, err, "orderDate must be ISO-8601")
}

func TestSubmit_NonOKLeavesCartUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	carts := seededStore(t)
	sub := NewSubmitter(carts, NewClient(srv.URL, ""), "/ordercompleted")

	receipt, err := sub.Submit(context.Background(), "sess")
	require.Error(t, err)
	assert.Equal(t, StateFailed, receipt.State)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)

	snap := carts.Snapshot("sess")
	require.Len(t, snap.Items, 2)
	assert.True(t, decimal.RequireFromString("25.00").Equal(snap.Total))
}

func TestSubmit_NetworkErrorLeavesCartUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // connection refused from here on

	carts := seededStore(t)
	sub := NewSubmitter(carts, NewClient(srv.URL, ""), "/ordercompleted")

	receipt, err := sub.Submit(context.Background(), "sess")
	require.Error(t, err)
	assert.Equal(t, StateFailed, receipt.State)

	snap := carts.Snapshot("sess")
	require.Len(t, snap.Items, 2)
	assert.True(t, decimal.RequireFromString("25.00").Equal(snap.Total))
}

func TestSubmit_EmptyCart(t *testing.T) {
	carts := cart.NewStore(time.Hour)
	sub := NewSubmitter(carts, NewClient("http://127.0.0.1:0", ""), "/ordercompleted")

	_, err := sub.Submit(context.Background(), "sess")
	require.ErrorIs(t, err, ErrEmptyCart)

	// The guard must be released so a later checkout can start.
	_, err = carts.BeginCheckout("sess")
	require.NoError(t, err)
}

func TestSubmit_RejectsConcurrentInvocation(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	carts := seededStore(t)
	sub := NewSubmitter(carts, NewClient(srv.URL, ""), "/ordercompleted")

	first := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background(), "sess")
		first <- err
	}()

	// The request reaching the server means the first submit holds the guard.
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("first checkout never reached the order endpoint")
	}

	_, err := sub.Submit(context.Background(), "sess")
	require.ErrorIs(t, err, cart.ErrCheckoutInFlight)

	close(release)
	require.NoError(t, <-first)
	assert.Empty(t, carts.Snapshot("sess").Items)
}

func TestNewPayload_Projection(t *testing.T) {
	snap := cart.Snapshot{
		Items: []cart.Item{
			{ProductID: "p1", Name: "Widget", Price: decimal.RequireFromString("10.00"), Quantity: 2},
		},
		Total:   decimal.RequireFromString("20.00"),
		TakenAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	p := NewPayload(snap)

	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, snap.TakenAt, p.OrderDate)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "p1", p.Items[0].ProductID)
	assert.True(t, p.Total.Equal(snap.Total))
}
