package sheet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/testutil"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name   string
		ticker string
		prefix string
		want   string
	}{
		{"strips prefix", "NSE:ABC", "NSE:", "ABC"},
		{"no prefix present", "ABC", "NSE:", "ABC"},
		{"repeated prefix", "NSE:NSE:ABC", "NSE:", "ABC"},
		{"empty prefix", "NSE:ABC", "", "NSE:ABC"},
		{"empty ticker", "", "NSE:", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTicker(tt.ticker, tt.prefix))
		})
	}
}

func TestClient_FetchStocks(t *testing.T) {
	t.Run("normalizes tickers and keeps order", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK,
			`[{"Ticker":"NSE:ABC","Stock Name":"Alpha Co","LTP":"1000"},{"Ticker":"NSE:XYZ","Stock Name":"Xylo","LTP":250}]`)
		c := NewClient(srv.URL, "NSE:", 5*time.Second, zerolog.Nop())

		records, err := c.FetchStocks(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "ABC", records[0].Ticker())
		assert.Equal(t, "Alpha Co", records[0].Name())
		assert.Equal(t, "XYZ", records[1].Ticker())
		assert.Equal(t, "250", records[1].LTP())
		for _, r := range records {
			assert.False(t, strings.Contains(r.Ticker(), "NSE:"))
		}
	})

	t.Run("records without a ticker are left alone", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `[{"Stock Name":"Nameless"}]`)
		c := NewClient(srv.URL, "NSE:", 5*time.Second, zerolog.Nop())

		records, err := c.FetchStocks(context.Background())
		require.NoError(t, err)
		_, ok := records[0].Get("Ticker")
		assert.False(t, ok)
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusInternalServerError, `{"error":"boom"}`)
		c := NewClient(srv.URL, "NSE:", 5*time.Second, zerolog.Nop())

		_, err := c.FetchStocks(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrFailedToRetrieveStocks))
		assert.True(t, errors.Is(err, apperrors.ErrUnexpectedStatus))
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `{"not":"a list"}`)
		c := NewClient(srv.URL, "NSE:", 5*time.Second, zerolog.Nop())

		_, err := c.FetchStocks(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrFailedToRetrieveStocks)
	})

	t.Run("unreachable endpoint is an error", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `[]`)
		srv.Close()
		c := NewClient(srv.URL, "NSE:", time.Second, zerolog.Nop())

		_, err := c.FetchStocks(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrFailedToRetrieveStocks)
	})

	t.Run("concurrent callers get independent slices", func(t *testing.T) {
		srv, hits := newServer(t, http.StatusOK, `[{"Ticker":"NSE:ABC"}]`)
		c := NewClient(srv.URL, "NSE:", 5*time.Second, zerolog.Nop())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				records, err := c.FetchStocks(context.Background())
				assert.NoError(t, err)
				assert.Len(t, records, 1)
			}()
		}
		wg.Wait()

		assert.GreaterOrEqual(t, hits.Load(), int32(1))
		assert.LessOrEqual(t, hits.Load(), int32(8))
	})
}

func TestClient_FetchStocks_CancelledCallerDoesNotFailOthers(t *testing.T) {
	started := make(chan struct{}, 8)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Ticker":"NSE:ABC","Stock Name":"Alpha Co"}]`))
	}))
	t.Cleanup(srv.Close)
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	t.Cleanup(unblock)

	c := NewClient(srv.URL, "NSE:", 5*time.Second, zerolog.Nop())

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.FetchStocks(ctxA)
		errA <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the server")
	}

	type result struct {
		records int
		err     error
	}
	resB := make(chan result, 1)
	go func() {
		records, err := c.FetchStocks(context.Background())
		resB <- result{len(records), err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, apperrors.ErrFailedToRetrieveStocks)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	unblock()
	select {
	case res := <-resB:
		require.NoError(t, res.err)
		assert.Equal(t, 1, res.records)
	case <-time.After(2 * time.Second):
		t.Fatal("live caller never returned")
	}
}

func TestClient_FetchStocks_StripsPrefixFromEveryRecord(t *testing.T) {
	body := testutil.SheetJSON(t, testutil.CreateStocks("NSE:", 5)...)
	srv := testutil.NewSheetServer(t, http.StatusOK, body)

	c := NewClient(srv.URL, "NSE:", 5*time.Second, zerolog.Nop())
	records, err := c.FetchStocks(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)

	for i, r := range records {
		assert.NotContains(t, r.Ticker(), "NSE:")
		assert.Equal(t, "STK"+string(rune('A'+i)), r.Ticker())
		assert.Equal(t, "Ticker", r.Fields[0].Name, "column order must be preserved")
	}
}
