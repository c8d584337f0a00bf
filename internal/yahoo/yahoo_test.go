package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{"meta":{"symbol":"ABC.NS","currency":"INR","longName":"Alpha Co"},
"timestamp":[1700000000,1700086400,1700172800],
"indicators":{"quote":[{"close":[100.5,null,102.25]}]}}],"error":null}}`

func TestFinanceClient_QueryDailySymbol(t *testing.T) {
	t.Run("requests the daily range and parses closes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v8/finance/chart/ABC.NS", r.URL.Path)
			assert.Equal(t, "1d", r.URL.Query().Get("interval"))
			assert.Equal(t, "1mo", r.URL.Query().Get("range"))
			_, _ = w.Write([]byte(chartBody))
		}))
		defer srv.Close()

		c := NewFinanceClientWithBaseURL(srv.URL, 5*time.Second)
		resp, err := c.QueryDailySymbol(context.Background(), "ABC.NS", "1mo")
		require.NoError(t, err)

		chart, err := c.ParseChart(resp)
		require.NoError(t, err)
		assert.Equal(t, "ABC.NS", chart.Symbol)
		require.Len(t, chart.Indicators, 2, "null closes are skipped")
		assert.Equal(t, 100.5, chart.Indicators[0].PriceClose)
		assert.Equal(t, 102.25, chart.Indicators[1].PriceClose)
	})

	t.Run("surfaces yahoo errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
		}))
		defer srv.Close()

		c := NewFinanceClientWithBaseURL(srv.URL, 5*time.Second)
		_, err := c.QueryDailySymbol(context.Background(), "NOPE.NS", "1mo")
		assert.ErrorContains(t, err, "delisted")
	})
}

func TestFinanceClient_ParseChart(t *testing.T) {
	c := NewFinanceClientWithBaseURL("http://unused", time.Second)

	_, err := c.ParseChart(Response{})
	assert.Error(t, err)

	price := 1.0
	_, err = c.ParseChart(Response{Chart: Chart{Result: []Result{{
		Timestamp:  []int64{1, 2},
		Indicators: IndicatorsContainer{Quote: []Quote{{Close: []*float64{&price}}}},
	}}}})
	assert.ErrorContains(t, err, "mismatched")
}
