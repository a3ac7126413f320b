package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/watchlist"
)

// serve returns a client for a server answering every request with status
// and body.
func serve(t *testing.T, status int, body string) (*Client, *http.Request) {
	t.Helper()
	var last http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second), &last
}

func TestQuote(t *testing.T) {
	c, req := serve(t, http.StatusOK, `{"chart":{"result":[{"meta":{"symbol":"OTP.BD","regularMarketPrice":16500.55}}],"error":null}}`)

	q, err := c.Quote(context.Background(), "OTP.BD")
	require.NoError(t, err)
	assert.Equal(t, "OTP.BD", q.Symbol)
	assert.True(t, q.Price.Equal(watchlist.A(16500.55)), "got %v", q.Price)

	assert.Equal(t, "/v8/finance/chart/OTP.BD", req.URL.Path)
	assert.Equal(t, "1d", req.URL.Query().Get("interval"))
	assert.Equal(t, "1d", req.URL.Query().Get("range"))
	assert.NotEmpty(t, req.Header.Get("User-Agent"))
}

func TestQuoteEscapesSymbol(t *testing.T) {
	c, req := serve(t, http.StatusOK, `{"chart":{"result":[{"meta":{"regularMarketPrice":1}}],"error":null}}`)
	_, err := c.Quote(context.Background(), "^GSPC")
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/^GSPC", req.URL.Path)
}

func TestQuoteWithoutPrice(t *testing.T) {
	for name, body := range map[string]string{
		"missing": `{"chart":{"result":[{"meta":{"symbol":"X"}}],"error":null}}`,
		"null":    `{"chart":{"result":[{"meta":{"regularMarketPrice":null}}],"error":null}}`,
		"empty":   `{"chart":{"result":[],"error":null}}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := serve(t, http.StatusOK, body)
			q, err := c.Quote(context.Background(), "X")
			require.NoError(t, err)
			assert.False(t, q.Price.Valid())
		})
	}
}

func TestQuoteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"chart error", http.StatusNotFound, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`, "Not Found: No data found, symbol may be delisted"},
		{"404 without chart error", http.StatusNotFound, `{}`, "Not Found"},
		{"server error", http.StatusInternalServerError, `oops`, "500"},
		{"not json", http.StatusOK, `<html>`, "error retrieving"},
		{"not a number", http.StatusOK, `{"chart":{"result":[{"meta":{"regularMarketPrice":"12"}}],"error":null}}`, "is not a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := serve(t, tt.status, tt.body)
			_, err := c.Quote(context.Background(), "X")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestQuoteCanceled(t *testing.T) {
	c, _ := serve(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Quote(ctx, "X")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDefaults(t *testing.T) {
	c := New("", 30*time.Second)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, 30*time.Second, c.HTTPClient.Timeout)
}
