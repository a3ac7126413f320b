// Package yahoo fetches quotes from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/watchlist"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public Yahoo Finance API.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// the API rejects requests without a browser like user agent.
const defaultUserAgent = "Mozilla/5.0 (compatible; stocksync/1.0)"

const (
	pricePath = "$.chart.result[0].meta.regularMarketPrice"
	errorPath = "$.chart.error"
)

// Client is a Yahoo Finance quote client.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

var _ watchlist.Quoter = (*Client)(nil)

// New returns a client for baseURL (DefaultBaseURL if empty), where each
// request is limited to timeout (none if 0).
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		UserAgent:  defaultUserAgent,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Quote returns the regular market price of symbol.
//
// A payload without a price is not an error: the returned Quote has a Null
// price.
func (c *Client) Quote(ctx context.Context, symbol string) (watchlist.Quote, error) {
	q := watchlist.Quote{Symbol: symbol}
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.BaseURL, url.PathEscape(symbol))

	var jobj any
	status, err := c.jwget(ctx, addr, &jobj)
	if err != nil {
		return q, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}

	if jerr, err := jsonpath.Get(errorPath, jobj); err == nil && jerr != nil {
		return q, fmt.Errorf("error retrieving %q: %v", symbol, describe(jerr))
	}
	if status != http.StatusOK {
		return q, fmt.Errorf("error retrieving %q: %s", symbol, http.StatusText(status))
	}

	jval, err := jsonpath.Get(pricePath, jobj)
	if err != nil {
		// unknown key: the payload has no price.
		return q, nil
	}
	// jsonpath may wrap a single answer in a list, keep the first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return q, nil
		}
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case nil:
		return q, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return q, fmt.Errorf("cannot read price of %q: %w", symbol, err)
		}
		q.Price = watchlist.A(d)
		return q, nil
	default:
		return q, fmt.Errorf("cannot read price of %q: %q is not a number: %v", symbol, pricePath, jval)
	}
}

// describe extracts the description of a chart error.
func describe(jerr any) string {
	if m, ok := jerr.(map[string]any); ok {
		if d, ok := m["description"].(string); ok && d != "" {
			if code, ok := m["code"].(string); ok && code != "" {
				return code + ": " + d
			}
			return d
		}
	}
	return fmt.Sprint(jerr)
}

// jwget performs an HTTP GET request to addr and decodes the JSON response
// body into data. Numbers are decoded as json.Number to keep prices exact.
// It returns the response status code.
func (c *Client) jwget(ctx context.Context, addr string, data any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// chart errors come with a 404 and a json body.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return resp.StatusCode, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(data); err != nil {
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
		}
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}
