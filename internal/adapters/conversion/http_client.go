package conversion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type convertRequest struct {
	Items []domain.ConversionItem `json:"items"`
	To    domain.CurrencyCode     `json:"to"`
}

type convertResponse struct {
	Results []decimal.NullDecimal `json:"results"`
}

// HTTPClient talks to a remote conversion service.
//
//	POST {base}/convert        {"items":[one item],"to":"EUR"}
//	POST {base}/convert/batch  {"items":[...],"to":"EUR"}
//
// Both answer {"results":[...]} aligned with items. A null or absent position is left unanswered.
type HTTPClient struct {
	baseURL  string
	client   *http.Client
	maxBytes int64
}

var _ portssvc.ConversionClient = (*HTTPClient)(nil)

// DefaultMaxResponseBytes bounds how much of a response body is read.
const DefaultMaxResponseBytes = 4 << 20

// HTTPClientOption is a functional option for configuring an HTTPClient
type HTTPClientOption func(*HTTPClient)

// WithMaxResponseBytes replaces DefaultMaxResponseBytes.
func WithMaxResponseBytes(n int64) HTTPClientOption {
	return func(c *HTTPClient) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// NewHTTPClient creates a client for the service at baseURL with a per-request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, options ...HTTPClientOption) *HTTPClient {
	client := new(http.Client)
	client.Timeout = timeout
	c := &HTTPClient{baseURL: baseURL, client: client, maxBytes: DefaultMaxResponseBytes}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *HTTPClient) ConvertOne(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	results, err := c.post(ctx, "/convert", convertRequest{
		Items: []domain.ConversionItem{{Amount: amount, Currency: from}},
		To:    to,
	})
	if err != nil {
		return decimal.Zero, err
	}
	if len(results) == 0 || !results[0].Valid {
		return decimal.Zero, fmt.Errorf("conversion service returned no result for %s->%s", from, to)
	}
	return results[0].Decimal, nil
}

func (c *HTTPClient) ConvertBatch(ctx context.Context, items []domain.ConversionItem, to domain.CurrencyCode) (map[int]decimal.Decimal, error) {
	results, err := c.post(ctx, "/convert/batch", convertRequest{Items: items, To: to})
	if err != nil {
		return nil, err
	}
	out := make(map[int]decimal.Decimal, len(items))
	for i := range items {
		if i >= len(results) || !results[i].Valid {
			continue
		}
		out[i] = results[i].Decimal
	}
	return out, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload convertRequest) ([]decimal.NullDecimal, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("cannot encode conversion request: %w", err)
	}
	uri := c.baseURL + path
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot create http request %q: %w", uri, err)
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(r)
	if err != nil {
		return nil, fmt.Errorf("cannot execute http request: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("cannot read conversion response: %w", err)
	}
	if n > c.maxBytes {
		return nil, fmt.Errorf("conversion response from %v%v exceeds %d bytes", resp.Request.URL.Host, resp.Request.URL.Path, c.maxBytes)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("cannot http POST %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	var decoded convertResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		return nil, fmt.Errorf("could not decode conversion response: %w", err)
	}
	return decoded.Results, nil
}
