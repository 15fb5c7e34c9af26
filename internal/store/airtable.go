// Package store is the record-store client for the Airtable-backed Sales
// and Consulting systems.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hotelrisk/riskadvisor/internal/cache"
	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// FetchError wraps a record-store failure. It is surfaced to the caller
// as-is; the core performs no retries.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("record store %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("record store %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client talks to the Airtable REST API. All requests pass through a shared
// rate limiter honoring the API's requests-per-second cap.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	maxBody    int64
	maxRecords int

	// Short-TTL cache for sales and task lookups. Claim fetches bypass it:
	// claim records are per-query snapshots, never cached across queries.
	cache    cache.Cache
	cacheTTL time.Duration

	cfg model.AirtableConfig
}

// NewClient creates a record-store client from configuration.
func NewClient(cfg model.AirtableConfig, httpCfg model.HTTPConfig, cacheCfg model.CacheConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	var responseCache cache.Cache
	if cacheCfg.Enabled {
		responseCache = cache.NewMemoryCache(cacheCfg.TTL, 10*time.Minute)
	}

	return &Client{
		httpClient: &http.Client{Timeout: httpCfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		maxBody:    httpCfg.MaxBodyBytes,
		maxRecords: cfg.MaxRecords,
		cache:      responseCache,
		cacheTTL:   cacheCfg.TTL,
		cfg:        cfg,
	}
}

// record is the raw Airtable record shape.
type record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset"`
}

type listOptions struct {
	FilterFormula string
	MaxRecords    int
	SortField     string
	SortDirection string
}

// listRecords pages through a table, following offsets until the record cap
// is reached.
func (c *Client) listRecords(ctx context.Context, baseID, tableID string, opts listOptions) ([]record, error) {
	maxRecords := opts.MaxRecords
	if maxRecords <= 0 {
		maxRecords = c.maxRecords
	}

	var all []record
	offset := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Op: "list", Err: err}
		}

		q := url.Values{}
		if opts.FilterFormula != "" {
			q.Set("filterByFormula", opts.FilterFormula)
		}
		pageSize := maxRecords
		if pageSize > 100 {
			pageSize = 100
		}
		q.Set("pageSize", strconv.Itoa(pageSize))
		if opts.SortField != "" {
			direction := opts.SortDirection
			if direction == "" {
				direction = "desc"
			}
			q.Set("sort[0][field]", opts.SortField)
			q.Set("sort[0][direction]", direction)
		}
		if offset != "" {
			q.Set("offset", offset)
		}

		var page listResponse
		if err := c.doJSON(ctx, http.MethodGet, c.tableURL(baseID, tableID)+"?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Records...)
		offset = page.Offset
		if offset == "" || len(all) >= maxRecords {
			break
		}
	}

	if len(all) > maxRecords {
		all = all[:maxRecords]
	}
	return all, nil
}

// createRecord inserts one record into a table.
func (c *Client) createRecord(ctx context.Context, baseID, tableID string, fields map[string]any) (*record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Op: "create", Err: err}
	}

	payload, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return nil, &FetchError{Op: "create", Err: err}
	}

	var created record
	if err := c.doJSON(ctx, http.MethodPost, c.tableURL(baseID, tableID), payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) tableURL(baseID, tableID string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, baseID, tableID)
}

func (c *Client) doJSON(ctx context.Context, method, rawURL string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return &FetchError{Op: method, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: method, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return &FetchError{Op: method, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchError{Op: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &FetchError{Op: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// ── Field extraction helpers ──────────────────────────────────────────────
//
// Airtable lookup and rollup fields arrive as lists; plain fields as
// scalars. These helpers normalize both shapes.

// fieldString returns the first non-empty of the named fields, flattening
// list values by joining their elements.
func fieldString(fields map[string]any, names ...string) string {
	for _, name := range names {
		if s := stringify(fields[name]); s != "" {
			return s
		}
	}
	return ""
}

func stringify(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return ""
	case []any:
		var parts []string
		for _, item := range v {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// fieldDecimal extracts a currency amount, taking the first element of a
// list value. Unparseable values become zero; amounts are display data here,
// the query path fails loudly in the tokenizer instead.
func fieldDecimal(fields map[string]any, name string) decimal.Decimal {
	return toDecimal(firstElement(fields[name]))
}

// fieldDecimalLast extracts an amount from the last element of a list
// value, for rollups where the latest entry is authoritative.
func fieldDecimalLast(fields map[string]any, name string) decimal.Decimal {
	val := fields[name]
	if list, ok := val.([]any); ok {
		if len(list) == 0 {
			return decimal.Zero
		}
		val = list[len(list)-1]
	}
	return toDecimal(val)
}

func firstElement(val any) any {
	if list, ok := val.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return val
}

func toDecimal(val any) decimal.Decimal {
	switch v := val.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(v, "$"), ",", ""))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func fieldInt(fields map[string]any, name string) int {
	d := fieldDecimal(fields, name)
	return int(d.IntPart())
}

func fieldBool(fields map[string]any, name string) bool {
	switch v := fields[name].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return false
	}
}
