// Package eastmoney implements the data capability over Eastmoney's public
// quote endpoints. Operation names follow the upstream catalogue the adapters
// try; names the provider cannot serve are simply not registered, which the
// resolver treats as "operation not available".
package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/config"
	"github.com/finquery/finquery/internal/table"
	"go.uber.org/zap"
)

// Client talks to the Eastmoney endpoints.
type Client struct {
	http *http.Client
	cfg  config.EastmoneyConfig
	log  *zap.Logger
}

// New creates a client. Logger may be nil.
func New(cfg config.CapabilityConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		cfg:  cfg.Eastmoney,
		log:  log,
	}
}

// Registry builds the operation registry backed by this client.
func (c *Client) Registry() *capability.Registry {
	reg := capability.NewRegistry()
	c.registerOps(reg)
	return reg
}

// secid converts a bare code to Eastmoney's market-prefixed id.
// Shanghai = 1, Shenzhen/Beijing = 0.
func secid(code string) string {
	if strings.HasPrefix(code, "6") || strings.HasPrefix(code, "5") {
		return "1." + code
	}
	return "0." + code
}

func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	u := rawURL
	if len(params) > 0 {
		u = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; finquery/1.0)")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s status=%d body=%s", rawURL, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// field pairs an Eastmoney list-API field code with its native column label.
type field struct {
	Code  string
	Label string
	// Scale divides the raw integer value; 0 means pass through.
	Scale float64
}

// clist fetches one page of the list API and projects it to a table.
func (c *Client) clist(ctx context.Context, fs string, fields []field, size int, sortField string) (*table.Table, error) {
	codes := make([]string, len(fields))
	for i, f := range fields {
		codes[i] = f.Code
	}

	params := url.Values{}
	params.Set("pn", "1")
	params.Set("pz", strconv.Itoa(size))
	params.Set("po", "1")
	params.Set("np", "1")
	params.Set("fltt", "2")
	params.Set("invt", "2")
	params.Set("fs", fs)
	params.Set("fields", strings.Join(codes, ","))
	if sortField != "" {
		params.Set("fid", sortField)
	}

	var result listResponse
	if err := c.getJSON(ctx, c.cfg.ListURL, params, &result); err != nil {
		return nil, err
	}
	if result.Data == nil || len(result.Data.Diff) == 0 {
		return nil, fmt.Errorf("empty result for fs=%s", fs)
	}

	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label
	}
	tab := table.New(labels...)

	for _, row := range result.Data.Diff {
		values := make([]any, len(fields))
		for i, f := range fields {
			v, ok := row[f.Code]
			if !ok {
				continue
			}
			if f.Scale > 0 {
				if num, numOK := table.SafeFloat(v); numOK {
					values[i] = num / f.Scale
					continue
				}
			}
			values[i] = v
		}
		tab.Append(values...)
	}
	return tab, nil
}

// kline fetches the candlestick endpoint and splits its comma-joined lines.
func (c *Client) kline(ctx context.Context, code, klt, beg, end string) (*table.Table, error) {
	params := url.Values{}
	params.Set("secid", secid(code))
	params.Set("klt", klt)
	params.Set("fqt", "1")
	params.Set("beg", beg)
	params.Set("end", end)
	params.Set("fields1", "f1,f2,f3,f4,f5,f6")
	params.Set("fields2", "f51,f52,f53,f54,f55,f56,f57,f58")

	var result klineResponse
	if err := c.getJSON(ctx, c.cfg.HistoryURL, params, &result); err != nil {
		return nil, err
	}
	if result.Data == nil || len(result.Data.Klines) == 0 {
		return nil, fmt.Errorf("no kline data for %s", code)
	}

	cols := []string{"日期", "开盘", "收盘", "最高", "最低", "成交量", "成交额", "振幅"}
	tab := table.New(cols...)
	for _, line := range result.Data.Klines {
		parts := strings.Split(line, ",")
		values := make([]any, 0, len(cols))
		for i := range cols {
			if i >= len(parts) {
				values = append(values, nil)
				continue
			}
			if i == 0 {
				values = append(values, parts[i])
				continue
			}
			if f, ok := table.SafeFloat(parts[i]); ok {
				values = append(values, f)
			} else {
				values = append(values, parts[i])
			}
		}
		tab.Append(values...)
	}
	return tab, nil
}

// Response envelopes
type listResponse struct {
	Data *listData `json:"data"`
}

type listData struct {
	Total int              `json:"total"`
	Diff  []map[string]any `json:"diff"`
}

type klineResponse struct {
	Data *klineData `json:"data"`
}

type klineData struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Klines []string `json:"klines"`
}
