package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/schooldesk/internal/logging"
)

// Client issues JSON requests against endpoints relative to a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	faults  *FaultHandler
}

// NewClient wires base below the augmenter and logging transport. A nil
// base means http.DefaultTransport.
func NewClient(baseURL string, timeout time.Duration, base http.RoundTripper, credential CredentialFunc, faults *FaultHandler, l logging.Logger) *Client {
	transport := NewAugmenter(NewLoggingTransport(base, l), credential)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
		faults:  faults,
	}
}

// Get fetches endpoint. Parameters whose value is nil or the empty string
// are left out of the query.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]any, out any) error {
	u := c.url(endpoint)
	if q := encodeParams(params); q != "" {
		u += "?" + q
	}
	return c.do(ctx, http.MethodGet, u, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, c.url(endpoint), body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, id any, body, out any) error {
	return c.do(ctx, http.MethodPut, c.url(endpoint, id), body, out)
}

func (c *Client) Patch(ctx context.Context, endpoint string, id any, body, out any) error {
	return c.do(ctx, http.MethodPatch, c.url(endpoint, id), body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, id any, out any) error {
	return c.do(ctx, http.MethodDelete, c.url(endpoint, id), nil, out)
}

func (c *Client) url(endpoint string, id ...any) string {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	for _, v := range id {
		u += "/" + url.PathEscape(fmt.Sprint(v))
	}
	return u
}

func encodeParams(params map[string]any) string {
	q := url.Values{}
	for k, v := range params {
		if v == nil {
			continue
		}
		s := fmt.Sprint(v)
		if s == "" {
			continue
		}
		q.Set(k, s)
	}
	return q.Encode()
}

func (c *Client) do(ctx context.Context, method, u string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.faults.Transport(req, err)
	}
	defer resp.Body.Close()

	if err := c.faults.Check(req, resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.faults.Transport(req, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
