// Package commerce is the REST client for the upstream commerce backend.
// Responses arrive wrapped in an envelope whose shape varies between
// deployments; this package tolerates both and hands raw order payloads to
// the normalization layer untouched.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"orderdesk/internal/config"
	"orderdesk/internal/domain/order"
	"orderdesk/pkg/logger"
)

type Client struct {
	httpClient *http.Client
	cfg        config.CommerceConfig
	log        logger.Logger
}

func NewClient(cfg config.CommerceConfig, log logger.Logger) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// ListOrders fetches every page of the order list and returns the raw order
// payloads in upstream order.
func (c *Client) ListOrders(ctx context.Context) ([]json.RawMessage, error) {
	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	sleep := c.cfg.Sleep()
	if sleep <= 0 {
		sleep = 200 * time.Millisecond
	}

	all := make([]json.RawMessage, 0)
	page := 1
	totalPages := 1

	for page <= totalPages {
		u, err := c.buildURL("/orders", url.Values{
			"page_size":   {strconv.Itoa(pageSize)},
			"page_number": {strconv.Itoa(page)},
		})
		if err != nil {
			return nil, err
		}

		env, err := c.getEnvelope(ctx, u)
		if err != nil {
			return nil, err
		}

		list, err := dataList(env)
		if err != nil {
			c.log.Error("order list payload is malformed", logger.Int("page", page), logger.Error(err))
			return nil, err
		}
		if len(list) == 0 {
			break
		}
		all = append(all, list...)

		if tp := env.totalPages(); tp > 0 {
			totalPages = tp
		}
		page++

		if page <= totalPages {
			select {
			case <-ctx.Done():
				return all, ctx.Err()
			case <-time.After(sleep):
			}
		}
	}

	return all, nil
}

// GetOrder fetches one raw order by its numeric id.
func (c *Client) GetOrder(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getOne(ctx, "/orders/"+url.PathEscape(id))
}

// GetOrderByNumber fetches one raw order by its human-readable reference.
func (c *Client) GetOrderByNumber(ctx context.Context, number string) (json.RawMessage, error) {
	return c.getOne(ctx, "/orders/by-number/"+url.PathEscape(number))
}

// CreateOrder submits a new order payload.
func (c *Client) CreateOrder(ctx context.Context, payload []byte) error {
	u, err := c.buildURL("/orders", nil)
	if err != nil {
		return err
	}
	resp, body, err := c.do(ctx, http.MethodPost, u, payload)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return serverError(resp.StatusCode, body)
	}
	return nil
}

// UpdateOrderStatus changes an order's status. The primary encoding carries
// the code as a query parameter; when the backend rejects that, exactly one
// fallback attempt re-sends the code in a JSON body. No further retries.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status int) error {
	u, err := c.buildURL("/orders/"+url.PathEscape(id)+"/status", url.Values{
		"status": {strconv.Itoa(status)},
	})
	if err != nil {
		return err
	}

	resp, body, err := c.do(ctx, http.MethodPut, u, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	firstErr := serverError(resp.StatusCode, body)
	c.log.Warn("status update rejected, retrying with body encoding",
		logger.String("order_id", id), logger.Int("status_code", resp.StatusCode))

	fallbackURL, err := c.buildURL("/orders/"+url.PathEscape(id)+"/status", nil)
	if err != nil {
		return err
	}
	payload, _ := json.Marshal(map[string]int{"status": status})
	resp, _, err = c.do(ctx, http.MethodPut, fallbackURL, payload)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	// surface the original rejection; the fallback was a one-shot attempt
	return firstErr
}

// DeleteOrder soft-deletes an order upstream.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	u, err := c.buildURL("/orders/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	resp, body, err := c.do(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return serverError(resp.StatusCode, body)
	}
	return nil
}

// RestoreOrder reverses a soft delete.
func (c *Client) RestoreOrder(ctx context.Context, id string) error {
	u, err := c.buildURL("/orders/"+url.PathEscape(id)+"/restore", nil)
	if err != nil {
		return err
	}
	resp, body, err := c.do(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return serverError(resp.StatusCode, body)
	}
	return nil
}

/* ================= request plumbing ================= */

func (c *Client) getOne(ctx context.Context, path string) (json.RawMessage, error) {
	u, err := c.buildURL(path, nil)
	if err != nil {
		return nil, err
	}
	env, err := c.getEnvelope(ctx, u)
	if err != nil {
		return nil, err
	}
	payload, ok := env.payload()
	if !ok {
		return nil, fmt.Errorf("%w: missing data payload", order.ErrMalformedResponse)
	}
	return payload, nil
}

// getEnvelope runs a GET with retry on transport failures and server errors.
// Only reads are retried; mutations go out exactly once per encoding.
func (c *Client) getEnvelope(ctx context.Context, u string) (envelope, error) {
	attempts := c.cfg.RetryMax
	if attempts <= 0 {
		attempts = 1
	}
	wait := c.cfg.RetryWait()
	if wait <= 0 {
		wait = 500 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return envelope{}, ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
		}

		resp, body, err := c.do(ctx, http.MethodGet, u, nil)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusNotFound {
			return envelope{}, c.notFoundError(body)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = serverError(resp.StatusCode, body)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return envelope{}, serverError(resp.StatusCode, body)
		}
		return parseEnvelope(body)
	}
	return envelope{}, lastErr
}

func (c *Client) do(ctx context.Context, method, u string, payload []byte) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", order.ErrNoResponse, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", order.ErrNoResponse, err)
	}
	return resp, body, nil
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid commerce base url: %w", err)
	}
	u := *base
	u.Path = base.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *Client) notFoundError(body []byte) error {
	if env, err := parseEnvelope(body); err == nil {
		if msg := env.message(); msg != "" {
			return fmt.Errorf("%w: %s", order.ErrNotFound, msg)
		}
	}
	return order.ErrNotFound
}

// serverError extracts the nested message from an error envelope, falling
// back to a generic text when there is none to extract.
func serverError(status int, body []byte) error {
	if env, err := parseEnvelope(body); err == nil {
		if msg := env.message(); msg != "" {
			return fmt.Errorf("commerce backend: %s (status %d)", msg, status)
		}
	}
	return fmt.Errorf("commerce backend returned status %d", status)
}
