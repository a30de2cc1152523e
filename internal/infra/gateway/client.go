package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domproduct "example.com/finproducts-admin/internal/domain/product"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote financial products API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

func (c *Client) List(ctx context.Context) ([]domproduct.FinancialProduct, error) {
	var body struct {
		Data []domproduct.FinancialProduct `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/bp/products", nil, &body); err != nil {
		c.logger.Error("failed to list products", "error", err)
		return nil, err
	}
	return body.Data, nil
}

func (c *Client) GetByID(ctx context.Context, id string) (*domproduct.FinancialProduct, error) {
	var p domproduct.FinancialProduct
	err := c.do(ctx, http.MethodGet, "/bp/products/"+url.PathEscape(id), nil, &p)
	if err != nil {
		c.logger.Error("failed to get product", "id", id, "error", err)
		return nil, err
	}
	return &p, nil
}

func (c *Client) Create(ctx context.Context, p domproduct.FinancialProduct) (*domproduct.MutationResult, error) {
	var res domproduct.MutationResult
	if err := c.do(ctx, http.MethodPost, "/bp/products", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Update(ctx context.Context, p domproduct.FinancialProduct, id string) (*domproduct.MutationResult, error) {
	var res domproduct.MutationResult
	if err := c.do(ctx, http.MethodPut, "/bp/products/"+url.PathEscape(id), p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bp/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := c.do(ctx, http.MethodGet, "/bp/products/verification/"+url.PathEscape(id), nil, &exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domproduct.ErrProductNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, domproduct.ErrUnexpectedResponse)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}
