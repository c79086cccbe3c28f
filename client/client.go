package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	converter "github.com/malusev998/currency-converter"
)

const (
	DefaultURL     = "http://localhost:5000"
	DefaultTimeout = 10 * time.Second

	LastUpdatePath  = "/api/last_update"
	UpdateRatesPath = "/api/update_rates"
	ConvertPath     = "/api/convert"

	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 32 << 10
)

var (
	ErrInvalidResponse = errors.New("invalid response")
	ErrMissingField    = errors.New("response is missing a field")
)

type (
	Config struct {
		URL        string
		Timeout    time.Duration
		HTTPClient *http.Client
		Logger     *zap.Logger
	}

	Client struct {
		url        string
		httpClient *http.Client
		logger     *zap.Logger
	}

	envelope struct {
		Status      string   `json:"status"`
		Message     string   `json:"message"`
		LastUpdated *string  `json:"last_updated"`
		Result      *float64 `json:"result"`
		Rate        *float64 `json:"rate"`
	}
)

var _ converter.RatesAPI = (*Client)(nil)

func New(c Config) *Client {
	url := strings.TrimRight(c.URL, "/")

	if url == "" {
		url = DefaultURL
	}

	httpClient := c.HTTPClient

	if httpClient == nil {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	logger := c.Logger

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		url:        url,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) LastUpdate(ctx context.Context) (converter.LastUpdate, error) {
	data, err := c.do(ctx, http.MethodGet, LastUpdatePath, nil)
	if err != nil {
		return "", err
	}

	if data.LastUpdated == nil {
		return "", fmt.Errorf("%s: %w: last_updated", LastUpdatePath, ErrMissingField)
	}

	return converter.LastUpdate(*data.LastUpdated), nil
}

func (c *Client) UpdateRates(ctx context.Context) (converter.LastUpdate, error) {
	data, err := c.do(ctx, http.MethodPost, UpdateRatesPath, nil)
	if err != nil {
		return "", err
	}

	if data.LastUpdated == nil {
		return "", fmt.Errorf("%s: %w: last_updated", UpdateRatesPath, ErrMissingField)
	}

	return converter.LastUpdate(*data.LastUpdated), nil
}

func (c *Client) Convert(ctx context.Context, req converter.ConversionRequest) (converter.ConversionResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return converter.ConversionResult{}, fmt.Errorf("marshal request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, ConvertPath, payload)
	if err != nil {
		return converter.ConversionResult{}, err
	}

	if data.Result == nil || data.Rate == nil {
		return converter.ConversionResult{}, fmt.Errorf("%s: %w: result, rate", ConvertPath, ErrMissingField)
	}

	return converter.ConversionResult{
		Result: *data.Result,
		Rate:   *data.Rate,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, string, error) {
	var body io.Reader

	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}

	requestID := uuid.New().String()

	req.Header.Add("Accept", "application/json")
	req.Header.Add(RequestIDHeader, requestID)

	if payload != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	return req, requestID, nil
}

// do sends the request and decodes the JSON envelope whatever the HTTP
// status is, because the backend reports failures as JSON with non-2xx codes.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (envelope, error) {
	req, requestID, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return envelope{}, err
	}

	logger := c.logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	res, err := c.httpClient.Do(req)

	if err != nil {
		return envelope{}, fmt.Errorf("%s %s: %w", method, path, err)
	}

	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return envelope{}, fmt.Errorf("%s %s: read response body: %w", method, path, err)
	}

	logger.Debug("backend responded",
		zap.Int("http_status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	var data envelope

	if err := json.Unmarshal(body, &data); err != nil {
		return envelope{}, fmt.Errorf("%s %s: %w: http %d: %v", method, path, ErrInvalidResponse, res.StatusCode, err)
	}

	if data.Status != converter.StatusSuccess {
		return envelope{}, &converter.BusinessError{
			Status:     data.Status,
			Message:    data.Message,
			HTTPStatus: res.StatusCode,
		}
	}

	return data, nil
}
