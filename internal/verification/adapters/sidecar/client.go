// Package sidecar is the HTTP client shared by the OCR and face inference
// sidecars. It maps transport and status failures onto ports.AdapterError.
package sidecar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"kycverify/internal/verification/ports"
	"kycverify/pkg/platform/sentinel"
)

// maxResponseBytes bounds sidecar responses; embeddings and OCR lines are small.
const maxResponseBytes = 4 << 20

// Client posts images to one sidecar.
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for the sidecar at baseURL. name identifies the adapter
// in errors and spans.
func New(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return name + " " + r.URL.Path
				}),
			),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the adapter name.
func (c *Client) Name() string {
	return c.name
}

// PostImage sends image as multipart field "image" to path and decodes the JSON
// reply into out. image names the upload in errors.
func (c *Client) PostImage(ctx context.Context, path, image string, data []byte, out any) error {
	body, contentType, err := multipartBody(data)
	if err != nil {
		return ports.NewAdapterError(ports.ErrorInternal, c.name, "build request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return ports.NewAdapterError(ports.ErrorInternal, c.name, "build request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.transportError(ctx, err)
	}

	if err := c.statusError(resp.StatusCode, raw); err != nil {
		var ae *ports.AdapterError
		if errors.As(err, &ae) && ae.Category == ports.ErrorUnreadableImage {
			ae.Image = image
		}
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return ports.NewAdapterError(ports.ErrorBadData, c.name, "decode response", err)
	}
	return nil
}

// Health calls GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return ports.NewAdapterError(ports.ErrorInternal, c.name, "build request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return ports.NewAdapterError(ports.ErrorAdapterOutage, c.name,
			fmt.Sprintf("health check returned %d", resp.StatusCode), sentinel.ErrUnavailable)
	}
	return nil
}

func (c *Client) transportError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return ports.Timeout(c.name, err)
	}
	return ports.NewAdapterError(ports.ErrorAdapterOutage, c.name, "sidecar unreachable", err)
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (c *Client) statusError(status int, raw []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := fmt.Sprintf("sidecar returned %d", status)
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		if eb.Detail != "" {
			msg += ": " + eb.Detail
		} else if eb.Error != "" {
			msg += ": " + eb.Error
		}
	}

	switch {
	case status == http.StatusUnprocessableEntity || status == http.StatusUnsupportedMediaType:
		return ports.NewAdapterError(ports.ErrorUnreadableImage, c.name, msg, nil)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ports.Timeout(c.name, errors.New(msg))
	case status >= 500 || status == http.StatusTooManyRequests:
		return ports.NewAdapterError(ports.ErrorAdapterOutage, c.name, msg, nil)
	default:
		return ports.NewAdapterError(ports.ErrorBadData, c.name, msg, nil)
	}
}

func multipartBody(data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "image")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
