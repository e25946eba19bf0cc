package estimate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// CalculatePath é o caminho do endpoint de cálculo, relativo à base da API.
	CalculatePath = "/api/calculate"

	// RequestIDHeader correlaciona o log do cliente com o access log do serviço.
	RequestIDHeader = "X-Request-ID"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client chama o serviço de estimativa. Não faz retry: uma nova tentativa
// é sempre um novo envio do usuário.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

type Option func(*Client)

// WithHTTPClient troca o http.Client (o timeout dele passa a valer).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient recebe a base da API, ex.: "http://localhost:8080".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("cmp", "estimate.client")
	return c
}

// Estimate valida req, envia e devolve um Result já conferido, ou um *Error.
func (c *Client) Estimate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, unavailable(fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+CalculatePath, bytes.NewReader(payload))
	if err != nil {
		return nil, unavailable(fmt.Errorf("build request: %w", err))
	}
	reqID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, reqID)

	log := c.log.With("request_id", reqID, "cep", req.PostalCode)
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("estimate_transport_error", "err", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, unavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("estimate_read_error", "err", err, "status", resp.StatusCode)
		return nil, unavailable(fmt.Errorf("read response: %w", err))
	}

	if msg, ok := structuredError(raw); ok {
		log.Info("estimate_rejected", "status", resp.StatusCode, "message", msg)
		return nil, rejected(msg)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("estimate_unexpected_status", "status", resp.StatusCode)
		return nil, unavailable(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	res, err := decodeResult(raw)
	if err != nil {
		log.Warn("estimate_malformed_response", "err", err)
		return nil, unavailable(err)
	}
	if err := res.Check(req.ConsumptionKwh); err != nil {
		log.Error("estimate_integrity_error", "err", err)
		return nil, err
	}

	log.Info("estimate_ok",
		"estado", res.State, "bandeira", res.SurchargeLabel,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// structuredError reconhece {"error": "..."} com mensagem não vazia.
func structuredError(raw []byte) (string, bool) {
	var e ErrorResponse
	if err := json.Unmarshal(raw, &e); err != nil {
		return "", false
	}
	msg := strings.TrimSpace(e.Error)
	return msg, msg != ""
}
