package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://viacep.com.br"

var (
	// ErrInvalid: a ViaCEP recusou o formato do CEP (status != 200).
	ErrInvalid = errors.New("viacep: invalid cep")
	// ErrNotFound: CEP bem formado, mas inexistente ({"erro": true}).
	ErrNotFound = errors.New("viacep: cep not found")
)

type Address struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	IBGE       string `json:"ibge,omitempty"`
	Erro       any    `json:"erro,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("cmp", "viacep"),
	}
}

// Lookup consulta GET /ws/{cep}/json/. cep deve vir só com dígitos.
// Falhas de transporte voltam embrulhadas, sem sentinela.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("viacep: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("viacep_lookup_failed", "cep", cep, "err", err)
		return nil, fmt.Errorf("viacep: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Info("viacep_lookup_invalid", "cep", cep, "status", resp.StatusCode)
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrInvalid
	}

	var addr Address
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&addr); err != nil {
		return nil, fmt.Errorf("viacep: decode: %w", err)
	}
	if addr.Erro != nil {
		c.log.Info("viacep_lookup_not_found", "cep", cep)
		return nil, ErrNotFound
	}
	addr.UF = strings.ToUpper(strings.TrimSpace(addr.UF))
	if addr.UF == "" {
		return nil, fmt.Errorf("viacep: resposta sem uf para %s", cep)
	}

	c.log.Debug("viacep_lookup_ok", "cep", cep, "uf", addr.UF, "duration_ms", time.Since(start).Milliseconds())
	return &addr, nil
}
