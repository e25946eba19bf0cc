package aneel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Werneck0live/calculadora-energia/internal/models"
)

const (
	DefaultBaseURL = "https://dadosabertos.aneel.gov.br"
	searchPath     = "/api/3/action/datastore_search"

	// TariffResource: tarifas homologadas das distribuidoras.
	TariffResource = "fcf2906c-7c32-4b9b-a637-054e7a5234f4"
	// FlagResource: acionamento das bandeiras tarifárias.
	FlagResource = "0591b8f6-fe54-437b-b72b-1aa2efd46e42"

	flagLimit = 1000
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	limit      int
	log        *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, limit int, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limit <= 0 {
		limit = 20000
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limit:      limit,
		log:        log.With("cmp", "aneel"),
	}
}

type searchResponse[T any] struct {
	Success bool `json:"success"`
	Result  struct {
		Records []T `json:"records"`
		Total   int `json:"total"`
	} `json:"result"`
	Error json.RawMessage `json:"error,omitempty"`
}

func search[T any](ctx context.Context, c *Client, params url.Values) ([]T, error) {
	u := c.baseURL + searchPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("datastore_search %s: status %d", params.Get("resource_id"), resp.StatusCode)
	}

	var body searchResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("datastore_search %s: decode: %w", params.Get("resource_id"), err)
	}
	if !body.Success {
		return nil, fmt.Errorf("datastore_search %s: success=false %s", params.Get("resource_id"), body.Error)
	}
	c.log.Info("aneel_records_received",
		"resource", params.Get("resource_id"),
		"records", len(body.Result.Records), "total", body.Result.Total,
	)
	return body.Result.Records, nil
}

// TariffRecords busca os registros que mencionam B1.
func (c *Client) TariffRecords(ctx context.Context) ([]TariffRecord, error) {
	return search[TariffRecord](ctx, c, url.Values{
		"resource_id": {TariffResource},
		"q":           {"B1"},
		"limit":       {strconv.Itoa(c.limit)},
	})
}

func (c *Client) FlagRecords(ctx context.Context) ([]FlagRecord, error) {
	return search[FlagRecord](ctx, c, url.Values{
		"resource_id": {FlagResource},
		"limit":       {strconv.Itoa(flagLimit)},
	})
}

// Snapshot é o resultado já processado de uma sincronização.
type Snapshot struct {
	Tariffs []models.Tariff
	Flag    *models.Flag // nil quando a bandeira não pôde ser obtida
	Records int
}

var ErrNoTariffs = errors.New("aneel: nenhuma tarifa residencial vigente encontrada")

// Snapshot busca tarifas e bandeira em paralelo. Falha na bandeira não
// derruba a sincronização; falha nas tarifas sim.
func (c *Client) Snapshot(ctx context.Context, now time.Time) (*Snapshot, error) {
	var (
		tariffs []TariffRecord
		flags   []FlagRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tariffs, err = c.TariffRecords(gctx)
		if err != nil {
			return fmt.Errorf("tarifas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		flags, err = c.FlagRecords(gctx)
		if err != nil {
			c.log.Warn("aneel_flag_fetch_failed", "err", err)
			flags = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := BuildTable(tariffs, now)
	if len(table) == 0 {
		return nil, ErrNoTariffs
	}
	snap := &Snapshot{Tariffs: table, Records: len(tariffs)}
	if f, ok := LatestFlag(flags); ok {
		snap.Flag = f
	}
	return snap, nil
}
