package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Werneck0live/calculadora-energia/internal/estimate"
	"github.com/Werneck0live/calculadora-energia/internal/models"
	"github.com/Werneck0live/calculadora-energia/internal/repository"
	"github.com/Werneck0live/calculadora-energia/internal/utils"
	"github.com/Werneck0live/calculadora-energia/internal/viacep"
)

type Repository interface {
	GetByState(ctx context.Context, uf string) (*models.Tariff, error)
	ListByTariff(ctx context.Context) ([]models.Tariff, error)
	CurrentFlag(ctx context.Context) (*models.Flag, error)
	LastUpdated(ctx context.Context) (string, error)
}

type Locator interface {
	Lookup(ctx context.Context, cep string) (*viacep.Address, error)
}

const (
	msgInvalidCEP    = "CEP inválido"
	msgCEPNotFound   = "CEP não encontrado"
	msgCEPLookup     = "Falha ao consultar o CEP"
	msgStateNotFound = "Estado não encontrado na base de dados"
	msgInternal      = "Erro interno ao calcular a estimativa"
)

const defaultTimeout = 10 * time.Second

type EstimateHandler struct {
	Repo    Repository
	CEP     Locator
	Log     *slog.Logger
	Timeout time.Duration
}

func NewEstimateHandler(repo Repository, loc Locator, log *slog.Logger, timeout time.Duration) *EstimateHandler {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &EstimateHandler{Repo: repo, CEP: loc, Log: log.With("cmp", "handlers.estimate"), Timeout: timeout}
}

func (h *EstimateHandler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

func (h *EstimateHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "API is running"})
}

// Calculate atende POST /api/calculate.
func (h *EstimateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	log := h.logger()

	var dto CalculateDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, utils.DecodeErrorMessage(err))
		return
	}
	req, err := validateCalculateDTO(dto)
	if errors.Is(err, errMissingFields) {
		utils.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		utils.BadRequest(w, estimate.Message(err))
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	addr, err := h.CEP.Lookup(ctx, req.PostalCode)
	switch {
	case errors.Is(err, viacep.ErrInvalid):
		utils.BadRequest(w, msgInvalidCEP)
		return
	case errors.Is(err, viacep.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, msgCEPNotFound)
		return
	case err != nil:
		log.Warn("cep_lookup_failed", "cep", req.PostalCode, "err", err)
		utils.WriteError(w, http.StatusBadGateway, msgCEPLookup)
		return
	}

	tariff, err := h.Repo.GetByState(ctx, addr.UF)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, msgStateNotFound)
		return
	}
	if err != nil {
		log.Error("tariff_lookup_failed", "estado", addr.UF, "err", err)
		utils.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	flag, err := h.currentFlag(ctx)
	if err != nil {
		log.Error("flag_lookup_failed", "err", err)
		utils.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	surcharge := req.ConsumptionKwh * flag.ValuePerKwh
	b, err := estimate.Compute(tariff.TariffPerKwh, surcharge, req.ConsumptionKwh)
	if err != nil {
		log.Error("estimate_integrity_failed", "estado", tariff.State, "err", err)
		utils.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	res := &estimate.Result{
		DistributorName: tariff.Distributor,
		State:           tariff.State,
		TariffPerKwh:    tariff.TariffPerKwh,
		SurchargeLabel:  flag.Name,
		SurchargeTier:   estimate.ParseTier(flag.Name),
		SurchargeValue:  b.Surcharge,
		TotalValue:      b.Total,
		DataLastUpdated: h.lastUpdated(ctx),
		Comparison:      h.comparison(ctx),
	}

	log.Info("estimate_request",
		"cep", req.PostalCode,
		"estado", res.State,
		"consumo", req.ConsumptionKwh,
		"bandeira", res.SurchargeLabel,
		"valor_total", res.TotalValue,
	)
	utils.WriteJSON(w, http.StatusOK, estimate.NewCalculateResponse(res))
}

// sem bandeira cadastrada vale a verde, sem acréscimo
func (h *EstimateHandler) currentFlag(ctx context.Context) (*models.Flag, error) {
	f, err := h.Repo.CurrentFlag(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		h.logger().Warn("flag_missing_default_green")
		return &models.Flag{Name: estimate.TierGreen.String()}, nil
	}
	return f, err
}

func (h *EstimateHandler) lastUpdated(ctx context.Context) string {
	label, err := h.Repo.LastUpdated(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.logger().Warn("metadata_lookup_failed", "err", err)
	}
	return label
}

// comparison é acessória: falha ou tabela vazia só omitem o bloco.
func (h *EstimateHandler) comparison(ctx context.Context) *estimate.Comparison {
	list, err := h.Repo.ListByTariff(ctx)
	if err != nil {
		h.logger().Warn("comparison_lookup_failed", "err", err)
		return nil
	}
	if len(list) == 0 {
		return nil
	}
	first, last := list[0], list[len(list)-1]
	return &estimate.Comparison{
		Cheapest:      estimate.StateTariff{State: first.State, TariffPerKwh: first.TariffPerKwh},
		MostExpensive: estimate.StateTariff{State: last.State, TariffPerKwh: last.TariffPerKwh},
	}
}
