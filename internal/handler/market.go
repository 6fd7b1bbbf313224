package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/coinsage/coinsage/internal/config"
	"github.com/coinsage/coinsage/internal/dates"
	"github.com/coinsage/coinsage/internal/market"
	"github.com/coinsage/coinsage/internal/models"
	"github.com/go-chi/chi/v5"
)

// MarketHandler exposes the tool lookups as plain REST endpoints, next to
// the agent endpoint, for callers that don't want a model in the path.
type MarketHandler struct {
	market *market.Client
}

func NewMarketHandler(m *market.Client) *MarketHandler {
	return &MarketHandler{market: m}
}

// Price handles GET /api/v1/market/price/{symbol}
func (h *MarketHandler) Price(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	if symbol == "" {
		models.WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	quote, err := h.market.LatestQuote(r.Context(), symbol)
	if err != nil {
		models.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, quote)
}

// PriceOn handles GET /api/v1/market/price/{symbol}/{date}
func (h *MarketHandler) PriceOn(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	parsed, err := dates.ParsePast(chi.URLParam(r, "date"), time.Now(), config.MaxHistoricalPriceDays)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	price, err := h.market.HistoricalQuote(r.Context(), symbol, parsed.Time)
	if err != nil {
		models.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, price)
}

// Movers handles GET /api/v1/market/movers
func (h *MarketHandler) Movers(w http.ResponseWriter, r *http.Request) {
	movers, err := h.market.TopMovers(r.Context(), config.GainersLosersUniverse, config.GainersLosersTopN)
	if err != nil {
		models.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, movers)
}

// FearGreed handles GET /api/v1/market/fear-greed
func (h *MarketHandler) FearGreed(w http.ResponseWriter, r *http.Request) {
	fg, err := h.market.FearGreedLatest(r.Context())
	if err != nil {
		models.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, fg)
}

// FearGreedOn handles GET /api/v1/market/fear-greed/{date}
func (h *MarketHandler) FearGreedOn(w http.ResponseWriter, r *http.Request) {
	parsed, err := dates.ParsePast(chi.URLParam(r, "date"), time.Now(), config.MaxFearGreedHistoryDays)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	fg, err := h.market.FearGreedOn(r.Context(), parsed.Time, config.MaxFearGreedHistoryDays)
	if err != nil {
		models.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	models.WriteJSON(w, http.StatusOK, fg)
}
