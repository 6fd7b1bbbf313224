package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/coinsage/coinsage/internal/market"
	"github.com/coinsage/coinsage/internal/models"
)

const version = "1.0.0"

// HealthHandler handles GET /health with a CoinMarketCap key check
type HealthHandler struct {
	market *market.Client
}

func NewHealthHandler(m *market.Client) *HealthHandler {
	return &HealthHandler{market: m}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	overallStatus := "healthy"

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.market != nil {
		if err := h.market.TestConnection(ctx); err != nil {
			checks["coinmarketcap"] = "unavailable: " + err.Error()
			overallStatus = "degraded"
		} else {
			checks["coinmarketcap"] = "ok"
		}
	} else {
		checks["coinmarketcap"] = "disabled"
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}
