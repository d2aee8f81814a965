package handler

import (
	"context"
	"net/http"

	"github.com/highwayhustle/backend/internal/api/response"
	"github.com/highwayhustle/backend/internal/ledger"
)

// LedgerStatusReporter reports the per-category mirroring state
type LedgerStatusReporter interface {
	Status(ctx context.Context) map[string]ledger.CategoryStatus
}

// StatusHandler exposes the ledger mirroring status
type StatusHandler struct {
	reporter LedgerStatusReporter
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(reporter LedgerStatusReporter) *StatusHandler {
	return &StatusHandler{
		reporter: reporter,
	}
}

// LedgerStatus handles GET /api/ledger/status
func (h *StatusHandler) LedgerStatus(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    h.reporter.Status(r.Context()),
	})
}
