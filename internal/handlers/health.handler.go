package handlers

import (
	"github.com/fasthttp/router"
	"github.com/finlog/expense-ledger/internal/services"
	xhttp "github.com/finlog/expense-ledger/pkg/http"
)

type HealthHandler struct {
	svc *services.HealthService
}

func NewHealthHandler(svc *services.HealthService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func RegisterHealthRoutes(e *router.Group, h *HealthHandler) {
	e.GET("/health", h.Health)
}

func (h *HealthHandler) Health(ctx *xhttp.RequestCtx) {
	if err := h.svc.Get(); err != nil {
		writeError(ctx, 500, err.Error())
		return
	}
	writeJSON(ctx, 200, map[string]string{"status": "ok"})
}
