package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autoimport-crm/internal/httpresp"
	"github.com/BruksfildServices01/autoimport-crm/internal/usecase/dashboard"
)

type DashboardHandler struct {
	changes *dashboard.StatusChanges
	log     *zap.Logger
}

func NewDashboardHandler(changes *dashboard.StatusChanges, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{changes: changes, log: log}
}

func (h *DashboardHandler) StatusCounts(c *gin.Context) {
	counts, err := h.changes.Counts(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "dashboard_failed", "Failed to load status counts")
		return
	}

	httpresp.List(c, counts)
}

func (h *DashboardHandler) StatusChanges(c *gin.Context) {
	changes, err := h.changes.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "dashboard_failed", "Failed to load status changes")
		return
	}

	httpresp.List(c, changes)
}
