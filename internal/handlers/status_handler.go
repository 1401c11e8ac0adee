package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/httpresp"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

type StatusHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewStatusHandler(db *gorm.DB, audit *audit.Dispatcher, log *zap.Logger) *StatusHandler {
	return &StatusHandler{db: db, audit: audit, log: log}
}

type StatusRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *StatusHandler) List(c *gin.Context) {
	var statuses []models.Status
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&statuses).Error; err != nil {
		writeError(c, h.log, err, "status_list_failed", "Failed to load statuses")
		return
	}

	httpresp.List(c, statuses)
}

func (h *StatusHandler) Create(c *gin.Context) {
	name, ok := h.bindName(c)
	if !ok {
		return
	}

	status := models.Status{Name: name}
	if err := h.db.WithContext(c.Request.Context()).Create(&status).Error; err != nil {
		h.writeSaveError(c, err)
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		Action:     "status_created",
		EntityType: "status",
		EntityID:   strconv.FormatUint(uint64(status.ID), 10),
		NewValues:  status,
	}))

	httpresp.Created(c, status)
}

func (h *StatusHandler) Update(c *gin.Context) {
	status, ok := h.find(c)
	if !ok {
		return
	}
	old := *status

	name, ok := h.bindName(c)
	if !ok {
		return
	}

	// o formulário público depende do status "open"
	if strings.EqualFold(old.Name, models.OpenStatusName) && !strings.EqualFold(name, models.OpenStatusName) {
		httperr.Conflict(c, "open_status_protected", "The open status cannot be renamed")
		return
	}

	status.Name = name
	if err := h.db.WithContext(c.Request.Context()).Save(status).Error; err != nil {
		h.writeSaveError(c, err)
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		Action:     "status_updated",
		EntityType: "status",
		EntityID:   strconv.FormatUint(uint64(status.ID), 10),
		OldValues:  old,
		NewValues:  status,
	}))

	httpresp.OK(c, status)
}

// Delete remove o status; submissions que o usavam ficam sem status.
func (h *StatusHandler) Delete(c *gin.Context) {
	status, ok := h.find(c)
	if !ok {
		return
	}

	if strings.EqualFold(status.Name, models.OpenStatusName) {
		httperr.Conflict(c, "open_status_protected", "The open status cannot be deleted")
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Submission{}).
			Where("status_id = ?", status.ID).
			Update("status_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(status).Error
	})
	if err != nil {
		writeError(c, h.log, err, "status_delete_failed", "Failed to delete status")
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		Action:     "status_deleted",
		EntityType: "status",
		EntityID:   strconv.FormatUint(uint64(status.ID), 10),
		OldValues:  status,
	}))

	httpresp.OK(c, gin.H{"id": status.ID})
}

func (h *StatusHandler) bindName(c *gin.Context) (string, bool) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return "", false
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.FieldError(c, "validation_error", "name", "Missing required field: name")
		return "", false
	}
	return name, true
}

func (h *StatusHandler) find(c *gin.Context) (*models.Status, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	var status models.Status
	if err := h.db.WithContext(c.Request.Context()).First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "status_not_found", "Status not found")
			return nil, false
		}
		writeError(c, h.log, err, "status_load_failed", "Failed to load status")
		return nil, false
	}
	return &status, true
}

func (h *StatusHandler) writeSaveError(c *gin.Context, err error) {
	if httperr.IsUniqueViolation(err) {
		httperr.Conflict(c, "status_name_taken", "A status with this name already exists")
		return
	}
	writeError(c, h.log, err, "status_save_failed", "Failed to save status")
}
