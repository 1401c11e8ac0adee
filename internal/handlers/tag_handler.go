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

type TagHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewTagHandler(db *gorm.DB, audit *audit.Dispatcher, log *zap.Logger) *TagHandler {
	return &TagHandler{db: db, audit: audit, log: log}
}

// --------- Requests ---------

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
	Hex  string `json:"hex" binding:"omitempty,hexcolor"`
}

type UpdateTagRequest struct {
	Name *string `json:"name,omitempty"`
	Hex  *string `json:"hex,omitempty" binding:"omitempty,hexcolor"`
}

// --------- Handlers ---------

func (h *TagHandler) List(c *gin.Context) {
	var tags []models.Tag
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		writeError(c, h.log, err, "tag_list_failed", "Failed to load tags")
		return
	}

	httpresp.List(c, tags)
}

func (h *TagHandler) Create(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	tag := models.Tag{Name: strings.TrimSpace(req.Name), Hex: req.Hex}
	if tag.Name == "" {
		httperr.FieldError(c, "validation_error", "name", "Missing required field: name")
		return
	}

	if tag.Hex == "" {
		tag.Hex = models.DefaultTagHex
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&tag).Error; err != nil {
		h.writeSaveError(c, err)
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		Action:     "tag_created",
		EntityType: "tag",
		EntityID:   strconv.FormatUint(uint64(tag.ID), 10),
		NewValues:  tag,
	}))

	httpresp.Created(c, tag)
}

func (h *TagHandler) Update(c *gin.Context) {
	tag, ok := h.find(c)
	if !ok {
		return
	}
	old := *tag

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			tag.Name = name
		}
	}
	if req.Hex != nil {
		tag.Hex = *req.Hex
	}

	if err := h.db.WithContext(c.Request.Context()).Save(tag).Error; err != nil {
		h.writeSaveError(c, err)
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		Action:     "tag_updated",
		EntityType: "tag",
		EntityID:   strconv.FormatUint(uint64(tag.ID), 10),
		OldValues:  old,
		NewValues:  tag,
	}))

	httpresp.OK(c, tag)
}

// Delete remove a tag; os vínculos em submission_tags caem em cascata.
func (h *TagHandler) Delete(c *gin.Context) {
	tag, ok := h.find(c)
	if !ok {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.SubmissionTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
	if err != nil {
		writeError(c, h.log, err, "tag_delete_failed", "Failed to delete tag")
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		Action:     "tag_deleted",
		EntityType: "tag",
		EntityID:   strconv.FormatUint(uint64(tag.ID), 10),
		OldValues:  tag,
	}))

	httpresp.OK(c, gin.H{"id": tag.ID})
}

func (h *TagHandler) find(c *gin.Context) (*models.Tag, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	var tag models.Tag
	if err := h.db.WithContext(c.Request.Context()).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "tag_not_found", "Tag not found")
			return nil, false
		}
		writeError(c, h.log, err, "tag_load_failed", "Failed to load tag")
		return nil, false
	}
	return &tag, true
}

func (h *TagHandler) writeSaveError(c *gin.Context, err error) {
	if httperr.IsUniqueViolation(err) {
		httperr.Conflict(c, "tag_name_taken", "A tag with this name already exists")
		return
	}
	writeError(c, h.log, err, "tag_save_failed", "Failed to save tag")
}
