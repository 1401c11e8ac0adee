package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	"github.com/BruksfildServices01/autoimport-crm/internal/httpresp"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

type ContactHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewContactHandler(db *gorm.DB, audit *audit.Dispatcher, log *zap.Logger) *ContactHandler {
	return &ContactHandler{db: db, audit: audit, log: log}
}

type UpdateContactRequest struct {
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	TelegramLink  *string `json:"telegram_link" binding:"omitempty,url"`
	InstagramLink *string `json:"instagram_link" binding:"omitempty,url"`
	FacebookLink  *string `json:"facebook_link" binding:"omitempty,url"`
}

func (r UpdateContactRequest) applyTo(info *models.ContactInfo) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&info.Email, r.Email)
	set(&info.Phone, r.Phone)
	set(&info.TelegramLink, r.TelegramLink)
	set(&info.InstagramLink, r.InstagramLink)
	set(&info.FacebookLink, r.FacebookLink)
}

// Upsert atualiza a primeira linha de contact_info ou cria se não houver nenhuma.
func (h *ContactHandler) Upsert(c *gin.Context) {
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	var (
		info models.ContactInfo
		old  *models.ContactInfo
	)

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		err := tx.Order("id ASC").First(&info).Error
		switch {
		case err == nil:
			prev := info
			old = &prev
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		req.applyTo(&info)
		return tx.Save(&info).Error
	})
	if err != nil {
		writeError(c, h.log, err, "contact_update_failed", "Failed to update contact information")
		return
	}

	ev := audit.Event{
		Action:     "Updated contact information",
		EntityType: "contact_info",
		EntityID:   strconv.FormatUint(uint64(info.ID), 10),
		NewValues:  info,
	}
	if old != nil {
		ev.OldValues = old
	}
	h.audit.Dispatch(actorEvent(c, ev))

	httpresp.OK(c, info)
}
