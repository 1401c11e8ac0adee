package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/httpresp"
	"github.com/BruksfildServices01/autoimport-crm/internal/listing"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
	log *zap.Logger
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc, now: time.Now, log: log}
}

type AuditUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AuditLogsResponse struct {
	listing.Page[models.AuditLog]
	Actions []string    `json:"actions"`
	Users   []AuditUser `json:"users"`
}

// List carrega todo o histórico e filtra em memória: q (ação ou nome do
// autor), action e user_id exatos, date (today, yesterday, thisWeek,
// thisMonth) e page com 20 itens.
func (h *AuditLogsHandler) List(c *gin.Context) {
	var bucket listing.Bucket
	if v := c.Query("date"); v != "" {
		b, ok := listing.ParseBucket(v)
		if !ok {
			httperr.FieldError(c, "invalid_filter", "date", "Unsupported date filter")
			return
		}
		bucket = b
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	// --------------------------------------------------
	// Histórico completo
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Profile").
		Order("timestamp DESC").
		Order("id DESC").
		Find(&logs).Error; err != nil {

		writeError(c, h.log, err, "audit_list_failed", "Failed to load audit logs")
		return
	}

	// --------------------------------------------------
	// Filtros
	// --------------------------------------------------

	filtered := listing.Search(logs, c.Query("q"), func(l models.AuditLog) []string {
		return []string{l.Action, actorName(l)}
	})

	if action := c.Query("action"); action != "" {
		filtered = listing.Filter(filtered, func(l models.AuditLog) bool {
			return l.Action == action
		})
	}

	if userID := c.Query("user_id"); userID != "" {
		filtered = listing.Filter(filtered, func(l models.AuditLog) bool {
			return l.UserID != nil && *l.UserID == userID
		})
	}

	if bucket != "" {
		now := h.now().In(h.loc)
		filtered = listing.Filter(filtered, func(l models.AuditLog) bool {
			return bucket.Contains(l.Timestamp.In(h.loc), now)
		})
	}

	// --------------------------------------------------
	// Response
	// --------------------------------------------------

	p := listing.Paginate(filtered, page, listing.DefaultPageSize)
	p.TotalPages = max(1, p.TotalPages)

	actions, users := auditFacets(logs)
	httpresp.OK(c, AuditLogsResponse{
		Page:    p,
		Actions: actions,
		Users:   users,
	})
}

func actorName(l models.AuditLog) string {
	if l.Profile != nil {
		return l.Profile.FullName
	}
	return l.ActorName
}

// auditFacets lista ações e autores distintos do histórico inteiro.
func auditFacets(logs []models.AuditLog) ([]string, []AuditUser) {
	actions := []string{}
	users := []AuditUser{}
	seenAction := map[string]bool{}
	seenUser := map[string]bool{}

	for _, l := range logs {
		if !seenAction[l.Action] {
			seenAction[l.Action] = true
			actions = append(actions, l.Action)
		}

		name := actorName(l)
		if l.UserID == nil || name == "" || seenUser[*l.UserID] {
			continue
		}
		seenUser[*l.UserID] = true
		users = append(users, AuditUser{ID: *l.UserID, Name: name})
	}
	return actions, users
}
