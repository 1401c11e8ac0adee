package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	"github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/httpresp"
	"github.com/BruksfildServices01/autoimport-crm/internal/identity"
)

type AccountHandler struct {
	provider identity.Provider
	lookups  submission.LookupRepository
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewAccountHandler(
	provider identity.Provider,
	lookups submission.LookupRepository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *AccountHandler {
	return &AccountHandler{
		provider: provider,
		lookups:  lookups,
		audit:    audit,
		log:      log,
	}
}

type CreateAccountRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

func (h *AccountHandler) List(c *gin.Context) {
	profiles, err := h.lookups.ListProfiles(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "account_list_failed", "Failed to load accounts")
		return
	}

	httpresp.List(c, profiles)
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	profile, err := h.provider.CreateAccount(c.Request.Context(), identity.NewAccount{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(c, h.log, err, "account_create_failed", "Failed to create account")
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		Action:     "account_created",
		EntityType: "account",
		EntityID:   profile.ID,
		NewValues:  profile,
	}))

	httpresp.Created(c, profile)
}

// Delete remove a conta indicada em ?id=. Qualquer falha do provedor,
// inclusive id inexistente, responde 500.
func (h *AccountHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		httperr.FieldError(c, "validation_error", "id", "Missing required field: id")
		return
	}

	if err := h.provider.DeleteAccount(c.Request.Context(), id); err != nil {
		h.log.Error("account delete failed", zap.String("account_id", id), zap.Error(err))
		httperr.Internal(c, "account_delete_failed", "Failed to delete account")
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		Action:     "account_deleted",
		EntityType: "account",
		EntityID:   id,
	}))

	httpresp.OK(c, gin.H{"message": "Account deleted successfully"})
}
