package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	"github.com/BruksfildServices01/autoimport-crm/internal/config"
	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/httpresp"
	"github.com/BruksfildServices01/autoimport-crm/internal/identity"
	"github.com/BruksfildServices01/autoimport-crm/internal/middleware"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
	"github.com/BruksfildServices01/autoimport-crm/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	provider identity.Provider
	tokens   *identity.TokenIssuer
	config   *config.Config
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewAuthHandler(
	db *gorm.DB,
	provider identity.Provider,
	tokens *identity.TokenIssuer,
	cfg *config.Config,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		db:       db,
		provider: provider,
		tokens:   tokens,
		config:   cfg,
		audit:    audit,
		log:      log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type SessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Email     string          `json:"email"`
	Profile   *models.Profile `json:"profile"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	if !h.config.AllowSignup {
		httperr.Forbidden(c, "signup_disabled", "Self sign-up is disabled")
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if h.config.CheckEmailDomain && !validators.IsEmailDomainValid(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not accept mail")
		return
	}

	profile, err := h.provider.CreateAccount(c.Request.Context(), identity.NewAccount{
		Email:    email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(c, h.log, err, "register_failed", "Failed to create account")
		return
	}

	account := &models.Account{ID: profile.ID, Email: email}
	session, err := h.session(account, profile)
	if err != nil {
		writeError(c, h.log, err, "token_failed", "Failed to generate token")
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		UserID:     &profile.ID,
		Action:     "account_registered",
		EntityType: "account",
		EntityID:   profile.ID,
		NewValues:  profile,
	}))

	httpresp.Created(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	account, err := h.provider.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err, "login_failed", "Failed to sign in")
		return
	}

	var profile models.Profile
	if err := h.db.WithContext(c.Request.Context()).
		First(&profile, "id = ?", account.ID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {

		writeError(c, h.log, err, "login_failed", "Failed to sign in")
		return
	}

	session, err := h.session(account, &profile)
	if err != nil {
		writeError(c, h.log, err, "token_failed", "Failed to generate token")
		return
	}

	httpresp.OK(c, session)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	userID := middleware.UserID(c)
	if err := h.provider.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, h.log, err, "password_change_failed", "Failed to change password")
		return
	}

	h.audit.Dispatch(actorEvent(c, audit.Event{
		Action:     "password_changed",
		EntityType: "account",
		EntityID:   userID,
	}))

	httpresp.OK(c, gin.H{"message": "Password updated"})
}

// Logout revoga o token atual até a expiração dele.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.tokens.Revoke(c.Request.Context(), middleware.Claims(c)); err != nil {
		writeError(c, h.log, err, "logout_failed", "Failed to log out")
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- JWT ---------

func (h *AuthHandler) session(account *models.Account, profile *models.Profile) (*SessionResponse, error) {
	token, exp, err := h.tokens.Issue(account)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{
		Token:     token,
		ExpiresAt: exp,
		Email:     account.Email,
		Profile:   profile,
	}, nil
}
