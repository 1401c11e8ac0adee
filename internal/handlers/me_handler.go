package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/httpresp"
	"github.com/BruksfildServices01/autoimport-crm/internal/media"
	"github.com/BruksfildServices01/autoimport-crm/internal/middleware"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

type AvatarUploader interface {
	PutAvatar(ctx context.Context, userID string, data []byte) (string, error)
}

type MeHandler struct {
	db      *gorm.DB
	avatars AvatarUploader
	log     *zap.Logger
}

// NewMeHandler aceita avatars nil quando o S3 não está configurado.
func NewMeHandler(db *gorm.DB, avatars AvatarUploader, log *zap.Logger) *MeHandler {
	return &MeHandler{db: db, avatars: avatars, log: log}
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Username *string `json:"username"`
	Website  *string `json:"website"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}

	httpresp.OK(c, gin.H{
		"email":   c.GetString(middleware.ContextUserEmail),
		"profile": profile,
	})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Username != nil {
		profile.Username = *req.Username
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}

	if err := h.db.WithContext(c.Request.Context()).Save(profile).Error; err != nil {
		writeError(c, h.log, err, "profile_update_failed", "Failed to update profile")
		return
	}

	httpresp.OK(c, profile)
}

// UploadAvatar recebe multipart "avatar", normaliza para webp e grava no S3.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	if h.avatars == nil {
		httperr.Unavailable(c, "avatar_storage_disabled", "Avatar storage is not configured")
		return
	}

	profile, ok := h.loadProfile(c)
	if !ok {
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		httperr.FieldError(c, "invalid_request", "avatar", "Avatar file is required")
		return
	}
	if header.Size > media.MaxUploadBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "avatar_too_large", "Avatar must be at most 5 MB")
		return
	}

	file, err := header.Open()
	if err != nil {
		invalidRequest(c, err)
		return
	}
	defer file.Close()

	data, err := media.NormalizeAvatar(file)
	if err != nil {
		writeError(c, h.log, err, "avatar_failed", "Failed to process avatar")
		return
	}

	url, err := h.avatars.PutAvatar(c.Request.Context(), profile.ID, data)
	if err != nil {
		writeError(c, h.log, err, "avatar_upload_failed", "Failed to upload avatar")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(profile).
		Update("avatar_url", url).Error; err != nil {
		writeError(c, h.log, err, "profile_update_failed", "Failed to update profile")
		return
	}
	profile.AvatarURL = url

	httpresp.OK(c, profile)
}

func (h *MeHandler) loadProfile(c *gin.Context) (*models.Profile, bool) {
	var profile models.Profile
	if err := h.db.WithContext(c.Request.Context()).
		First(&profile, "id = ?", middleware.UserID(c)).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "profile_not_found", "Profile not found")
			return nil, false
		}
		writeError(c, h.log, err, "profile_load_failed", "Failed to load profile")
		return nil, false
	}
	return &profile, true
}
