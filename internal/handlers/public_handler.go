package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/httpresp"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
	ucsubmission "github.com/BruksfildServices01/autoimport-crm/internal/usecase/submission"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db      *gorm.DB
	create  *ucsubmission.CreatePublicSubmission
	lookups submission.LookupRepository
	log     *zap.Logger
}

func NewPublicHandler(
	db *gorm.DB,
	create *ucsubmission.CreatePublicSubmission,
	lookups submission.LookupRepository,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		db:      db,
		create:  create,
		lookups: lookups,
		log:     log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateSubmissionRequest struct {
	Phone       string `json:"phone"`
	Name        string `json:"name"`
	BudgetFrom  Amount `json:"budget_from"`
	BudgetTo    Amount `json:"budget_to"`
	VehicleType string `json:"vehicle_type"`
	StatusID    *uint  `json:"status_id"`
	Ref         string `json:"ref"`
}

////////////////////////////////////////////////////////
// SUBMISSIONS
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	row, err := h.create.Execute(c.Request.Context(), ucsubmission.CreatePublicSubmissionInput{
		Submission: submission.NewSubmission{
			Phone:       req.Phone,
			Name:        req.Name,
			BudgetFrom:  req.BudgetFrom.Value,
			BudgetTo:    req.BudgetTo.Value,
			VehicleType: req.VehicleType,
			StatusID:    req.StatusID,
			Ref:         req.Ref,
		},
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		writeError(c, h.log, err, "submission_create_failed", "Failed to create submission")
		return
	}

	httpresp.Created(c, row)
}

// OpenStatus expõe o id do status "open" que o formulário deve enviar.
func (h *PublicHandler) OpenStatus(c *gin.Context) {
	status, err := h.lookups.FindStatusByName(c.Request.Context(), models.OpenStatusName)
	if err != nil {
		writeError(c, h.log, err, "status_lookup_failed", "Failed to load open status")
		return
	}

	httpresp.OK(c, status)
}

////////////////////////////////////////////////////////
// CONTACT
////////////////////////////////////////////////////////

func (h *PublicHandler) Contact(c *gin.Context) {
	var info models.ContactInfo
	if err := h.db.WithContext(c.Request.Context()).
		Order("id ASC").
		First(&info).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "contact_info_not_found", "Contact information is not configured")
			return
		}
		writeError(c, h.log, err, "contact_info_failed", "Failed to load contact information")
		return
	}

	httpresp.OK(c, info)
}
