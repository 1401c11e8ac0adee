package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/httpresp"
	"github.com/BruksfildServices01/autoimport-crm/internal/listing"
	"github.com/BruksfildServices01/autoimport-crm/internal/middleware"
	ucsubmission "github.com/BruksfildServices01/autoimport-crm/internal/usecase/submission"
)

// ======================================================
// HANDLER
// ======================================================

type SubmissionHandler struct {
	repo    submission.Repository
	lookups submission.LookupRepository
	list    *ucsubmission.ListSubmissions
	update  *ucsubmission.UpdateSubmission
	export  *ucsubmission.ExportSubmissions
	filters *ucsubmission.FilterState
	loc     *time.Location
	log     *zap.Logger
}

func NewSubmissionHandler(
	repo submission.Repository,
	lookups submission.LookupRepository,
	list *ucsubmission.ListSubmissions,
	update *ucsubmission.UpdateSubmission,
	export *ucsubmission.ExportSubmissions,
	filters *ucsubmission.FilterState,
	loc *time.Location,
	log *zap.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		repo:    repo,
		lookups: lookups,
		list:    list,
		update:  update,
		export:  export,
		filters: filters,
		loc:     loc,
		log:     log,
	}
}

// ======================================================
// DTOs
// ======================================================

type UpdateSubmissionRequest struct {
	StatusID       *uint   `json:"status_id"`
	AssignedUserID *string `json:"assigned_user_id"`
	TagIDs         []uint  `json:"tag_ids"`
}

type SubmissionListResponse struct {
	*ucsubmission.ListResult
	Total int                              `json:"total"`
	Page  *listing.Page[dto.SubmissionRow] `json:"page,omitempty"`
}

// ======================================================
// LIST
// ======================================================

// List aceita os filtros em query string mais q, sort, order e page.
// Sem page devolve todas as linhas.
func (h *SubmissionHandler) List(c *gin.Context) {
	f, err := filtersFromQuery(c, h.loc)
	if err != nil {
		writeFilterError(c, err)
		return
	}

	view, ok := h.viewFromQuery(c)
	if !ok {
		return
	}

	res, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err, "submission_list_failed", "Failed to load submissions")
		return
	}

	res.Submissions = ucsubmission.Present(res.Submissions, view)
	out := SubmissionListResponse{ListResult: res, Total: len(res.Submissions)}

	if p := c.Query("page"); p != "" {
		page, _ := strconv.Atoi(p)
		paged := listing.Paginate(res.Submissions, page, listing.DefaultPageSize)
		out.Page = &paged
	}

	httpresp.OK(c, out)
}

func (h *SubmissionHandler) viewFromQuery(c *gin.Context) (ucsubmission.View, bool) {
	view := ucsubmission.View{
		Search: c.Query("q"),
		Sort:   strings.TrimSpace(c.Query("sort")),
		Order:  listing.ParseOrder(c.Query("order")),
	}
	if view.Sort != "" && !ucsubmission.IsSortColumn(view.Sort) {
		httperr.FieldError(c, "invalid_sort", "sort", "Unsupported sort column")
		return view, false
	}
	return view, true
}

// ======================================================
// SINGLE
// ======================================================

func (h *SubmissionHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	sub, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err, "submission_get_failed", "Failed to load submission")
		return
	}

	httpresp.OK(c, dto.NewSubmissionRow(sub))
}

// Update substitui status, responsável e tags de uma vez; campo ausente ou
// null limpa o valor.
func (h *SubmissionHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	row, err := h.update.Execute(c.Request.Context(), ucsubmission.UpdateSubmissionInput{
		ID:        id,
		StatusID:  req.StatusID,
		UserID:    req.AssignedUserID,
		TagIDs:    req.TagIDs,
		ActorID:   middleware.UserID(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		writeError(c, h.log, err, "submission_update_failed", "Failed to update submission")
		return
	}

	httpresp.OK(c, row)
}

// ======================================================
// EXPORT
// ======================================================

func (h *SubmissionHandler) Export(c *gin.Context) {
	f, err := filtersFromQuery(c, h.loc)
	if err != nil {
		writeFilterError(c, err)
		return
	}

	view, ok := h.viewFromQuery(c)
	if !ok {
		return
	}

	res, err := h.export.Execute(c.Request.Context(), f, view)
	if err != nil {
		writeError(c, h.log, err, "submission_export_failed", "Failed to export submissions")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(res.Content))
}

// ======================================================
// FILTER STATE
// ======================================================

func (h *SubmissionHandler) GetFilters(c *gin.Context) {
	f, err := h.filters.Current(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err, "filters_load_failed", "Failed to load filters")
		return
	}

	httpresp.OK(c, gin.H{"filters": f})
}

func (h *SubmissionHandler) PatchFilters(c *gin.Context) {
	var req FilterPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	patch, err := req.toPatch(h.loc)
	if err != nil {
		writeFilterError(c, err)
		return
	}

	res, err := h.filters.Apply(c.Request.Context(), middleware.UserID(c), patch)
	if err != nil {
		writeError(c, h.log, err, "filters_apply_failed", "Failed to apply filters")
		return
	}

	httpresp.OK(c, res)
}

func (h *SubmissionHandler) ResetFilters(c *gin.Context) {
	res, err := h.filters.Reset(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err, "filters_reset_failed", "Failed to reset filters")
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// LOOKUPS
// ======================================================

func (h *SubmissionHandler) Referrers(c *gin.Context) {
	refs, err := h.lookups.ListReferrers(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "referrers_failed", "Failed to load referrers")
		return
	}

	httpresp.List(c, refs)
}
