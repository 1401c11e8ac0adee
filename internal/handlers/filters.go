package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/timezone"
)

// splitQuery junta ?k=a&k=b e ?k=a,b num único slice sem vazios.
func splitQuery(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func parseUintList(values []string, field string) ([]uint, error) {
	out := make([]uint, 0, len(values))
	for _, v := range values {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, submission.ValidationError{Field: field, Message: "Invalid " + field}
		}
		out = append(out, uint(n))
	}
	return out, nil
}

func parseDate(value, field string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := timezone.ParseDate(value, loc)
	if err != nil {
		return nil, submission.ValidationError{Field: field, Message: field + " must be YYYY-MM-DD"}
	}
	return &t, nil
}

// filtersFromQuery lê status_id, tag_ids, user_id, referrers, date_from e date_to.
func filtersFromQuery(c *gin.Context, loc *time.Location) (submission.Filters, error) {
	var f submission.Filters

	if v := strings.TrimSpace(c.Query("status_id")); v != "" {
		ids, err := parseUintList([]string{v}, "status_id")
		if err != nil {
			return f, err
		}
		f.StatusID = &ids[0]
	}

	tagIDs, err := parseUintList(splitQuery(c, "tag_ids"), "tag_ids")
	if err != nil {
		return f, err
	}

	if v := strings.TrimSpace(c.Query("user_id")); v != "" {
		f.UserID = &v
	}

	if f.DateFrom, err = parseDate(strings.TrimSpace(c.Query("date_from")), "date_from", loc); err != nil {
		return f, err
	}
	if f.DateTo, err = parseDate(strings.TrimSpace(c.Query("date_to")), "date_to", loc); err != nil {
		return f, err
	}

	return f.Apply(submission.FilterPatch{
		TagIDs:    submission.Some(tagIDs),
		Referrers: submission.Some(splitQuery(c, "referrers")),
	}), nil
}

// FilterPatchRequest é o corpo do PATCH de filtros: campo ausente mantém,
// null ou lista vazia limpa.
type FilterPatchRequest struct {
	StatusID  submission.Optional[*uint]    `json:"status_id"`
	TagIDs    submission.Optional[[]uint]   `json:"tag_ids"`
	UserID    submission.Optional[*string]  `json:"user_id"`
	Referrers submission.Optional[[]string] `json:"referrers"`
	DateFrom  submission.Optional[*string]  `json:"date_from"`
	DateTo    submission.Optional[*string]  `json:"date_to"`
}

func (r FilterPatchRequest) toPatch(loc *time.Location) (submission.FilterPatch, error) {
	p := submission.FilterPatch{
		StatusID:  r.StatusID,
		TagIDs:    r.TagIDs,
		UserID:    r.UserID,
		Referrers: r.Referrers,
	}

	var err error
	if p.DateFrom, err = optionalDate(r.DateFrom, "date_from", loc); err != nil {
		return p, err
	}
	if p.DateTo, err = optionalDate(r.DateTo, "date_to", loc); err != nil {
		return p, err
	}
	return p, nil
}

func optionalDate(
	in submission.Optional[*string],
	field string,
	loc *time.Location,
) (submission.Optional[*time.Time], error) {

	if !in.Set {
		return submission.Optional[*time.Time]{}, nil
	}
	if in.Value == nil {
		return submission.Some[*time.Time](nil), nil
	}
	t, err := parseDate(strings.TrimSpace(*in.Value), field, loc)
	if err != nil {
		return submission.Optional[*time.Time]{}, err
	}
	return submission.Some(t), nil
}

func writeFilterError(c *gin.Context, err error) {
	var ve submission.ValidationError
	if errors.As(err, &ve) {
		httperr.FieldError(c, "invalid_filter", ve.Field, ve.Message)
		return
	}
	httperr.BadRequest(c, "invalid_filter", err.Error())
}
