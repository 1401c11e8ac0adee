package dto

import (
	"time"

	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

// SubmissionRow é a linha desnormalizada da lista: submission + ids das tags.
type SubmissionRow struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	VehicleType    string    `json:"vehicle_type"`
	BudgetFrom     float64   `json:"budget_from"`
	BudgetTo       float64   `json:"budget_to"`
	Ref            *string   `json:"ref"`
	StatusID       *uint     `json:"status_id"`
	AssignedUserID *string   `json:"assigned_user_id"`
	TagIDs         []uint    `json:"tag_ids"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewSubmissionRow(s *models.Submission) SubmissionRow {
	return SubmissionRow{
		ID:             s.ID,
		Name:           s.Name,
		Phone:          s.Phone,
		VehicleType:    s.VehicleType,
		BudgetFrom:     s.BudgetFrom,
		BudgetTo:       s.BudgetTo,
		Ref:            s.Ref,
		StatusID:       s.StatusID,
		AssignedUserID: s.AssignedUserID,
		TagIDs:         s.TagIDs(),
		CreatedAt:      s.CreatedAt,
	}
}

func NewSubmissionRows(subs []models.Submission) []SubmissionRow {
	out := make([]SubmissionRow, 0, len(subs))
	for i := range subs {
		out = append(out, NewSubmissionRow(&subs[i]))
	}
	return out
}
