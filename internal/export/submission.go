package export

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

const (
	noStatus   = "No status"
	unassigned = "Unassigned"
)

// Lookups resolve ids para nomes de exibição.
type Lookups struct {
	statuses map[uint]string
	tags     map[uint]string
	users    map[string]string
	loc      *time.Location
}

func NewLookups(
	statuses []models.Status,
	tags []models.Tag,
	users []models.Profile,
	loc *time.Location,
) Lookups {
	l := Lookups{
		statuses: make(map[uint]string, len(statuses)),
		tags:     make(map[uint]string, len(tags)),
		users:    make(map[string]string, len(users)),
		loc:      loc,
	}
	for _, s := range statuses {
		l.statuses[s.ID] = s.Name
	}
	for _, t := range tags {
		l.tags[t.ID] = t.Name
	}
	for _, u := range users {
		l.users[u.ID] = u.FullName
	}
	if l.loc == nil {
		l.loc = time.UTC
	}
	return l
}

func FormatSubmission(row dto.SubmissionRow, l Lookups) Record {
	status := noStatus
	if row.StatusID != nil {
		if name, ok := l.statuses[*row.StatusID]; ok && name != "" {
			status = name
		}
	}

	assignee := unassigned
	if row.AssignedUserID != nil {
		if name, ok := l.users[*row.AssignedUserID]; ok && name != "" {
			assignee = name
		}
	}

	tagNames := make([]string, 0, len(row.TagIDs))
	for _, id := range row.TagIDs {
		if name, ok := l.tags[id]; ok && name != "" {
			tagNames = append(tagNames, name)
		}
	}

	createdAt := ""
	if !row.CreatedAt.IsZero() {
		createdAt = row.CreatedAt.In(l.loc).Format("2006-01-02")
	}

	return Record{
		{"id", row.ID},
		{"name", row.Name},
		{"phone", row.Phone},
		{"vehicle_type", row.VehicleType},
		{"budget_from", row.BudgetFrom},
		{"budget_to", row.BudgetTo},
		{"status", status},
		{"assigned_to", assignee},
		{"referrer", row.Ref},
		{"tags", strings.Join(tagNames, ", ")},
		{"created_at", createdAt},
	}
}

// Submissions formata e serializa todas as linhas em memória.
func Submissions(rows []dto.SubmissionRow, l Lookups) string {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, FormatSubmission(row, l))
	}
	return ObjectsToCSV(records)
}
