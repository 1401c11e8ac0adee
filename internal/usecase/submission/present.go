package submission

import (
	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
	"github.com/BruksfildServices01/autoimport-crm/internal/listing"
)

// sortColumns é a lista fechada de colunas ordenáveis da tabela.
var sortColumns = map[string]listing.Comparator[dto.SubmissionRow]{
	"name":         listing.By(func(r dto.SubmissionRow) string { return r.Name }),
	"phone":        listing.By(func(r dto.SubmissionRow) string { return r.Phone }),
	"vehicle_type": listing.By(func(r dto.SubmissionRow) string { return r.VehicleType }),
	"budget_from":  listing.By(func(r dto.SubmissionRow) float64 { return r.BudgetFrom }),
	"budget_to":    listing.By(func(r dto.SubmissionRow) float64 { return r.BudgetTo }),
	"created_at":   listing.By(func(r dto.SubmissionRow) int64 { return r.CreatedAt.UnixNano() }),
}

// View descreve a apresentação pedida sobre as linhas já filtradas.
type View struct {
	Search string
	Sort   string
	Order  listing.Order
}

func IsSortColumn(column string) bool {
	_, ok := sortColumns[column]
	return ok
}

// Present aplica busca por nome e ordenação. Coluna desconhecida ou vazia
// mantém a ordem do banco (created_at DESC).
func Present(rows []dto.SubmissionRow, v View) []dto.SubmissionRow {
	out := listing.Search(rows, v.Search, func(r dto.SubmissionRow) []string {
		return []string{r.Name}
	})

	if cmp, ok := sortColumns[v.Sort]; ok {
		out = listing.Sort(out, cmp, v.Order)
	}

	return out
}
