package submission

import (
	"fmt"
	"math"
	"strings"

	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// NewSubmission é a entrada do formulário público antes da validação.
type NewSubmission struct {
	Phone       string
	Name        string
	BudgetFrom  *float64
	BudgetTo    *float64
	VehicleType string
	StatusID    *uint
	Ref         string
}

// Validate checa os campos obrigatórios na ordem do formulário e a faixa de
// orçamento. Orçamento NaN representa um valor enviado que não é número.
func (in NewSubmission) Validate() error {
	required := []struct {
		field   string
		missing bool
	}{
		{"phone", strings.TrimSpace(in.Phone) == ""},
		{"name", strings.TrimSpace(in.Name) == ""},
		{"budget_from", in.BudgetFrom == nil},
		{"budget_to", in.BudgetTo == nil},
		{"vehicle_type", strings.TrimSpace(in.VehicleType) == ""},
		{"status_id", in.StatusID == nil},
	}
	for _, r := range required {
		if r.missing {
			return ValidationError{
				Field:   r.field,
				Message: fmt.Sprintf("Missing required field: %s", r.field),
			}
		}
	}

	if math.IsNaN(*in.BudgetFrom) || math.IsNaN(*in.BudgetTo) {
		return ValidationError{
			Field:   "budget_from",
			Message: "Budget values must be valid numbers",
		}
	}

	if *in.BudgetFrom > *in.BudgetTo {
		return ValidationError{
			Field:   "budget_from",
			Message: "Budget from value must be less than or equal to budget to value",
		}
	}

	return nil
}

// Model monta a linha a persistir; só deve ser chamado após Validate.
func (in NewSubmission) Model() *models.Submission {
	s := &models.Submission{
		Phone:       strings.TrimSpace(in.Phone),
		Name:        strings.TrimSpace(in.Name),
		VehicleType: strings.TrimSpace(in.VehicleType),
		BudgetFrom:  *in.BudgetFrom,
		BudgetTo:    *in.BudgetTo,
		StatusID:    clonePtr(in.StatusID),
	}
	if ref := strings.TrimSpace(in.Ref); ref != "" {
		s.Ref = &ref
	}
	return s
}
