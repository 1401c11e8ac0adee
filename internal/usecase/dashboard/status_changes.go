package dashboard

import (
	"context"
	"math"
	"time"
)

type StatusCount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type StatusChange struct {
	StatusCount
	PercentChange int  `json:"percent_change"`
	Increased     bool `json:"increased"`
}

type Repository interface {
	// StatusCounts devolve todos os status (ordem por id) com o total de submissions.
	StatusCounts(ctx context.Context) ([]StatusCount, error)
	// CreatedBetween conta submissions criadas em [from, to) por status.
	CreatedBetween(ctx context.Context, from, to time.Time) (map[uint]int64, error)
}

type StatusChanges struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewStatusChanges(repo Repository, loc *time.Location) *StatusChanges {
	return &StatusChanges{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

func (uc *StatusChanges) Counts(ctx context.Context) ([]StatusCount, error) {
	counts, err := uc.repo.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []StatusCount{}
	}
	return counts, nil
}

// Execute compara o total atual de cada status com as criações do mês
// calendário anterior.
func (uc *StatusChanges) Execute(ctx context.Context) ([]StatusChange, error) {
	counts, err := uc.repo.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	from, to := LastMonth(uc.now().In(uc.loc))
	previous, err := uc.repo.CreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]StatusChange, 0, len(counts))
	for _, c := range counts {
		pct := PercentChange(c.Count, previous[c.ID])
		out = append(out, StatusChange{
			StatusCount:   c,
			PercentChange: pct,
			Increased:     pct >= 0,
		})
	}
	return out, nil
}

// LastMonth devolve [primeiro dia do mês anterior, primeiro dia do mês atual).
func LastMonth(now time.Time) (from, to time.Time) {
	to = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return to.AddDate(0, -1, 0), to
}

// PercentChange arredonda meio para cima. Mês anterior zerado com total
// atual positivo conta como 100%.
func PercentChange(current, previous int64) int {
	switch {
	case previous > 0:
		pct := float64(current-previous) / float64(previous) * 100
		return int(math.Floor(pct + 0.5))
	case current > 0:
		return 100
	}
	return 0
}
