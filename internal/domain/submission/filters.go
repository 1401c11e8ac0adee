package submission

import (
	"encoding/json"
	"slices"
	"time"
)

// Filters é o estado imutável de filtro da lista de submissions.
// Nil ou vazio significa "sem restrição" naquela dimensão.
type Filters struct {
	StatusID  *uint      `json:"status_id"`
	TagIDs    []uint     `json:"tag_ids"`
	UserID    *string    `json:"user_id"`
	Referrers []string   `json:"referrers"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
}

// Optional distingue campo ausente (Set=false) de campo enviado como null.
type Optional[T any] struct {
	Set   bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	return json.Unmarshal(b, &o.Value)
}

// FilterPatch é a ação do reducer: cada campo enviado substitui a dimensão inteira.
type FilterPatch struct {
	StatusID  Optional[*uint]
	TagIDs    Optional[[]uint]
	UserID    Optional[*string]
	Referrers Optional[[]string]
	DateFrom  Optional[*time.Time]
	DateTo    Optional[*time.Time]
}

// Apply devolve um novo Filters; o receptor não é alterado.
func (f Filters) Apply(p FilterPatch) Filters {
	next := f.clone()

	if p.StatusID.Set {
		next.StatusID = clonePtr(p.StatusID.Value)
	}
	if p.TagIDs.Set {
		next.TagIDs = dedupe(p.TagIDs.Value)
	}
	if p.UserID.Set {
		next.UserID = nonEmpty(p.UserID.Value)
	}
	if p.Referrers.Set {
		next.Referrers = dedupe(p.Referrers.Value)
	}
	if p.DateFrom.Set {
		next.DateFrom = clonePtr(p.DateFrom.Value)
	}
	if p.DateTo.Set {
		next.DateTo = clonePtr(p.DateTo.Value)
	}

	return next
}

func (f Filters) IsEmpty() bool {
	return f.StatusID == nil &&
		len(f.TagIDs) == 0 &&
		f.UserID == nil &&
		len(f.Referrers) == 0 &&
		f.DateFrom == nil &&
		f.DateTo == nil
}

// DateToExclusive é o limite superior semiaberto: o dia seguinte a DateTo.
func (f Filters) DateToExclusive() *time.Time {
	if f.DateTo == nil {
		return nil
	}
	next := f.DateTo.AddDate(0, 0, 1)
	return &next
}

// In devolve uma cópia com as datas no fuso loc. JSON guarda só o offset, e
// DateToExclusive precisa do fuso real para atravessar a troca de horário.
func (f Filters) In(loc *time.Location) Filters {
	out := f.clone()
	if out.DateFrom != nil {
		v := out.DateFrom.In(loc)
		out.DateFrom = &v
	}
	if out.DateTo != nil {
		v := out.DateTo.In(loc)
		out.DateTo = &v
	}
	return out
}

func (f Filters) clone() Filters {
	return Filters{
		StatusID:  clonePtr(f.StatusID),
		TagIDs:    slices.Clone(f.TagIDs),
		UserID:    clonePtr(f.UserID),
		Referrers: slices.Clone(f.Referrers),
		DateFrom:  clonePtr(f.DateFrom),
		DateTo:    clonePtr(f.DateTo),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return clonePtr(p)
}

func dedupe[T comparable](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// UniqueIDs remove ids repetidos preservando a ordem.
func UniqueIDs(ids []uint) []uint {
	return dedupe(ids)
}
