// Package listing reúne as operações de apresentação feitas sobre linhas já
// carregadas: busca textual, ordenação, recortes por data e paginação.
package listing

import (
	"cmp"
	"slices"
	"strings"
)

const DefaultPageSize = 20

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate fatia items em páginas de size (1-based). Páginas fora do
// intervalo devolvem Items vazio, mantendo Total e TotalPages.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}

	start := (page - 1) * size
	if start >= total {
		return p
	}
	end := min(start+size, total)

	p.Items = items[start:end]
	return p
}

func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Search mantém as linhas em que algum dos campos contém term, sem
// diferenciar maiúsculas. term vazio devolve tudo.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	return Filter(items, func(it T) bool {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	})
}

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

func ParseOrder(s string) Order {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// Comparator compara duas linhas por uma coluna.
type Comparator[T any] func(a, b T) int

func By[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Sort devolve uma cópia ordenada de forma estável.
func Sort[T any](items []T, compare Comparator[T], order Order) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if order == Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}
