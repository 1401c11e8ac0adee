package submission

import (
	"context"

	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
)

type FilterStateResult struct {
	Filters domain.Filters `json:"filters"`
	*ListResult
}

// FilterState guarda o filtro de cada usuário e refaz a busca completa a cada mudança.
type FilterState struct {
	store domain.FilterStore
	list  *ListSubmissions
}

func NewFilterState(store domain.FilterStore, list *ListSubmissions) *FilterState {
	return &FilterState{
		store: store,
		list:  list,
	}
}

func (uc *FilterState) Current(ctx context.Context, userID string) (domain.Filters, error) {
	return uc.store.LoadFilters(ctx, userID)
}

func (uc *FilterState) Apply(
	ctx context.Context,
	userID string,
	patch domain.FilterPatch,
) (*FilterStateResult, error) {

	current, err := uc.store.LoadFilters(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := current.Apply(patch)
	if err := uc.store.SaveFilters(ctx, userID, next); err != nil {
		return nil, err
	}

	return uc.refetch(ctx, next)
}

func (uc *FilterState) Reset(ctx context.Context, userID string) (*FilterStateResult, error) {
	if err := uc.store.DeleteFilters(ctx, userID); err != nil {
		return nil, err
	}
	return uc.refetch(ctx, domain.Filters{})
}

func (uc *FilterState) refetch(ctx context.Context, f domain.Filters) (*FilterStateResult, error) {
	res, err := uc.list.Execute(ctx, f)
	if err != nil {
		return nil, err
	}
	return &FilterStateResult{Filters: f, ListResult: res}, nil
}
