package submission

import (
	"context"

	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

// ======================================================
// OUTPUT
// ======================================================

type ListResult struct {
	Submissions []dto.SubmissionRow `json:"submissions"`
	Statuses    []models.Status     `json:"statuses"`
	Tags        []models.Tag        `json:"tags"`
	Users       []models.Profile    `json:"users"`
	Referrers   []string            `json:"referrers"`
}

// ======================================================
// USE CASE
// ======================================================

type ListSubmissions struct {
	repo    domain.Repository
	lookups domain.LookupRepository
}

func NewListSubmissions(
	repo domain.Repository,
	lookups domain.LookupRepository,
) *ListSubmissions {
	return &ListSubmissions{
		repo:    repo,
		lookups: lookups,
	}
}

// Execute busca submissions e tabelas auxiliares em sequência.
// Qualquer falha aborta o lote inteiro: nunca devolve dados parciais.
func (uc *ListSubmissions) Execute(
	ctx context.Context,
	f domain.Filters,
) (*ListResult, error) {

	subs, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	statuses, err := uc.lookups.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}

	tags, err := uc.lookups.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	users, err := uc.lookups.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	referrers, err := uc.lookups.ListReferrers(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Submissions: dto.NewSubmissionRows(subs),
		Statuses:    nonNil(statuses),
		Tags:        nonNil(tags),
		Users:       nonNil(users),
		Referrers:   nonNil(referrers),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
