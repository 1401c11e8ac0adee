package submission

import (
	"context"
	"strconv"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
)

// ======================================================
// INPUT
// ======================================================

type UpdateSubmissionInput struct {
	ID uint

	// nil limpa o campo
	StatusID *uint
	UserID   *string

	// conjunto final de tags; vazio remove todas
	TagIDs []uint

	ActorID   string
	IPAddress string
	UserAgent string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateSubmission struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateSubmission(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateSubmission {
	return &UpdateSubmission{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateSubmission) Execute(
	ctx context.Context,
	in UpdateSubmissionInput,
) (*dto.SubmissionRow, error) {

	// --------------------------------------------------
	// 1️⃣ Estado anterior (para o audit)
	// --------------------------------------------------
	old, err := uc.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	before := dto.NewSubmissionRow(old)

	// --------------------------------------------------
	// 2️⃣ Status + responsável + tags (transação única)
	// --------------------------------------------------
	userID := in.UserID
	if userID != nil && *userID == "" {
		userID = nil
	}

	updated, err := uc.repo.Update(ctx, in.ID, domain.Update{
		StatusID: in.StatusID,
		UserID:   userID,
		TagIDs:   domain.UniqueIDs(in.TagIDs),
	})
	if err != nil {
		return nil, err
	}
	after := dto.NewSubmissionRow(updated)

	// --------------------------------------------------
	// 3️⃣ Audit
	// --------------------------------------------------
	actor := in.ActorID
	uc.audit.Dispatch(audit.Event{
		UserID:     &actor,
		Action:     "submission_updated",
		EntityType: "submission",
		EntityID:   strconv.FormatUint(uint64(in.ID), 10),
		OldValues:  before,
		NewValues:  after,
		IPAddress:  in.IPAddress,
		UserAgent:  in.UserAgent,
	})

	return &after, nil
}
