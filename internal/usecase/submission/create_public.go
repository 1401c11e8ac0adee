package submission

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

// Notifier avisa a equipe sobre um lead novo.
type Notifier interface {
	NotifyNewSubmission(ctx context.Context, row dto.SubmissionRow) error
}

const notifyTimeout = 30 * time.Second

// ======================================================
// INPUT
// ======================================================

type CreatePublicSubmissionInput struct {
	Submission domain.NewSubmission

	IPAddress string
	UserAgent string
}

// ======================================================
// USE CASE
// ======================================================

type CreatePublicSubmission struct {
	repo     domain.Repository
	lookups  domain.LookupRepository
	audit    *audit.Dispatcher
	notifier Notifier
	log      *zap.Logger
}

func NewCreatePublicSubmission(
	repo domain.Repository,
	lookups domain.LookupRepository,
	audit *audit.Dispatcher,
	notifier Notifier,
	log *zap.Logger,
) *CreatePublicSubmission {
	return &CreatePublicSubmission{
		repo:     repo,
		lookups:  lookups,
		audit:    audit,
		notifier: notifier,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePublicSubmission) Execute(
	ctx context.Context,
	in CreatePublicSubmissionInput,
) (*dto.SubmissionRow, error) {

	// --------------------------------------------------
	// 1️⃣ Campos obrigatórios + faixa de orçamento
	// --------------------------------------------------
	if err := in.Submission.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Formulário público sempre cria leads "open"
	// --------------------------------------------------
	open, err := uc.lookups.FindStatusByName(ctx, models.OpenStatusName)
	if err != nil {
		if httperr.IsBusiness(err, "status_not_found") {
			return nil, domain.ErrInvalidStatus
		}
		return nil, err
	}
	in.Submission.StatusID = &open.ID

	// --------------------------------------------------
	// 3️⃣ Persistência
	// --------------------------------------------------
	sub := in.Submission.Model()
	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	row := dto.NewSubmissionRow(sub)

	// --------------------------------------------------
	// 4️⃣ Audit público (sem usuário)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:        "submission_created",
		EntityType:    "submission",
		EntityID:      strconv.FormatUint(uint64(sub.ID), 10),
		NewValues:     row,
		SubmitterName: sub.Name,
		IPAddress:     in.IPAddress,
		UserAgent:     in.UserAgent,
	})

	// --------------------------------------------------
	// 5️⃣ Notificação fora do caminho da requisição
	// --------------------------------------------------
	if uc.notifier != nil {
		go uc.notify(row)
	}

	return &row, nil
}

func (uc *CreatePublicSubmission) notify(row dto.SubmissionRow) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := uc.notifier.NotifyNewSubmission(ctx, row); err != nil {
		uc.log.Error("new submission notification failed",
			zap.Uint("submission_id", row.ID),
			zap.Error(err),
		)
	}
}
