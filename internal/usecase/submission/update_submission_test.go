package submission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
)

func TestUpdateSubmission_ReplacesAndAudits(t *testing.T) {
	repo := newFakeRepo(sampleSubs()...)
	sink := &recordingSink{}
	dispatcher := audit.NewDispatcher(sink, zap.NewNop())

	uc := NewUpdateSubmission(repo, dispatcher)
	row, err := uc.Execute(context.Background(), UpdateSubmissionInput{
		ID:       1,
		StatusID: ptr(uint(2)),
		UserID:   ptr("u-1"),
		TagIDs:   []uint{2, 2, 1},
		ActorID:  "u-1",
	})
	require.NoError(t, err)
	dispatcher.Close()

	assert.Equal(t, []uint{2, 1}, repo.lastUpdate.TagIDs)
	assert.Equal(t, uint(2), *row.StatusID)
	assert.Equal(t, "u-1", *row.AssignedUserID)
	assert.Equal(t, []uint{2, 1}, row.TagIDs)

	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	assert.Equal(t, "submission_updated", ev.Action)
	assert.Equal(t, "1", ev.EntityID)
	assert.Equal(t, "u-1", *ev.UserID)
	assert.Equal(t, uint(1), *ev.OldValues.(dto.SubmissionRow).StatusID)
	assert.Equal(t, uint(2), *ev.NewValues.(dto.SubmissionRow).StatusID)
}

func TestUpdateSubmission_EmptyUserClearsAssignee(t *testing.T) {
	repo := newFakeRepo(sampleSubs()...)
	dispatcher := audit.NewDispatcher(&recordingSink{}, zap.NewNop())
	defer dispatcher.Close()

	row, err := NewUpdateSubmission(repo, dispatcher).Execute(context.Background(), UpdateSubmissionInput{
		ID:     1,
		UserID: ptr(""),
	})
	require.NoError(t, err)

	assert.Nil(t, repo.lastUpdate.UserID)
	assert.Nil(t, row.AssignedUserID)
	assert.Nil(t, row.StatusID)
	assert.Empty(t, row.TagIDs)
}

func TestUpdateSubmission_UnknownID(t *testing.T) {
	sink := &recordingSink{}
	dispatcher := audit.NewDispatcher(sink, zap.NewNop())

	_, err := NewUpdateSubmission(newFakeRepo(), dispatcher).Execute(context.Background(), UpdateSubmissionInput{ID: 42})
	dispatcher.Close()

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, sink.events)
}

func TestUpdateSubmission_RepositoryFailureIsNotAudited(t *testing.T) {
	repo := newFakeRepo(sampleSubs()...)
	repo.updateErr = errBoom
	sink := &recordingSink{}
	dispatcher := audit.NewDispatcher(sink, zap.NewNop())

	_, err := NewUpdateSubmission(repo, dispatcher).Execute(context.Background(), UpdateSubmissionInput{ID: 1})
	dispatcher.Close()

	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, sink.events)
}
