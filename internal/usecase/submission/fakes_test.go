package submission

import (
	"context"
	"errors"
	"sync"

	"github.com/BruksfildServices01/autoimport-crm/internal/audit"
	domain "github.com/BruksfildServices01/autoimport-crm/internal/domain/submission"
	"github.com/BruksfildServices01/autoimport-crm/internal/dto"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

func ptr[T any](v T) *T { return &v }

// ------------------------------------------------------
// repositório em memória
// ------------------------------------------------------

type fakeRepo struct {
	subs      map[uint]*models.Submission
	nextID    uint
	listErr   error
	updateErr error

	lastFilters domain.Filters
	lastUpdate  domain.Update
}

func newFakeRepo(subs ...models.Submission) *fakeRepo {
	r := &fakeRepo{subs: map[uint]*models.Submission{}, nextID: 1}
	for i := range subs {
		s := subs[i]
		r.subs[s.ID] = &s
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
	}
	return r
}

func (r *fakeRepo) List(_ context.Context, f domain.Filters) ([]models.Submission, error) {
	r.lastFilters = f
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Submission, 0, len(r.subs))
	for id := uint(1); id < r.nextID; id++ {
		if s, ok := r.subs[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeRepo) Get(_ context.Context, id uint) (*models.Submission, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, s *models.Submission) error {
	s.ID = r.nextID
	r.nextID++
	cp := *s
	r.subs[s.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, id uint, in domain.Update) (*models.Submission, error) {
	r.lastUpdate = in
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	s, ok := r.subs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.StatusID = in.StatusID
	s.AssignedUserID = in.UserID
	s.SubmissionTags = nil
	for _, tagID := range in.TagIDs {
		s.SubmissionTags = append(s.SubmissionTags, models.SubmissionTag{SubmissionID: id, TagID: tagID})
	}
	cp := *s
	return &cp, nil
}

// ------------------------------------------------------
// lookups
// ------------------------------------------------------

type fakeLookups struct {
	statuses  []models.Status
	tags      []models.Tag
	profiles  []models.Profile
	referrers []string
	err       error
}

func (l *fakeLookups) ListStatuses(context.Context) ([]models.Status, error) {
	return l.statuses, l.err
}

func (l *fakeLookups) FindStatusByName(_ context.Context, name string) (*models.Status, error) {
	for _, s := range l.statuses {
		if s.Name == name {
			return &s, nil
		}
	}
	return nil, domain.ErrStatusNotFound
}

func (l *fakeLookups) ListTags(context.Context) ([]models.Tag, error) {
	return l.tags, l.err
}

func (l *fakeLookups) ListProfiles(context.Context) ([]models.Profile, error) {
	return l.profiles, l.err
}

func (l *fakeLookups) ListReferrers(context.Context) ([]string, error) {
	return l.referrers, l.err
}

func defaultLookups() *fakeLookups {
	return &fakeLookups{
		statuses: []models.Status{{ID: 1, Name: "open"}, {ID: 2, Name: "closed"}},
		tags:     []models.Tag{{ID: 1, Name: "vip"}, {ID: 2, Name: "callback"}},
		profiles: []models.Profile{{ID: "u-1", FullName: "Anna Nowak"}},
	}
}

// ------------------------------------------------------
// filter store
// ------------------------------------------------------

type fakeFilterStore struct {
	byUser  map[string]domain.Filters
	saveErr error
}

func newFakeFilterStore() *fakeFilterStore {
	return &fakeFilterStore{byUser: map[string]domain.Filters{}}
}

func (s *fakeFilterStore) LoadFilters(_ context.Context, userID string) (domain.Filters, error) {
	return s.byUser[userID], nil
}

func (s *fakeFilterStore) SaveFilters(_ context.Context, userID string, f domain.Filters) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.byUser[userID] = f
	return nil
}

func (s *fakeFilterStore) DeleteFilters(_ context.Context, userID string) error {
	delete(s.byUser, userID)
	return nil
}

// ------------------------------------------------------
// audit / notifier
// ------------------------------------------------------

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

type chanNotifier struct {
	sent chan dto.SubmissionRow
	err  error
}

func (n *chanNotifier) NotifyNewSubmission(_ context.Context, row dto.SubmissionRow) error {
	n.sent <- row
	return n.err
}

var errBoom = errors.New("boom")
