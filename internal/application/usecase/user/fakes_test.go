package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/user-gateway/adapters/event"
	"github.com/khoahotran/user-gateway/internal/domain/user"
)

type fakeRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*user.User
	lastDraft *user.Draft
	lastPatch *user.Patch
	deleted   []uuid.UUID
	listCalls int

	listErr   error
	insertErr error
	updateErr error
	deleteErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeRepo) List(ctx context.Context, columns []string) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeRepo) Insert(ctx context.Context, draft *user.Draft) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.lastDraft = draft
	u := &user.User{
		ID:             uuid.New(),
		Name:           draft.Name,
		Email:          draft.Email,
		Title:          draft.Title,
		PasswordDigest: draft.PasswordDigest,
	}
	r.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) Update(ctx context.Context, id uuid.UUID, patch user.Patch) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	r.lastPatch = &patch
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Title != nil {
		u.Title = patch.Title
	}
	if patch.PasswordDigest != nil {
		u.PasswordDigest = patch.PasswordDigest
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	// missing ids succeed too
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]*user.User
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]*user.User)}
}

func (c *fakeCache) GetList(ctx context.Context, key string) ([]*user.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	users, ok := c.entries[key]
	return users, ok
}

func (c *fakeCache) SetList(ctx context.Context, key string, users []*user.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = users
}

func (c *fakeCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]*user.User)
	c.invalidated++
}

type fakePublisher struct {
	published chan event.UserEventPayload
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(chan event.UserEventPayload, 8)}
}

func (p *fakePublisher) PublishUserEvent(ctx context.Context, payload event.UserEventPayload) error {
	p.published <- payload
	return nil
}
