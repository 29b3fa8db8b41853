package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-app/internal/models"
	"github.com/adanyl0v/go-todo-app/internal/repositories"
	"github.com/adanyl0v/go-todo-app/internal/repositories/users"
)

// Cheap parameters keep the hashing tests fast.
var testHashParams = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  8,
	KeyLength:   16,
}

var nopLogger = zerolog.Nop()

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	err     error
	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return repositories.ErrAlreadyExists
		}
	}
	cp := *user
	r.byID[user.ID] = &cp
	r.creates++
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, id string, patch users.Patch, updatedAt time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	u.UpdatedAt = updatedAt
	cp := *u
	return &cp, nil
}

type fakeTaskRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Task
	err  error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{byID: make(map[string]*models.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *task
	r.byID[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) ListByUserID(_ context.Context, userID string) ([]*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	list := make([]*models.Task, 0)
	for _, t := range r.byID {
		if t.UserID == userID {
			cp := *t
			list = append(list, &cp)
		}
	}
	// UUIDv7 ids sort in creation order.
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *fakeTaskRepo) ListIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	list, err := r.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, t := range list {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (r *fakeTaskRepo) GetOwned(_ context.Context, id, userID string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.byID[id]
	if !ok || t.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	t, ok := r.byID[task.ID]
	if !ok || t.UserID != task.UserID {
		return repositories.ErrNotFound
	}
	cp := *task
	r.byID[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) SetCompleted(_ context.Context, id, userID string, isCompleted bool, updatedAt time.Time) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.byID[id]
	if !ok || t.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	t.IsCompleted = isCompleted
	t.UpdatedAt = updatedAt
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	t, ok := r.byID[id]
	if !ok || t.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeTaskRepo) get(id string) *models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditLogEntry
	err     error
	ctxErr  error
}

func (r *fakeAuditRepo) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctxErr = ctx.Err()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

type fakeIssuer struct {
	token     string
	expiresAt time.Time
	err       error
	issuedFor string
}

func (i *fakeIssuer) Issue(userID string) (string, time.Time, error) {
	i.issuedFor = userID
	return i.token, i.expiresAt, i.err
}
