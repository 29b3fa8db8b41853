package v1

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adanyl0v/go-todo-app/internal/models"
	"github.com/adanyl0v/go-todo-app/internal/repositories"
	"github.com/adanyl0v/go-todo-app/internal/repositories/users"
)

// memStore backs the users, tasks and audit log repositories in memory.
type memStore struct {
	mu    sync.Mutex
	users map[string]models.User
	tasks map[string]models.Task
	logs  []models.AuditLogEntry
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]models.User),
		tasks: make(map[string]models.Task),
	}
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repositories.ErrAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memUsers) Update(_ context.Context, id string, patch users.Patch, updatedAt time.Time) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
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
	r.s.users[id] = u
	return &u, nil
}

type memTasks struct{ s *memStore }

func (r memTasks) Create(_ context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[task.UserID]; !ok {
		return repositories.ErrMissingReference
	}
	r.s.tasks[task.ID] = *task
	return nil
}

func (r memTasks) ListByUserID(_ context.Context, userID string) ([]*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*models.Task, 0)
	for _, t := range r.s.tasks {
		if t.UserID == userID {
			t := t
			list = append(list, &t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r memTasks) ListIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	list, _ := r.ListByUserID(ctx, userID)
	ids := make([]string, 0, len(list))
	for _, t := range list {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (r memTasks) GetOwned(_ context.Context, id, userID string) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &t, nil
}

func (r memTasks) Update(_ context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[task.ID]
	if !ok || t.UserID != task.UserID {
		return repositories.ErrNotFound
	}
	r.s.tasks[task.ID] = *task
	return nil
}

func (r memTasks) SetCompleted(_ context.Context, id, userID string, isCompleted bool, updatedAt time.Time) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	t.IsCompleted = isCompleted
	t.UpdatedAt = updatedAt
	r.s.tasks[id] = t
	return &t, nil
}

func (r memTasks) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

type memAuditLogs struct{ s *memStore }

func (r memAuditLogs) Create(_ context.Context, entry *models.AuditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs = append(r.s.logs, *entry)
	return nil
}

func (s *memStore) auditLogs() []models.AuditLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditLogEntry(nil), s.logs...)
}

func (s *memStore) task(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return t, ok
}
