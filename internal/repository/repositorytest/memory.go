// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"agribot/internal/model"
	"agribot/internal/repository"
)

// UserRepo is an in-memory repository.UserRepository honouring the unique and
// single-admin constraints of the real schema.
type UserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*model.User
	// StaleUpdates makes the next N UpdateStatus calls report a lost race.
	StaleUpdates int
}

func NewUserRepo() *UserRepo {
	return &UserRepo{nextID: 1, users: make(map[int]*model.User)}
}

func (r *UserRepo) insert(user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrUniqueViolation
		}
		if user.Role == model.RoleAdmin && u.Role == model.RoleAdmin {
			return repository.ErrUniqueViolation
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *UserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(user)
}

func (r *UserRepo) CreateAdminIfMissing(_ context.Context, user *model.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == model.RoleAdmin {
			return false, nil
		}
	}
	admin := *user
	admin.Role = model.RoleAdmin
	admin.Status = model.StatusApproved
	if err := r.insert(&admin); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) UpdateStatus(_ context.Context, id int, from, to model.UserStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.StaleUpdates > 0 {
		r.StaleUpdates--
		return false, nil
	}
	u, ok := r.users[id]
	if !ok || u.Status != from {
		return false, nil
	}
	u.Status = to
	return true, nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, id int, fullName, phone, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.FullName, u.Phone, u.Address = fullName, phone, address
	return nil
}

func (r *UserRepo) filter(keep func(*model.User) bool) []model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if keep(u) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *UserRepo) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	return r.filter(func(u *model.User) bool { return u.Role == role }), nil
}

func (r *UserRepo) ListByStatus(_ context.Context, status model.UserStatus) ([]model.User, error) {
	return r.filter(func(u *model.User) bool { return u.Status == status }), nil
}

func (r *UserRepo) Counts(_ context.Context) (*model.DashboardStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &model.DashboardStats{}
	for _, u := range r.users {
		if u.Role == model.RoleUser {
			stats.TotalUsers++
			if u.Status == model.StatusPending {
				stats.PendingUsers++
			}
		}
		if u.Status == model.StatusRestricted {
			stats.RestrictedUsers++
		}
	}
	return stats, nil
}

// AdminCount reports how many admin rows exist.
func (r *UserRepo) AdminCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.Role == model.RoleAdmin {
			n++
		}
	}
	return n
}

// FeedbackRepo joins feedback with usernames from a UserRepo.
type FeedbackRepo struct {
	mu     sync.Mutex
	users  *UserRepo
	nextID int
	rows   []model.Feedback
}

func NewFeedbackRepo(users *UserRepo) *FeedbackRepo {
	return &FeedbackRepo{users: users, nextID: 1}
}

func (r *FeedbackRepo) Create(_ context.Context, f *model.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = r.nextID
	f.CreatedAt = time.Now()
	r.nextID++
	r.rows = append(r.rows, *f)
	return nil
}

func (r *FeedbackRepo) ListWithUsernames(ctx context.Context) ([]model.FeedbackEntry, error) {
	r.mu.Lock()
	rows := append([]model.Feedback(nil), r.rows...)
	r.mu.Unlock()

	var out []model.FeedbackEntry
	for i := len(rows) - 1; i >= 0; i-- {
		f := rows[i]
		u, _ := r.users.FindByID(ctx, f.UserID)
		if u == nil {
			continue
		}
		out = append(out, model.FeedbackEntry{
			ID: f.ID, Username: u.Username, FeedbackType: f.FeedbackType,
			Rating: f.Rating, Comments: f.Comments, CreatedAt: f.CreatedAt,
		})
	}
	return out, nil
}

func (r *FeedbackRepo) CountByType(_ context.Context) ([]model.FeedbackStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, f := range r.rows {
		counts[f.FeedbackType]++
	}
	stats := []model.FeedbackStat{}
	for t, c := range counts {
		stats = append(stats, model.FeedbackStat{FeedbackType: t, Count: c})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].FeedbackType < stats[j].FeedbackType })
	return stats, nil
}

// ChatRepo keeps chat exchanges in insertion order.
type ChatRepo struct {
	mu     sync.Mutex
	nextID int
	rows   []model.ChatMessage
}

func NewChatRepo() *ChatRepo {
	return &ChatRepo{nextID: 1}
}

func (r *ChatRepo) Create(_ context.Context, m *model.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	r.nextID++
	r.rows = append(r.rows, *m)
	return nil
}

func (r *ChatRepo) ListByUser(_ context.Context, userID int, limit int) ([]model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ChatMessage
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

// Len reports how many exchanges are stored.
func (r *ChatRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
