package usecase

import (
	"context"
	"sync"
	"time"

	"account_backend/internal/feature/auth/domain"
	"account_backend/internal/feature/auth/domain/entity"
)

// memUserRepo is an in-memory UserRepository that enforces the same
// uniqueness rules as the database indexes.
type memUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint]*entity.User{}}
}

func (r *memUserRepo) insert(u *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if u.FederatedID != nil && existing.FederatedID != nil && *existing.FederatedID == *u.FederatedID {
			return nil, domain.ErrFederatedIdentityLinked
		}
		if existing.Email == u.Email {
			return nil, domain.ErrEmailAlreadyRegistered
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) CreateWithPassword(_ context.Context, email, passwordHash, name string) (*entity.User, error) {
	return r.insert(&entity.User{Email: email, PasswordHash: &passwordHash, Name: name, AuthProvider: entity.ProviderPassword})
}

func (r *memUserRepo) CreateWithFederatedIdentity(_ context.Context, email, name, federatedID string, avatarURL *string) (*entity.User, error) {
	return r.insert(&entity.User{Email: email, Name: name, FederatedID: &federatedID, AvatarURL: avatarURL, AuthProvider: entity.ProviderFederated})
}

func (r *memUserRepo) find(match func(*entity.User) bool) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r *memUserRepo) FindByFederatedID(_ context.Context, federatedID string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.FederatedID != nil && *u.FederatedID == federatedID }), nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uint) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *memUserRepo) LinkFederatedIdentity(_ context.Context, userID uint, federatedID string, avatarURL *string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.FederatedID = &federatedID
	if u.AvatarURL == nil {
		u.AvatarURL = avatarURL
	}
	u.AuthProvider = u.DeriveAuthProvider()
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// memSessionRepo is an in-memory SessionRepository.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*entity.Session{}}
}

func (r *memSessionRepo) Create(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memSessionRepo) FindByID(_ context.Context, id string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) DeleteAllByUserID(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *memSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for id, s := range r.sessions {
		if s.IsExpiredAt(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *memSessionRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
