package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkordes/travel-planner/internal/auth"
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// DefaultSessionDuration is the lifetime of a session that is not remembered.
const DefaultSessionDuration = 24 * time.Hour

// Registration is the sign-up form.
type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Credentials is the login form.
type Credentials struct {
	Email      string
	Password   string
	RememberMe bool
}

// AuthService implements the user registry and the session store.
type AuthService struct {
	store  store
	hasher auth.Hasher
	ttl    time.Duration
	deps   deps

	// fallback holds a session whose write failed; it is served until logout.
	mu       sync.Mutex
	fallback *domain.Session
}

// NewAuthService constructs an AuthService. A non-positive ttl means
// DefaultSessionDuration.
func NewAuthService(kv repo.KVRepo, hasher auth.Hasher, ttl time.Duration, opts ...Option) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionDuration
	}
	d := newDeps(opts)
	return &AuthService{store: store{kv: kv, log: d.log}, hasher: hasher, ttl: ttl, deps: d}
}

func (s *AuthService) users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if _, err := s.store.load(ctx, domain.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Register validates the form, appends the new user to the registry and logs
// them in with a session that is not remembered.
func (s *AuthService) Register(ctx context.Context, r Registration) (domain.User, domain.Session, error) {
	name := strings.TrimSpace(r.Name)
	email := strings.TrimSpace(r.Email)
	if name == "" || email == "" || r.Password == "" {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.Register: %w: all fields are required", domain.ErrValidation)
	}
	if !auth.ValidEmail(email) {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.Register: %w: please enter a valid email address", domain.ErrValidation)
	}
	if len(r.Password) > auth.MaxPasswordBytes {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.Register: %w: password must be at most %d bytes", domain.ErrValidation, auth.MaxPasswordBytes)
	}
	if auth.PasswordStrength(r.Password).Level < auth.MinRegistrationLevel {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.Register: %w: password is too weak, please choose a stronger password", domain.ErrPolicy)
	}
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.Register: %w: passwords do not match", domain.ErrValidation)
	}

	users, err := s.users(ctx)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	email = strings.ToLower(email)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.Register: %w: an account with this email already exists", domain.ErrPolicy)
		}
	}

	hashed, err := s.hasher.Hash(r.Password)
	if err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	now := s.deps.now().UTC()
	user := domain.User{
		ID:        s.deps.newID(),
		Name:      name,
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
		LastLogin: now,
	}
	if err := s.store.save(ctx, domain.KeyUsers, append(users, user)); err != nil {
		return domain.User{}, domain.Session{}, err
	}

	return user, s.startSession(ctx, user, false, now), nil
}

// Login matches the credentials against the registry, updates the user's last
// login time and writes a new session. No session is written on failure.
func (s *AuthService) Login(ctx context.Context, c Credentials) (domain.Session, error) {
	users, err := s.users(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	email := strings.TrimSpace(c.Email)
	i := -1
	for j, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if err := s.hasher.Compare(u.Password, c.Password); err == nil {
			i = j
			break
		} else if !errors.Is(err, auth.ErrMismatch) {
			return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
		}
	}
	if i < 0 {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	now := s.deps.now().UTC()
	users[i].LastLogin = now
	if err := s.store.save(ctx, domain.KeyUsers, users); err != nil {
		return domain.Session{}, err
	}
	return s.startSession(ctx, users[i], c.RememberMe, now), nil
}

// startSession persists a session for user. A failed write is logged and the
// session is kept in memory instead.
func (s *AuthService) startSession(ctx context.Context, user domain.User, remember bool, now time.Time) domain.Session {
	sess := domain.Session{
		User:       user.Profile(),
		LoginTime:  now,
		ExpiresAt:  now.Add(s.ttl),
		RememberMe: remember,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.save(ctx, domain.KeySession, sess); err != nil {
		s.store.log.WarnContext(ctx, "session not persisted, keeping it in memory", "error", err)
		s.fallback = &sess
		return sess
	}
	s.fallback = nil
	return sess
}

// Session returns the current session. An unreadable session, or an expired
// one that is not remembered, is deleted and reported as absent.
func (s *AuthService) Session(ctx context.Context) (domain.Session, bool, error) {
	now := s.deps.now()

	s.mu.Lock()
	fallback := s.fallback
	s.mu.Unlock()
	if fallback != nil {
		if fallback.Valid(now) {
			return *fallback, true, nil
		}
		s.mu.Lock()
		s.fallback = nil
		s.mu.Unlock()
	}

	var sess domain.Session
	found, err := s.store.load(ctx, domain.KeySession, &sess)
	if err != nil {
		return domain.Session{}, false, err
	}
	if !found {
		return domain.Session{}, false, nil
	}
	if sess.Valid(now) {
		return sess, true, nil
	}

	if err := s.store.remove(ctx, domain.KeySession); err != nil {
		return domain.Session{}, false, err
	}
	return domain.Session{}, false, nil
}

// Logout ends the session and discards the active trip and its countdown.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.fallback = nil
	s.mu.Unlock()
	return s.store.remove(ctx, domain.KeySession, domain.KeyTrip, domain.KeyNextTrip)
}
