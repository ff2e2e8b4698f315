package state

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/pkg/auth"
	"github.com/shashiranjanraj/ameya/pkg/logger"
)

// AuthState is a point-in-time copy of the session cache.
type AuthState struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	Loading         bool         `json:"loading"`
}

// SessionContext mirrors the persisted current-user record in memory.
// All mutations go through the user repository first; the cache only
// holds what storage already confirmed.
type SessionContext struct {
	mu      sync.RWMutex
	user    *models.User
	loading bool
	users   *repositories.UserRepository
}

func NewSessionContext(users *repositories.UserRepository) *SessionContext {
	return &SessionContext{users: users, loading: true}
}

// Init loads the persisted session record, if any. A read failure is
// logged and treated as "not logged in" — never fatal.
func (s *SessionContext) Init() {
	user, ok, err := s.users.Session()
	if err != nil {
		logger.Warn("session: restore failed", "error", err)
	}

	s.mu.Lock()
	if ok {
		s.user = &user
	}
	s.loading = false
	s.mu.Unlock()
}

// NewUserID builds a user key the way the storefront always has:
// user-<unix millis>-<9 base36 chars>.
func NewUserID() string {
	return fmt.Sprintf("user-%d-%s", time.Now().UnixMilli(), randSuffix(9))
}

func randSuffix(n int) string {
	s := strconv.FormatInt(rand.Int63(), 36)
	for len(s) < n {
		s += strconv.FormatInt(rand.Int63(), 36)
	}
	return s[:n]
}

// Login authenticates by email. The password is accepted but never
// verified — a deliberate demo decision carried over from the original.
// Unknown emails are silently auto-registered with the address's local
// part as display name, so login cannot fail for a well-formed address.
func (s *SessionContext) Login(email, password string) (models.User, error) {
	_ = password

	user, found, err := s.users.FindByEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("state: login: %w", err)
	}

	if !found {
		user = models.User{
			ID:        NewUserID(),
			Name:      strings.SplitN(email, "@", 2)[0],
			Email:     email,
			CreatedAt: time.Now(),
		}
		if err := s.users.Append(user); err != nil {
			return models.User{}, fmt.Errorf("state: auto-register: %w", err)
		}
		logger.Info("session: auto-registered", "email", email)
	}

	if err := s.users.SaveSession(user); err != nil {
		return models.User{}, fmt.Errorf("state: save session: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, nil
}

// RegisterInput is what the registration form collects.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  *models.Address
}

// Register creates an account and logs it in. It fails only when the
// email is already registered, and in that case mutates nothing.
func (s *SessionContext) Register(in RegisterInput) (models.User, bool, error) {
	_, exists, err := s.users.FindByEmail(in.Email)
	if err != nil {
		return models.User{}, false, fmt.Errorf("state: register: %w", err)
	}
	if exists {
		return models.User{}, false, nil
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, false, fmt.Errorf("state: hash password: %w", err)
	}

	user := models.User{
		ID:           NewUserID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Address:      in.Address,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Append(user); err != nil {
		return models.User{}, false, fmt.Errorf("state: register: %w", err)
	}
	if err := s.users.SaveSession(user); err != nil {
		return models.User{}, false, fmt.Errorf("state: save session: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, true, nil
}

// UpdateInput carries the optional profile fields; nil means unchanged.
type UpdateInput struct {
	Name    *string
	Phone   *string
	Address *models.Address
}

// Update merges partial fields into the current user and persists the
// result to both the session record and the registered list.
func (s *SessionContext) Update(in UpdateInput) (models.User, error) {
	s.mu.RLock()
	current := s.user
	s.mu.RUnlock()

	if current == nil {
		return models.User{}, fmt.Errorf("state: update: not logged in")
	}

	user := *current
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = in.Address
	}

	if err := s.users.Replace(user); err != nil {
		return models.User{}, fmt.Errorf("state: update list: %w", err)
	}
	if err := s.users.SaveSession(user); err != nil {
		return models.User{}, fmt.Errorf("state: update session: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, nil
}

// Logout clears the session record and the cache. The registered list
// is untouched.
func (s *SessionContext) Logout() error {
	if err := s.users.ClearSession(); err != nil {
		return fmt.Errorf("state: logout: %w", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Current returns the logged-in user, if any.
func (s *SessionContext) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// State returns a copy of the cache.
func (s *SessionContext) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := AuthState{Loading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
		st.IsAuthenticated = true
	}
	return st
}
