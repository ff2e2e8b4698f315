package services

import (
	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/state"
	"github.com/shashiranjanraj/ameya/config"
	"github.com/shashiranjanraj/ameya/pkg/auth"
)

// AuthService fronts the session context for the HTTP layer and issues
// the bearer tokens the admin API checks.
type AuthService struct {
	session *state.SessionContext
}

func NewAuthService(session *state.SessionContext) *AuthService {
	return &AuthService{session: session}
}

// roleFor grants the admin role to the configured back-office address;
// everyone else is a customer.
func roleFor(user models.User) string {
	if user.Role != "" {
		return user.Role
	}
	if user.Email == config.AdminEmail() {
		return "admin"
	}
	return "customer"
}

// Login logs the email in (auto-registering unknown addresses) and
// returns the user plus a signed token.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.session.Login(email, password)
	if err != nil {
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID, roleFor(user))
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Register creates an account. ok is false when the email is taken.
func (s *AuthService) Register(in state.RegisterInput) (models.User, string, bool, error) {
	user, ok, err := s.session.Register(in)
	if err != nil || !ok {
		return models.User{}, "", ok, err
	}

	token, err := auth.GenerateToken(user.ID, roleFor(user))
	if err != nil {
		return models.User{}, "", false, err
	}
	return user, token, true, nil
}
