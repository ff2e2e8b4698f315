package repositories

import (
	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/pkg/crypt"
	"github.com/shashiranjanraj/ameya/pkg/kv"
)

// Fixed key-value record keys, same layout as the original storefront:
// one record for the logged-in user, one for the flat registered list.
const (
	sessionKey = "ameya:auth:session"
	usersKey   = "ameya:auth:users"
)

// UserRepository handles user persistence. Users do not live in the
// object store; the whole registered list is one JSON record in
// key-value storage, the current session another.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// All returns the flat registered-user list (empty when none registered).
func (r *UserRepository) All() ([]models.User, error) {
	var users []models.User
	if _, err := kv.Get(usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail looks a user up in the registered list.
// The second return is false when no user has that email.
func (r *UserRepository) FindByEmail(email string) (models.User, bool, error) {
	users, err := r.All()
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

// Append adds a user to the registered list.
func (r *UserRepository) Append(user models.User) error {
	users, err := r.All()
	if err != nil {
		return err
	}
	return kv.Set(usersKey, append(users, user))
}

// Replace swaps the list entry with the same ID for user.
// Users not in the list are left untouched.
func (r *UserRepository) Replace(user models.User) error {
	users, err := r.All()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
		}
	}
	return kv.Set(usersKey, users)
}

// Session returns the persisted current-user record, if any.
// The record sits encrypted at rest; a record that fails to decrypt
// (key rotation, tampering) reads as "not logged in".
func (r *UserRepository) Session() (models.User, bool, error) {
	var sealed string
	ok, err := kv.Get(sessionKey, &sealed)
	if err != nil || !ok {
		return models.User{}, false, err
	}

	var user models.User
	if err := crypt.DecryptJSON(sealed, &user); err != nil {
		return models.User{}, false, nil
	}
	return user, true, nil
}

// SaveSession persists user as the current session record.
func (r *UserRepository) SaveSession(user models.User) error {
	sealed, err := crypt.EncryptJSON(user)
	if err != nil {
		return err
	}
	return kv.Set(sessionKey, sealed)
}

// ClearSession removes the current session record. The registered list
// is never touched by a logout.
func (r *UserRepository) ClearSession() error {
	return kv.Del(sessionKey)
}
