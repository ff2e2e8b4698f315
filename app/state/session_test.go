package state_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/state"
)

func newSession(t *testing.T) *state.SessionContext {
	t.Helper()
	s := state.NewSessionContext(repositories.NewUserRepository())
	s.Init()
	return s
}

func TestLoginAutoRegistersUnknownEmail(t *testing.T) {
	setupDB(t)
	s := newSession(t)

	user, err := s.Login("taro@example.com", "whatever")
	require.NoError(t, err)

	// Display name defaults to the address's local part.
	assert.Equal(t, "taro", user.Name)
	assert.True(t, strings.HasPrefix(user.ID, "user-"))

	users, err := repositories.NewUserRepository().All()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "taro@example.com", users[0].Email)
}

func TestLoginExistingUserKeepsRecord(t *testing.T) {
	setupDB(t)
	s := newSession(t)

	_, ok, err := s.Register(state.RegisterInput{
		Name: "太郎", Email: "taro@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.Logout())

	// Any password logs in; the demo never verifies it.
	user, err := s.Login("taro@example.com", "wrong-password")
	require.NoError(t, err)
	assert.Equal(t, "太郎", user.Name)

	users, err := repositories.NewUserRepository().All()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterDuplicateEmailMutatesNothing(t *testing.T) {
	setupDB(t)
	s := newSession(t)

	first, ok, err := s.Register(state.RegisterInput{
		Name: "太郎", Email: "taro@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = s.Register(state.RegisterInput{
		Name: "偽太郎", Email: "taro@example.com", Password: "other",
	})
	require.NoError(t, err)
	assert.False(t, ok)

	// Still logged in as the original, list unchanged.
	current, logged := s.Current()
	require.True(t, logged)
	assert.Equal(t, first.ID, current.ID)

	users, err := repositories.NewUserRepository().All()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdatePersistsToListAndSession(t *testing.T) {
	setupDB(t)
	s := newSession(t)

	_, ok, err := s.Register(state.RegisterInput{
		Name: "太郎", Email: "taro@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	require.True(t, ok)

	name := "太郎さん"
	addr := &models.Address{PostalCode: "150-0001", Prefecture: "東京都", City: "渋谷区", Street: "神宮前1-2-3"}
	updated, err := s.Update(state.UpdateInput{Name: &name, Address: addr})
	require.NoError(t, err)
	assert.Equal(t, "太郎さん", updated.Name)

	repo := repositories.NewUserRepository()
	users, err := repo.All()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "太郎さん", users[0].Name)
	require.NotNil(t, users[0].Address)
	assert.Equal(t, "渋谷区", users[0].Address.City)

	// A fresh context restores the updated session record.
	fresh := newSession(t)
	current, logged := fresh.Current()
	require.True(t, logged)
	assert.Equal(t, "太郎さん", current.Name)
}

func TestUpdateWithoutLoginFails(t *testing.T) {
	setupDB(t)
	s := newSession(t)

	name := "x"
	_, err := s.Update(state.UpdateInput{Name: &name})
	assert.Error(t, err)
}

func TestLogoutKeepsRegisteredList(t *testing.T) {
	setupDB(t)
	s := newSession(t)

	_, err := s.Login("taro@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, s.Logout())

	_, logged := s.Current()
	assert.False(t, logged)
	assert.False(t, s.State().IsAuthenticated)

	users, err := repositories.NewUserRepository().All()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestNewUserIDShape(t *testing.T) {
	id := state.NewUserID()
	parts := strings.SplitN(id, "-", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "user", parts[0])
	assert.Len(t, parts[2], 9)
}
