package repositories_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
)

func TestUserListStartsEmpty(t *testing.T) {
	setupDB(t)
	repo := repositories.NewUserRepository()

	users, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, users)

	_, found, err := repo.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserAppendAndFind(t *testing.T) {
	setupDB(t)
	repo := repositories.NewUserRepository()

	u := models.User{ID: "user-1", Name: "太郎", Email: "taro@example.com", CreatedAt: time.Now()}
	require.NoError(t, repo.Append(u))

	got, found, err := repo.FindByEmail("taro@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, "太郎", got.Name)
}

func TestUserReplaceUpdatesMatchingIDOnly(t *testing.T) {
	setupDB(t)
	repo := repositories.NewUserRepository()

	require.NoError(t, repo.Append(models.User{ID: "user-1", Name: "太郎", Email: "taro@example.com"}))
	require.NoError(t, repo.Append(models.User{ID: "user-2", Name: "花子", Email: "hanako@example.com"}))

	require.NoError(t, repo.Replace(models.User{ID: "user-1", Name: "太郎さん", Email: "taro@example.com"}))

	users, err := repo.All()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "太郎さん", users[0].Name)
	assert.Equal(t, "花子", users[1].Name)
}

func TestSessionRoundTrip(t *testing.T) {
	setupDB(t)
	repo := repositories.NewUserRepository()

	_, ok, err := repo.Session()
	require.NoError(t, err)
	assert.False(t, ok)

	u := models.User{
		ID:    "user-1",
		Name:  "太郎",
		Email: "taro@example.com",
		Address: &models.Address{
			PostalCode: "150-0001",
			Prefecture: "東京都",
			City:       "渋谷区",
			Street:     "神宮前1-2-3",
		},
	}
	require.NoError(t, repo.SaveSession(u))

	got, ok, err := repo.Session()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.Address)
	assert.Equal(t, "渋谷区", got.Address.City)

	require.NoError(t, repo.ClearSession())
	_, ok, err = repo.Session()
	require.NoError(t, err)
	assert.False(t, ok)
}

// The session record sits encrypted at rest; the raw kv value must not
// contain the user's email in the clear.
func TestSessionRecordIsEncryptedAtRest(t *testing.T) {
	setupDB(t)
	repo := repositories.NewUserRepository()

	require.NoError(t, repo.SaveSession(models.User{ID: "user-1", Email: "taro@example.com"}))

	var raw []byte
	err := databaseRawValue("ameya:auth:session", &raw)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "taro@example.com")
}
