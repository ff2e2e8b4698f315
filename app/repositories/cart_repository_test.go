package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/repositories"
)

func TestCartAddMergesQuantities(t *testing.T) {
	setupDB(t)
	repo := repositories.NewCartRepository()

	require.NoError(t, repo.Add("gummy-001", 2))
	require.NoError(t, repo.Add("gummy-001", 3))

	entries, err := repo.All()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "gummy-001", entries[0].ProductID)
	assert.Equal(t, 5, entries[0].Quantity)
}

func TestCartAddKeepsDistinctProductsApart(t *testing.T) {
	setupDB(t)
	repo := repositories.NewCartRepository()

	require.NoError(t, repo.Add("gummy-001", 1))
	require.NoError(t, repo.Add("candy-001", 4))

	entries, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCartUpdateQuantity(t *testing.T) {
	setupDB(t)
	repo := repositories.NewCartRepository()

	require.NoError(t, repo.Add("gummy-001", 2))
	require.NoError(t, repo.UpdateQuantity("gummy-001", 7))

	entry, err := repo.Find("gummy-001")
	require.NoError(t, err)
	assert.Equal(t, 7, entry.Quantity)
}

func TestCartUpdateQuantityMissingEntryIsNoop(t *testing.T) {
	setupDB(t)
	repo := repositories.NewCartRepository()

	require.NoError(t, repo.UpdateQuantity("nope", 3))

	entries, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartRemoveAndClear(t *testing.T) {
	setupDB(t)
	repo := repositories.NewCartRepository()

	require.NoError(t, repo.Add("gummy-001", 1))
	require.NoError(t, repo.Add("candy-001", 1))

	require.NoError(t, repo.Remove("gummy-001"))
	entries, err := repo.All()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "candy-001", entries[0].ProductID)

	require.NoError(t, repo.Clear())
	entries, err = repo.All()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
