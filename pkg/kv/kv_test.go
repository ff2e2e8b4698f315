package kv_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/ameya/pkg/database"
	"github.com/shashiranjanraj/ameya/pkg/kv"
)

func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&kv.Record{}))
	database.DB = db
}

func TestGetMissingKey(t *testing.T) {
	setupDB(t)

	var out string
	ok, err := kv.Get("nope", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetGetRoundTrip(t *testing.T) {
	setupDB(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, kv.Set("test:key", payload{Name: "あめや", Count: 3}))

	var out payload
	ok, err := kv.Get("test:key", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "あめや", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestSetOverwrites(t *testing.T) {
	setupDB(t)

	require.NoError(t, kv.Set("test:key", 1))
	require.NoError(t, kv.Set("test:key", 2))

	var out int
	ok, err := kv.Get("test:key", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, out)
}

func TestDelIsIdempotent(t *testing.T) {
	setupDB(t)

	require.NoError(t, kv.Set("test:key", "v"))
	require.NoError(t, kv.Del("test:key"))
	require.NoError(t, kv.Del("test:key"))

	var out string
	ok, err := kv.Get("test:key", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}
