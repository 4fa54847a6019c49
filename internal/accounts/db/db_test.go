package db_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goaccounts/internal/accounts/config"
	"goaccounts/internal/accounts/db"
)

func TestSourceURL(t *testing.T) {
	abs, err := db.SourceURL("/srv/migrations/accounts")
	require.NoError(t, err)
	assert.Equal(t, "file:///srv/migrations/accounts", abs)

	rel, err := db.SourceURL("migrations/accounts")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "file:///"))
	assert.True(t, strings.HasSuffix(rel, filepath.Join("migrations", "accounts")))
}

func TestNewUnreachableDatabase(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	database, err := db.New(ctx, &config.PostgresConfig{
		Host:            "127.0.0.1",
		Port:            1,
		User:            "postgres",
		Password:        "postgres",
		Database:        "accounts",
		ConnectAttempts: 1,
		MigrationsPath:  "migrations/accounts",
	})

	assert.Nil(t, database)
	require.Error(t, err)
	assert.Contains(t, err.Error(), db.ErrDBConnection)
}
