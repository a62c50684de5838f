package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/posts-api/internal/config"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "posts.db"),
		Pool:   config.PoolConfig{MaxIdleConns: 1},
	}
}

func TestConnectSQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := Connect(ctx, sqliteConfig(t))
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "sqlite", conn.DriverName())
	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)
	assert.NoError(t, Ping(ctx, conn.DB))
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := Connect(ctx, sqliteConfig(t))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, EnsureSchema(ctx, conn))
	require.NoError(t, EnsureSchema(ctx, conn))

	_, err = conn.ExecContext(ctx, `INSERT INTO posts (title, description) VALUES ('A', 'B')`)
	require.NoError(t, err)

	var status string
	require.NoError(t, conn.GetContext(ctx, &status, `SELECT status FROM posts WHERE id = 1`))
	assert.Equal(t, "pending", status)

	_, err = conn.ExecContext(ctx, `INSERT INTO posts (title, description, status) VALUES ('A', 'B', 'archived')`)
	assert.Error(t, err, "status check constraint")
}

func TestConnectRejectsBadConfig(t *testing.T) {
	ctx := context.Background()

	_, err := Connect(ctx, config.DatabaseConfig{Driver: "mysql", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported driver")

	_, err = Connect(ctx, config.DatabaseConfig{Driver: config.DriverPostgres, DSN: "postgres://%zz"})
	assert.ErrorContains(t, err, "failed to parse DSN")
}

func TestOpenGormMigratesPosts(t *testing.T) {
	gdb, err := OpenGorm(context.Background(), sqliteConfig(t), nil)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, gdb.Migrator().HasTable("posts"))
	assert.True(t, gdb.Migrator().HasColumn("posts", "updated_on"))
}
