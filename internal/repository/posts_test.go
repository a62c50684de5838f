package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/posts-api/internal/config"
	"github.com/vaughan-dsouza/posts-api/internal/db"
	"github.com/vaughan-dsouza/posts-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "posts.db"),
	}
}

func newSQLRepo(t *testing.T) PostRepository {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Connect(ctx, sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.EnsureSchema(ctx, conn))
	return NewSQLPostRepository(conn)
}

func newGormRepo(t *testing.T) PostRepository {
	t.Helper()
	gdb, err := db.OpenGorm(context.Background(), sqliteConfig(t), nil)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewGormPostRepository(gdb)
}

var stores = map[string]func(t *testing.T) PostRepository{
	"sql":  newSQLRepo,
	"gorm": newGormRepo,
}

func createPost(t *testing.T, repo PostRepository, title string) *models.Post {
	t.Helper()
	p := models.CreatePostInput{Title: ptr(title), Description: ptr("desc"), CreatedBy: ptr("alice")}.
		NewPost(time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, repo.Create(context.Background(), &p))
	return &p
}

func TestPostRepositories(t *testing.T) {
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("Should return an empty list", func(t *testing.T) {
				repo := open(t)
				posts, err := repo.List(ctx)
				require.NoError(t, err)
				assert.NotNil(t, posts)
				assert.Empty(t, posts)
			})

			t.Run("Should create and read back a post", func(t *testing.T) {
				repo := open(t)
				created := createPost(t, repo, "first")
				assert.Positive(t, created.ID)

				got, err := repo.GetByID(ctx, created.ID)
				require.NoError(t, err)
				assert.Equal(t, created.ID, got.ID)
				assert.Equal(t, "first", got.Title)
				assert.Equal(t, "desc", got.Description)
				assert.Equal(t, models.StatusPending, got.Status)
				require.NotNil(t, got.CreatedBy)
				assert.Equal(t, "alice", *got.CreatedBy)
				assert.WithinDuration(t, created.CreatedOn, got.CreatedOn, time.Millisecond)
				assert.Nil(t, got.UpdatedBy)
				assert.Nil(t, got.UpdatedOn)
			})

			t.Run("Should assign distinct ids", func(t *testing.T) {
				repo := open(t)
				a := createPost(t, repo, "a")
				b := createPost(t, repo, "b")
				assert.NotEqual(t, a.ID, b.ID)

				posts, err := repo.List(ctx)
				require.NoError(t, err)
				assert.Len(t, posts, 2)
			})

			t.Run("Should report missing posts", func(t *testing.T) {
				repo := open(t)
				_, err := repo.GetByID(ctx, 42)
				assert.ErrorIs(t, err, ErrPostNotFound)
				assert.ErrorIs(t, repo.Update(ctx, 42, models.PostUpdate{UpdatedOn: time.Now()}), ErrPostNotFound)
				assert.ErrorIs(t, repo.Delete(ctx, 42), ErrPostNotFound)
			})

			t.Run("Should update only supplied fields", func(t *testing.T) {
				repo := open(t)
				created := createPost(t, repo, "before")
				first := time.Now().UTC().Truncate(time.Millisecond)

				require.NoError(t, repo.Update(ctx, created.ID, models.PostUpdate{Title: ptr("after"), UpdatedOn: first}))
				got, err := repo.GetByID(ctx, created.ID)
				require.NoError(t, err)
				assert.Equal(t, "after", got.Title)
				assert.Equal(t, "desc", got.Description)
				assert.Equal(t, models.StatusPending, got.Status)
				require.NotNil(t, got.CreatedBy)
				assert.Equal(t, "alice", *got.CreatedBy)
				assert.WithinDuration(t, created.CreatedOn, got.CreatedOn, time.Millisecond)
				require.NotNil(t, got.UpdatedOn)
				assert.WithinDuration(t, first, *got.UpdatedOn, time.Millisecond)

				second := first.Add(time.Second)
				require.NoError(t, repo.Update(ctx, created.ID, models.PostUpdate{
					Status:    ptr(models.StatusBlocked),
					UpdatedBy: ptr("bob"),
					UpdatedOn: second,
				}))
				got, err = repo.GetByID(ctx, created.ID)
				require.NoError(t, err)
				assert.Equal(t, "after", got.Title)
				assert.Equal(t, models.StatusBlocked, got.Status)
				require.NotNil(t, got.UpdatedBy)
				assert.Equal(t, "bob", *got.UpdatedBy)
				assert.False(t, got.UpdatedOn.Before(first))
			})

			t.Run("Should delete once", func(t *testing.T) {
				repo := open(t)
				created := createPost(t, repo, "gone")
				require.NoError(t, repo.Delete(ctx, created.ID))
				assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrPostNotFound)
				_, err := repo.GetByID(ctx, created.ID)
				assert.ErrorIs(t, err, ErrPostNotFound)
			})
		})
	}
}

func TestSQLRepositoryNeverReusesIDs(t *testing.T) {
	ctx := context.Background()
	repo := newSQLRepo(t)
	first := createPost(t, repo, "one")
	require.NoError(t, repo.Delete(ctx, first.ID))

	second := createPost(t, repo, "two")
	assert.Greater(t, second.ID, first.ID)
}

func TestSQLStatementsAreParameterized(t *testing.T) {
	t.Run("Should only set supplied columns", func(t *testing.T) {
		now := time.Now()
		query, args, err := buildUpdate(7, models.PostUpdate{Title: ptr("x'; DROP TABLE posts; --"), UpdatedOn: now})
		require.NoError(t, err)
		assert.Equal(t, "UPDATE posts SET title = ?, updated_on = ? WHERE id = ?", query)
		assert.Equal(t, []any{"x'; DROP TABLE posts; --", now, int64(7)}, args)
		assert.Equal(t, "UPDATE posts SET title = $1, updated_on = $2 WHERE id = $3", sqlx.Rebind(sqlx.DOLLAR, query))
	})
	t.Run("Should insert with returning id", func(t *testing.T) {
		p := models.Post{Title: "A", Description: "B", Status: models.StatusPending}
		query, args, err := buildInsert(&p)
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO posts (title,description,status,created_by,created_on) VALUES (?,?,?,?,?) RETURNING id", query)
		assert.Len(t, args, 5)
	})
	t.Run("Should delete by id", func(t *testing.T) {
		query, args, err := buildDelete(3)
		require.NoError(t, err)
		assert.Equal(t, "DELETE FROM posts WHERE id = ?", query)
		assert.Equal(t, []any{int64(3)}, args)
	})
}
