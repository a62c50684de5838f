package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/posts-api/internal/models"
)

const postsTable = "posts"

var postColumns = []string{
	"id",
	"title",
	"description",
	"status",
	"created_by",
	"created_on",
	"updated_by",
	"updated_on",
}

// SQLPostRepository runs hand-built statements through sqlx. Statements are
// built with '?' placeholders and rebound for the driver in use.
type SQLPostRepository struct {
	DB *sqlx.DB
}

func NewSQLPostRepository(db *sqlx.DB) *SQLPostRepository {
	return &SQLPostRepository{DB: db}
}

func selectPosts() sq.SelectBuilder {
	return sq.Select(postColumns...).From(postsTable)
}

func buildInsert(p *models.Post) (string, []any, error) {
	return sq.Insert(postsTable).
		Columns("title", "description", "status", "created_by", "created_on").
		Values(p.Title, p.Description, string(p.Status), p.CreatedBy, p.CreatedOn).
		Suffix("RETURNING id").
		ToSql()
}

// buildUpdate writes only the supplied fields plus updated_on.
func buildUpdate(id int64, u models.PostUpdate) (string, []any, error) {
	b := sq.Update(postsTable)
	if u.Title != nil {
		b = b.Set("title", *u.Title)
	}
	if u.Description != nil {
		b = b.Set("description", *u.Description)
	}
	if u.Status != nil {
		b = b.Set("status", string(*u.Status))
	}
	if u.UpdatedBy != nil {
		b = b.Set("updated_by", *u.UpdatedBy)
	}
	return b.Set("updated_on", u.UpdatedOn).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDelete(id int64) (string, []any, error) {
	return sq.Delete(postsTable).Where(sq.Eq{"id": id}).ToSql()
}

func (r *SQLPostRepository) List(ctx context.Context) ([]models.Post, error) {
	query, args, err := selectPosts().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list posts: %w", err)
	}
	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, r.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *SQLPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query, args, err := selectPosts().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get post: %w", err)
	}
	var post models.Post
	if err := r.DB.GetContext(ctx, &post, r.DB.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

func (r *SQLPostRepository) Create(ctx context.Context, post *models.Post) error {
	query, args, err := buildInsert(post)
	if err != nil {
		return fmt.Errorf("build insert post: %w", err)
	}
	if err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(query), args...).Scan(&post.ID); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *SQLPostRepository) Update(ctx context.Context, id int64, u models.PostUpdate) error {
	query, args, err := buildUpdate(id, u)
	if err != nil {
		return fmt.Errorf("build update post: %w", err)
	}
	return r.execAffectingOne(ctx, "update", id, query, args)
}

func (r *SQLPostRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := buildDelete(id)
	if err != nil {
		return fmt.Errorf("build delete post: %w", err)
	}
	return r.execAffectingOne(ctx, "delete", id, query, args)
}

// execAffectingOne maps zero affected rows to ErrPostNotFound.
func (r *SQLPostRepository) execAffectingOne(ctx context.Context, op string, id int64, query string, args []any) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("%s post %d: %w", op, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s post %d: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}
