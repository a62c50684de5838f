package repository

import (
	"context"
	"errors"

	"github.com/vaughan-dsouza/posts-api/internal/models"
)

// ErrPostNotFound is returned when no row matches the requested id.
var ErrPostNotFound = errors.New("post not found")

// PostRepository is the persistence contract of the posts resource.
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	// Create inserts post and sets its ID.
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id int64, u models.PostUpdate) error
	Delete(ctx context.Context, id int64) error
}
