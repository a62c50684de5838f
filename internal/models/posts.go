package models

import "time"

// Status is the moderation state of a post.
type Status string

const (
	StatusActive     Status = "active"
	StatusPending    Status = "pending"
	StatusBlocked    Status = "blocked"
	StatusDeactivate Status = "deactivate"
)

// Statuses lists every accepted status.
var Statuses = []Status{StatusActive, StatusPending, StatusBlocked, StatusDeactivate}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Post is a row of the posts table. The same struct is scanned by sqlx and
// mapped by gorm.
type Post struct {
	ID          int64      `db:"id" json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `db:"title" json:"title" gorm:"size:255;not null"`
	Description string     `db:"description" json:"description" gorm:"size:255;not null"`
	Status      Status     `db:"status" json:"status" gorm:"size:32;not null;default:pending"`
	CreatedBy   *string    `db:"created_by" json:"created_by,omitempty" gorm:"size:255"`
	CreatedOn   time.Time  `db:"created_on" json:"created_on" gorm:"not null"`
	UpdatedBy   *string    `db:"updated_by" json:"updated_by,omitempty" gorm:"size:255"`
	UpdatedOn   *time.Time `db:"updated_on" json:"updated_on,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// CreatePostInput is the body of a create request. Pointers tell a missing
// field apart from an empty one.
type CreatePostInput struct {
	Title       *string `json:"title" validate:"required,min=1"`
	Description *string `json:"description" validate:"required,min=1"`
	CreatedBy   *string `json:"created_by"`
}

// UpdatePostInput is the body of an update request; every field is optional.
type UpdatePostInput struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Status      *string `json:"status" validate:"omitnil,post_status"`
	UpdatedBy   *string `json:"updated_by"`
}

// PostUpdate is the column change set written by an update. Nil fields are
// left untouched; UpdatedOn is always written.
type PostUpdate struct {
	Title       *string
	Description *string
	Status      *Status
	UpdatedBy   *string
	UpdatedOn   time.Time
}

// ToUpdate turns a validated request into a change set stamped with now.
func (in UpdatePostInput) ToUpdate(now time.Time) PostUpdate {
	u := PostUpdate{
		Title:       in.Title,
		Description: in.Description,
		UpdatedBy:   in.UpdatedBy,
		UpdatedOn:   now,
	}
	if in.Status != nil {
		s := Status(*in.Status)
		u.Status = &s
	}
	return u
}

// NewPost builds a pending post from a validated create request.
func (in CreatePostInput) NewPost(now time.Time) Post {
	p := Post{
		Status:    StatusPending,
		CreatedBy: in.CreatedBy,
		CreatedOn: now,
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	return p
}
