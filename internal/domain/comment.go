package domain

import (
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityActive   Visibility = "active"
	VisibilityInactive Visibility = "inactive"
)

// Toggle 是 Visibility 唯一的状态转换，连续两次会回到原状态
func (v Visibility) Toggle() Visibility {
	if v == VisibilityActive {
		return VisibilityInactive
	}
	return VisibilityActive
}

func VisibilityFromActive(isActive bool) Visibility {
	if isActive {
		return VisibilityActive
	}
	return VisibilityInactive
}

type Comment struct {
	ID         uuid.UUID  `json:"id"`
	AuthorID   uuid.UUID  `json:"authorId"`
	ArticleID  *uuid.UUID `json:"articleId"`
	Content    string     `json:"content"`
	Visibility Visibility `json:"visibility"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func NewComment(authorID uuid.UUID, articleID *uuid.UUID, content string) *Comment {
	return &Comment{
		ID:         uuid.New(),
		AuthorID:   authorID,
		ArticleID:  articleID,
		Content:    content,
		Visibility: VisibilityActive,
		CreatedAt:  time.Now().UTC(),
	}
}

func (c *Comment) IsActive() bool {
	return c.Visibility == VisibilityActive
}

func (c *Comment) ToggleVisibility() {
	c.Visibility = c.Visibility.Toggle()
}

type CommentWithAuthor struct {
	Comment
	Author PublicUser `json:"author"`
}

type CommentFilter struct {
	ArticleID       *uuid.UUID
	IncludeInactive bool
}
