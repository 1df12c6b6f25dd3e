package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecentArticleWindow 内发布的文章在首页上被视为最新文章
const RecentArticleWindow = 48 * time.Hour

type Article struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  uuid.UUID  `json:"authorId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CoverURL  string     `json:"coverUrl"`
	TagID     *int32     `json:"tagId"`
	Slug      string     `json:"slug"`
	Approved  bool       `json:"approved"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func NewArticle(authorID uuid.UUID, title, content, coverURL string, tagID *int32, slug string) *Article {
	return &Article{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		CoverURL:  coverURL,
		TagID:     tagID,
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}
}

// IsRecent 按整小时计算，不足一小时的部分舍去
func (a *Article) IsRecent(now time.Time) bool {
	return now.Sub(a.CreatedAt).Truncate(time.Hour) <= RecentArticleWindow
}

func (a *Article) Touch() {
	now := time.Now().UTC()
	a.UpdatedAt = &now
}

// ExpandedArticle 附带作者和标签信息
type ExpandedArticle struct {
	Article
	Author PublicUser  `json:"author"`
	Tag    *ArticleTag `json:"tag"`
}

type ArticleFilter struct {
	AuthorID     *uuid.UUID
	TagID        *int32
	OnlyApproved bool
}
