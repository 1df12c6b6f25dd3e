package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

const articleColumns = "id, author_id, title, content, cover_url, tag_id, slug, approved, created_at, updated_at"

type ArticleRepository struct {
	*Repository
}

func NewArticleRepository(r *Repository) *ArticleRepository {
	return &ArticleRepository{Repository: r}
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	a := &domain.Article{}
	dst := []any{&a.ID, &a.AuthorID, &a.Title, &a.Content, &a.CoverURL, &a.TagID, &a.Slug, &a.Approved, &a.CreatedAt, &a.UpdatedAt}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	return findOne(ctx, r.Repository, "SELECT "+articleColumns+" FROM articles WHERE id = $1", scanArticle, id)
}

func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return findOne(ctx, r.Repository, "SELECT "+articleColumns+" FROM articles WHERE slug = $1", scanArticle, slug)
}

func (r *ArticleRepository) Save(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	query := `
		INSERT INTO articles (id, author_id, title, content, cover_url, tag_id, slug, approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			cover_url = EXCLUDED.cover_url,
			tag_id = EXCLUDED.tag_id,
			slug = EXCLUDED.slug,
			approved = EXCLUDED.approved,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + articleColumns

	args := []any{a.ID, a.AuthorID, a.Title, a.Content, a.CoverURL, a.TagID, a.Slug, a.Approved, a.CreatedAt, a.UpdatedAt}
	return findOne(ctx, r.Repository, query, scanArticle, args...)
}

func (r *ArticleRepository) Delete(ctx context.Context, a *domain.Article) error {
	return r.exec(ctx, "DELETE FROM articles WHERE id = $1", a.ID)
}

func (r *ArticleRepository) FindMany(ctx context.Context, filter domain.ArticleFilter, params domain.PaginationParameters) ([]domain.Article, uint64, error) {
	q := pageQuery{
		columns: articleColumns,
		from:    "articles",
		orderBy: "created_at DESC",
	}
	if filter.OnlyApproved {
		q.where.addRaw("approved")
	}
	if filter.AuthorID != nil {
		q.where.add("author_id = $%d", *filter.AuthorID)
	}
	if filter.TagID != nil {
		q.where.add("tag_id = $%d", *filter.TagID)
	}
	q.where.addQuery("title", params.Query)

	return findPage(ctx, r.Repository, q, params, func(row rowScanner) (domain.Article, error) {
		a, err := scanArticle(row)
		if err != nil {
			return domain.Article{}, err
		}
		return *a, nil
	})
}
