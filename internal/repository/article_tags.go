package repository

import (
	"context"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

type ArticleTagRepository struct {
	*Repository
}

func NewArticleTagRepository(r *Repository) *ArticleTagRepository {
	return &ArticleTagRepository{Repository: r}
}

func scanArticleTag(row rowScanner) (*domain.ArticleTag, error) {
	tag := &domain.ArticleTag{}
	if err := row.Scan(&tag.ID, &tag.Value); err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *ArticleTagRepository) FindByID(ctx context.Context, id int32) (*domain.ArticleTag, error) {
	return findOne(ctx, r.Repository, "SELECT id, value FROM article_tags WHERE id = $1", scanArticleTag, id)
}

func (r *ArticleTagRepository) FindByValue(ctx context.Context, value string) (*domain.ArticleTag, error) {
	return findOne(ctx, r.Repository, "SELECT id, value FROM article_tags WHERE value = $1", scanArticleTag, value)
}

func (r *ArticleTagRepository) Save(ctx context.Context, tag *domain.ArticleTag) (*domain.ArticleTag, error) {
	if tag.ID == 0 {
		return findOne(ctx, r.Repository, "INSERT INTO article_tags (value) VALUES ($1) RETURNING id, value", scanArticleTag, tag.Value)
	}

	query := `
		INSERT INTO article_tags (id, value) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value
		RETURNING id, value
	`
	return findOne(ctx, r.Repository, query, scanArticleTag, tag.ID, tag.Value)
}

// Delete 文章的 tag_id 由外键 ON DELETE SET NULL 处理
func (r *ArticleTagRepository) Delete(ctx context.Context, tag *domain.ArticleTag) error {
	return r.exec(ctx, "DELETE FROM article_tags WHERE id = $1", tag.ID)
}

func (r *ArticleTagRepository) FindMany(ctx context.Context, filter domain.ArticleTagFilter, params domain.PaginationParameters) ([]domain.ArticleTag, uint64, error) {
	q := pageQuery{
		columns: "id, value",
		from:    "article_tags",
		orderBy: "id ASC",
	}
	q.where.addQuery("value", params.Query)

	return findPage(ctx, r.Repository, q, params, func(row rowScanner) (domain.ArticleTag, error) {
		tag, err := scanArticleTag(row)
		if err != nil {
			return domain.ArticleTag{}, err
		}
		return *tag, nil
	})
}
