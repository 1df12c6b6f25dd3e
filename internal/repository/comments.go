package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

const commentColumns = "c.id, c.author_id, c.article_id, c.content, c.is_active, c.created_at"

type CommentRepository struct {
	*Repository
}

func NewCommentRepository(r *Repository) *CommentRepository {
	return &CommentRepository{Repository: r}
}

// 数据库中用 is_active 保存可见性
func commentDst(c *domain.Comment, isActive *bool) []any {
	return []any{&c.ID, &c.AuthorID, &c.ArticleID, &c.Content, isActive, &c.CreatedAt}
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	c := &domain.Comment{}
	var isActive bool
	if err := row.Scan(commentDst(c, &isActive)...); err != nil {
		return nil, err
	}
	c.Visibility = domain.VisibilityFromActive(isActive)
	return c, nil
}

func scanCommentWithAuthor(row rowScanner) (domain.CommentWithAuthor, error) {
	cwa := domain.CommentWithAuthor{}
	var isActive bool
	var role sql.NullString

	dst := append(commentDst(&cwa.Comment, &isActive), &cwa.Author.ID, &cwa.Author.Name, &role)
	if err := row.Scan(dst...); err != nil {
		return domain.CommentWithAuthor{}, err
	}

	cwa.Visibility = domain.VisibilityFromActive(isActive)
	if r, ok := domain.ParseRole(role.String); role.Valid && ok {
		cwa.Author.Role = &r
	}
	return cwa, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return findOne(ctx, r.Repository, "SELECT "+commentColumns+" FROM comments c WHERE c.id = $1", scanComment, id)
}

func (r *CommentRepository) Save(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	query := `
		INSERT INTO comments AS c (id, author_id, article_id, content, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			is_active = EXCLUDED.is_active
		RETURNING ` + commentColumns

	args := []any{c.ID, c.AuthorID, c.ArticleID, c.Content, c.IsActive(), c.CreatedAt}
	return findOne(ctx, r.Repository, query, scanComment, args...)
}

func (r *CommentRepository) Delete(ctx context.Context, c *domain.Comment) error {
	return r.exec(ctx, "DELETE FROM comments WHERE id = $1", c.ID)
}

func commentPageQuery(filter domain.CommentFilter, params domain.PaginationParameters) pageQuery {
	q := pageQuery{
		columns: commentColumns,
		from:    "comments c",
		orderBy: "c.created_at ASC",
	}
	if !filter.IncludeInactive {
		q.where.addRaw("c.is_active")
	}
	if filter.ArticleID != nil {
		q.where.add("c.article_id = $%d", *filter.ArticleID)
	}
	q.where.addQuery("c.content", params.Query)
	return q
}

func (r *CommentRepository) FindMany(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParameters) ([]domain.Comment, uint64, error) {
	return findPage(ctx, r.Repository, commentPageQuery(filter, params), params, func(row rowScanner) (domain.Comment, error) {
		c, err := scanComment(row)
		if err != nil {
			return domain.Comment{}, err
		}
		return *c, nil
	})
}

func (r *CommentRepository) FindManyWithAuthor(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParameters) ([]domain.CommentWithAuthor, uint64, error) {
	q := commentPageQuery(filter, params)
	q.columns += ", u.id, u.name, u.role"
	q.from += " JOIN users u ON u.id = c.author_id"

	return findPage(ctx, r.Repository, q, params, scanCommentWithAuthor)
}
