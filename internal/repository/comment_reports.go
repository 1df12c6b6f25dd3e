package repository

import (
	"context"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

const commentReportColumns = "id, comment_id, user_id, content, solved_by, created_at"

type CommentReportRepository struct {
	*Repository
}

func NewCommentReportRepository(r *Repository) *CommentReportRepository {
	return &CommentReportRepository{Repository: r}
}

func scanCommentReport(row rowScanner) (*domain.CommentReport, error) {
	cr := &domain.CommentReport{}
	if err := row.Scan(&cr.ID, &cr.CommentID, &cr.UserID, &cr.Content, &cr.SolvedBy, &cr.CreatedAt); err != nil {
		return nil, err
	}
	return cr, nil
}

func (r *CommentReportRepository) FindByID(ctx context.Context, id int32) (*domain.CommentReport, error) {
	return findOne(ctx, r.Repository, "SELECT "+commentReportColumns+" FROM comment_reports WHERE id = $1", scanCommentReport, id)
}

// Save ID 为 0 时由数据库分配 ID
func (r *CommentReportRepository) Save(ctx context.Context, cr *domain.CommentReport) (*domain.CommentReport, error) {
	if cr.ID == 0 {
		query := `
			INSERT INTO comment_reports (comment_id, user_id, content, solved_by, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING ` + commentReportColumns
		return findOne(ctx, r.Repository, query, scanCommentReport, cr.CommentID, cr.UserID, cr.Content, cr.SolvedBy, cr.CreatedAt)
	}

	query := `
		INSERT INTO comment_reports (id, comment_id, user_id, content, solved_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			solved_by = EXCLUDED.solved_by
		RETURNING ` + commentReportColumns
	return findOne(ctx, r.Repository, query, scanCommentReport, cr.ID, cr.CommentID, cr.UserID, cr.Content, cr.SolvedBy, cr.CreatedAt)
}

func (r *CommentReportRepository) Delete(ctx context.Context, cr *domain.CommentReport) error {
	return r.exec(ctx, "DELETE FROM comment_reports WHERE id = $1", cr.ID)
}

func (r *CommentReportRepository) FindMany(ctx context.Context, filter domain.CommentReportFilter, params domain.PaginationParameters) ([]domain.CommentReport, uint64, error) {
	q := pageQuery{
		columns: commentReportColumns,
		from:    "comment_reports",
		orderBy: "created_at DESC",
	}
	if filter.Solved != nil {
		if *filter.Solved {
			q.where.addRaw("solved_by IS NOT NULL")
		} else {
			q.where.addRaw("solved_by IS NULL")
		}
	}
	q.where.addQuery("content", params.Query)

	return findPage(ctx, r.Repository, q, params, func(row rowScanner) (domain.CommentReport, error) {
		cr, err := scanCommentReport(row)
		if err != nil {
			return domain.CommentReport{}, err
		}
		return *cr, nil
	})
}
