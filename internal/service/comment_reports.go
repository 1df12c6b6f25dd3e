package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

type CreateCommentReportParams struct {
	ActorID   uuid.UUID
	CommentID uuid.UUID
	Content   string
}

// CreateCommentReportResult 附带被举报的评论和评论作者，传输层用它通知评论作者
type CreateCommentReportResult struct {
	Report        *domain.CommentReport
	Comment       *domain.Comment
	CommentAuthor *domain.User
}

type CreateCommentReportService struct {
	users    domain.UserRepository
	comments domain.CommentRepository
	reports  domain.CommentReportRepository
}

func NewCreateCommentReportService(users domain.UserRepository, comments domain.CommentRepository, reports domain.CommentReportRepository) *CreateCommentReportService {
	return &CreateCommentReportService{users: users, comments: comments, reports: reports}
}

func (s *CreateCommentReportService) Exec(ctx context.Context, params CreateCommentReportParams) (*CreateCommentReportResult, error) {
	const name = "举报评论"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return nil, err
	}

	result := &CreateCommentReportResult{}

	op := Operation[domain.CommentReport]{
		Name:           name,
		MissingMessage: "评论不存在",
		Load: func(ctx context.Context) (*domain.CommentReport, error) {
			content := strings.TrimSpace(params.Content)
			if content == "" {
				return nil, domain.NewBadRequestError("举报理由不能为空")
			}

			comment, err := s.comments.FindByID(ctx, params.CommentID)
			if err != nil || comment == nil {
				return nil, err
			}

			author, err := s.users.FindByID(ctx, comment.AuthorID)
			if err != nil {
				return nil, err
			}

			result.Comment = comment
			result.CommentAuthor = author

			return domain.NewCommentReport(comment.ID, actor.ID, content), nil
		},
		Persist: s.reports.Save,
	}

	report, err := op.Run(ctx, actor.Role)
	if err != nil {
		return nil, err
	}
	result.Report = report

	return result, nil
}

type SolveCommentReportParams struct {
	ActorID  uuid.UUID
	ReportID int32
}

type SolveCommentReportService struct {
	users   domain.UserRepository
	reports domain.CommentReportRepository
}

func NewSolveCommentReportService(users domain.UserRepository, reports domain.CommentReportRepository) *SolveCommentReportService {
	return &SolveCommentReportService{users: users, reports: reports}
}

// Exec 记录处理举报的用户，同一个举报只能处理一次
func (s *SolveCommentReportService) Exec(ctx context.Context, params SolveCommentReportParams) (*domain.CommentReport, error) {
	const name = "处理举报"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return nil, err
	}

	op := Operation[domain.CommentReport]{
		Name:           name,
		Permission:     domain.PermSolveReport,
		MissingMessage: "举报不存在",
		Load:           findBy(s.reports.FindByID, params.ReportID),
		Transition: func(report *domain.CommentReport) error {
			if report.Solved() {
				return domain.NewBadRequestError("该举报已经处理过")
			}
			solver := actor.ID
			report.SolvedBy = &solver
			return nil
		},
		Persist: s.reports.Save,
	}

	return op.Run(ctx, actor.Role)
}

type DeleteCommentReportParams struct {
	StaffRole *domain.Role
	ReportID  int32
}

type DeleteCommentReportService struct {
	reports domain.CommentReportRepository
}

func NewDeleteCommentReportService(reports domain.CommentReportRepository) *DeleteCommentReportService {
	return &DeleteCommentReportService{reports: reports}
}

// Exec 举报不存在时返回 BadRequest
func (s *DeleteCommentReportService) Exec(ctx context.Context, params DeleteCommentReportParams) error {
	op := Operation[domain.CommentReport]{
		Name:           "删除举报",
		Permission:     domain.PermDeleteReport,
		Missing:        MissingIsBadRequest,
		MissingMessage: "举报不存在",
		Load:           findBy(s.reports.FindByID, params.ReportID),
		Persist:        deleteWith(s.reports.Delete),
	}

	_, err := op.Run(ctx, params.StaffRole)
	return err
}

type FetchManyCommentReportsParams struct {
	StaffRole *domain.Role
	Solved    *bool
	domain.PageQuery
}

type FetchManyCommentReportsService struct {
	reports domain.CommentReportRepository
}

func NewFetchManyCommentReportsService(reports domain.CommentReportRepository) *FetchManyCommentReportsService {
	return &FetchManyCommentReportsService{reports: reports}
}

func (s *FetchManyCommentReportsService) Exec(ctx context.Context, params FetchManyCommentReportsParams) (*domain.Paginated[domain.CommentReport], error) {
	if !domain.Authorize(params.StaffRole, domain.PermSolveReport) {
		return nil, domain.ErrUnauthorized
	}

	filter := domain.CommentReportFilter{Solved: params.Solved}
	return fetchPage(ctx, "获取举报列表", s.reports.FindMany, filter, params.PageQuery)
}
