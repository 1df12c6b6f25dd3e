package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

type CommentOnArticleParams struct {
	ActorID   uuid.UUID
	ArticleID uuid.UUID
	Content   string
}

type CommentOnArticleService struct {
	users    domain.UserRepository
	articles domain.ArticleRepository
	comments domain.CommentRepository
}

func NewCommentOnArticleService(users domain.UserRepository, articles domain.ArticleRepository, comments domain.CommentRepository) *CommentOnArticleService {
	return &CommentOnArticleService{users: users, articles: articles, comments: comments}
}

// Exec 任何登录的用户都可以评论已审核的文章
func (s *CommentOnArticleService) Exec(ctx context.Context, params CommentOnArticleParams) (*domain.Comment, error) {
	const name = "发表评论"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return nil, err
	}

	op := Operation[domain.Comment]{
		Name:           name,
		MissingMessage: "文章不存在",
		Load: func(ctx context.Context) (*domain.Comment, error) {
			content := strings.TrimSpace(params.Content)
			if content == "" {
				return nil, domain.NewBadRequestError("评论内容不能为空")
			}

			article, err := s.articles.FindByID(ctx, params.ArticleID)
			if err != nil {
				return nil, err
			}
			if article == nil || !article.Approved {
				return nil, nil
			}

			return domain.NewComment(actor.ID, &article.ID, content), nil
		},
		Persist: s.comments.Save,
	}

	return op.Run(ctx, actor.Role)
}

type DeleteCommentParams struct {
	ActorID   uuid.UUID
	CommentID uuid.UUID
}

type DeleteCommentService struct {
	users    domain.UserRepository
	comments domain.CommentRepository
}

func NewDeleteCommentService(users domain.UserRepository, comments domain.CommentRepository) *DeleteCommentService {
	return &DeleteCommentService{users: users, comments: comments}
}

// Exec 评论不存在时返回 BadRequest
func (s *DeleteCommentService) Exec(ctx context.Context, params DeleteCommentParams) error {
	const name = "删除评论"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return err
	}

	op := Operation[domain.Comment]{
		Name:           name,
		Permission:     domain.PermDeleteComment,
		Missing:        MissingIsBadRequest,
		MissingMessage: "评论不存在",
		Load:           findBy(s.comments.FindByID, params.CommentID),
		Persist:        deleteWith(s.comments.Delete),
	}

	_, err = op.Run(ctx, actor.Role)
	return err
}

type ToggleCommentVisibilityParams struct {
	ActorID   uuid.UUID
	CommentID uuid.UUID
}

type ToggleCommentVisibilityService struct {
	users    domain.UserRepository
	comments domain.CommentRepository
}

func NewToggleCommentVisibilityService(users domain.UserRepository, comments domain.CommentRepository) *ToggleCommentVisibilityService {
	return &ToggleCommentVisibilityService{users: users, comments: comments}
}

func (s *ToggleCommentVisibilityService) Exec(ctx context.Context, params ToggleCommentVisibilityParams) (*domain.Comment, error) {
	const name = "切换评论可见性"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return nil, err
	}

	op := Operation[domain.Comment]{
		Name:           name,
		Permission:     domain.PermInactivateComment,
		MissingMessage: "评论不存在",
		Load:           findBy(s.comments.FindByID, params.CommentID),
		Transition: func(comment *domain.Comment) error {
			comment.ToggleVisibility()
			return nil
		},
		Persist: s.comments.Save,
	}

	return op.Run(ctx, actor.Role)
}

type FetchManyCommentsParams struct {
	ActorID         *uuid.UUID
	ArticleID       *uuid.UUID
	IncludeInactive bool
	domain.PageQuery
}

type FetchManyCommentsService struct {
	users    domain.UserRepository
	comments domain.CommentRepository
}

func NewFetchManyCommentsService(users domain.UserRepository, comments domain.CommentRepository) *FetchManyCommentsService {
	return &FetchManyCommentsService{users: users, comments: comments}
}

// Exec 查看被隐藏的评论需要 InactivateComment 权限
func (s *FetchManyCommentsService) Exec(ctx context.Context, params FetchManyCommentsParams) (*domain.Paginated[domain.Comment], error) {
	const name = "获取评论列表"

	if params.IncludeInactive {
		if params.ActorID == nil {
			return nil, domain.ErrUnauthorized
		}
		actor, err := resolveActor(ctx, s.users, *params.ActorID, name)
		if err != nil {
			return nil, err
		}
		if !domain.Authorize(actor.Role, domain.PermInactivateComment) {
			return nil, domain.ErrUnauthorized
		}
	}

	filter := domain.CommentFilter{
		ArticleID:       params.ArticleID,
		IncludeInactive: params.IncludeInactive,
	}

	return fetchPage(ctx, name, s.comments.FindMany, filter, params.PageQuery)
}

type FetchManyCommentsWithAuthorParams struct {
	ArticleID *uuid.UUID
	domain.PageQuery
}

type FetchManyCommentsWithAuthorService struct {
	comments domain.CommentRepository
}

func NewFetchManyCommentsWithAuthorService(comments domain.CommentRepository) *FetchManyCommentsWithAuthorService {
	return &FetchManyCommentsWithAuthorService{comments: comments}
}

// Exec 只返回可见的评论，不需要登录
func (s *FetchManyCommentsWithAuthorService) Exec(ctx context.Context, params FetchManyCommentsWithAuthorParams) (*domain.Paginated[domain.CommentWithAuthor], error) {
	filter := domain.CommentFilter{ArticleID: params.ArticleID}
	return fetchPage(ctx, "获取评论及作者列表", s.comments.FindManyWithAuthor, filter, params.PageQuery)
}
