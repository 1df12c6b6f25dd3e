package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/utils"
)

// 生成唯一 slug 时最多尝试的次数，超过后直接追加随机后缀
const maxSlugAttempts = 5

type CreateArticleParams struct {
	ActorID  uuid.UUID
	Title    string
	Content  string
	CoverURL string
	TagID    *int32
}

type CreateArticleService struct {
	users    domain.UserRepository
	articles domain.ArticleRepository
	tags     domain.ArticleTagRepository
}

func NewCreateArticleService(users domain.UserRepository, articles domain.ArticleRepository, tags domain.ArticleTagRepository) *CreateArticleService {
	return &CreateArticleService{users: users, articles: articles, tags: tags}
}

// Exec 新建的文章处于未审核状态
func (s *CreateArticleService) Exec(ctx context.Context, params CreateArticleParams) (*domain.Article, error) {
	const name = "创建文章"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return nil, err
	}

	op := Operation[domain.Article]{
		Name:       name,
		Permission: domain.PermCreateArticle,
		Load: func(ctx context.Context) (*domain.Article, error) {
			title := strings.TrimSpace(params.Title)
			if title == "" || strings.TrimSpace(params.Content) == "" {
				return nil, domain.NewBadRequestError("标题和内容不能为空")
			}

			if err := checkTagExists(ctx, s.tags, params.TagID); err != nil {
				return nil, err
			}

			slug, err := uniqueSlug(ctx, s.articles, title, nil)
			if err != nil {
				return nil, err
			}

			return domain.NewArticle(actor.ID, title, params.Content, params.CoverURL, params.TagID, slug), nil
		},
		Persist: s.articles.Save,
	}

	return op.Run(ctx, actor.Role)
}

type UpdateArticleParams struct {
	ActorID   uuid.UUID
	ArticleID uuid.UUID
	Title     *string
	Content   *string
	CoverURL  *string
	TagID     *int32
	Approved  *bool
}

type UpdateArticleService struct {
	users    domain.UserRepository
	articles domain.ArticleRepository
	tags     domain.ArticleTagRepository
}

func NewUpdateArticleService(users domain.UserRepository, articles domain.ArticleRepository, tags domain.ArticleTagRepository) *UpdateArticleService {
	return &UpdateArticleService{users: users, articles: articles, tags: tags}
}

// Exec 修改文章需要 UpdateArticle 权限，审核通过和撤回审核还分别需要 ApproveArticle 和 DisapproveArticle
func (s *UpdateArticleService) Exec(ctx context.Context, params UpdateArticleParams) (*domain.Article, error) {
	const name = "更新文章"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return nil, err
	}

	if params.Approved != nil {
		required := domain.PermDisapproveArticle
		if *params.Approved {
			required = domain.PermApproveArticle
		}
		if !domain.Authorize(actor.Role, required) {
			return nil, domain.ErrUnauthorized
		}
	}

	var newSlug string

	op := Operation[domain.Article]{
		Name:           name,
		Permission:     domain.PermUpdateArticle,
		MissingMessage: "文章不存在",
		Load: func(ctx context.Context) (*domain.Article, error) {
			article, err := s.articles.FindByID(ctx, params.ArticleID)
			if err != nil || article == nil {
				return article, err
			}

			if params.TagID != nil {
				if err := checkTagExists(ctx, s.tags, params.TagID); err != nil {
					return nil, err
				}
			}

			if params.Title != nil && strings.TrimSpace(*params.Title) != article.Title {
				newSlug, err = uniqueSlug(ctx, s.articles, strings.TrimSpace(*params.Title), &article.ID)
				if err != nil {
					return nil, err
				}
			}

			return article, nil
		},
		Transition: func(article *domain.Article) error {
			if params.Title != nil {
				title := strings.TrimSpace(*params.Title)
				if title == "" {
					return domain.NewBadRequestError("标题不能为空")
				}
				article.Title = title
				if newSlug != "" {
					article.Slug = newSlug
				}
			}
			if params.Content != nil {
				if strings.TrimSpace(*params.Content) == "" {
					return domain.NewBadRequestError("内容不能为空")
				}
				article.Content = *params.Content
			}
			if params.CoverURL != nil {
				article.CoverURL = *params.CoverURL
			}
			if params.TagID != nil {
				tagID := *params.TagID
				article.TagID = &tagID
			}
			if params.Approved != nil {
				article.Approved = *params.Approved
			}
			article.Touch()
			return nil
		},
		Persist: s.articles.Save,
	}

	return op.Run(ctx, actor.Role)
}

type DeleteArticleParams struct {
	ActorID   uuid.UUID
	ArticleID uuid.UUID
}

type DeleteArticleService struct {
	users    domain.UserRepository
	articles domain.ArticleRepository
}

func NewDeleteArticleService(users domain.UserRepository, articles domain.ArticleRepository) *DeleteArticleService {
	return &DeleteArticleService{users: users, articles: articles}
}

func (s *DeleteArticleService) Exec(ctx context.Context, params DeleteArticleParams) error {
	const name = "删除文章"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return err
	}

	op := Operation[domain.Article]{
		Name:           name,
		Permission:     domain.PermDeleteArticle,
		MissingMessage: "文章不存在",
		Load:           findBy(s.articles.FindByID, params.ArticleID),
		Persist:        deleteWith(s.articles.Delete),
	}

	_, err = op.Run(ctx, actor.Role)
	return err
}

type FetchManyArticlesParams struct {
	// ActorID 为空表示匿名访问
	ActorID           *uuid.UUID
	AuthorID          *uuid.UUID
	TagID             *int32
	IncludeUnapproved bool
	domain.PageQuery
}

type FetchManyArticlesService struct {
	users    domain.UserRepository
	articles domain.ArticleRepository
}

func NewFetchManyArticlesService(users domain.UserRepository, articles domain.ArticleRepository) *FetchManyArticlesService {
	return &FetchManyArticlesService{users: users, articles: articles}
}

// Exec 默认只返回已审核的文章，查看未审核的文章需要 UpdateArticle 权限
func (s *FetchManyArticlesService) Exec(ctx context.Context, params FetchManyArticlesParams) (*domain.Paginated[domain.Article], error) {
	const name = "获取文章列表"

	if params.IncludeUnapproved {
		if params.ActorID == nil {
			return nil, domain.ErrUnauthorized
		}
		actor, err := resolveActor(ctx, s.users, *params.ActorID, name)
		if err != nil {
			return nil, err
		}
		if !domain.Authorize(actor.Role, domain.PermUpdateArticle) {
			return nil, domain.ErrUnauthorized
		}
	}

	filter := domain.ArticleFilter{
		AuthorID:     params.AuthorID,
		TagID:        params.TagID,
		OnlyApproved: !params.IncludeUnapproved,
	}

	return fetchPage(ctx, name, s.articles.FindMany, filter, params.PageQuery)
}

type FetchHomePageArticlesParams struct {
	TagID *int32
	domain.PageQuery
}

// HomePageArticles 把当前页的文章分为最新文章和其他文章
type HomePageArticles struct {
	Pagination domain.PaginationResponse `json:"pagination"`
	Recent     []domain.Article          `json:"recent"`
	Others     []domain.Article          `json:"others"`
}

type FetchHomePageArticlesService struct {
	articles domain.ArticleRepository
	now      func() time.Time
}

func NewFetchHomePageArticlesService(articles domain.ArticleRepository) *FetchHomePageArticlesService {
	return &FetchHomePageArticlesService{articles: articles, now: time.Now}
}

func (s *FetchHomePageArticlesService) Exec(ctx context.Context, params FetchHomePageArticlesParams) (*HomePageArticles, error) {
	filter := domain.ArticleFilter{
		TagID:        params.TagID,
		OnlyApproved: true,
	}

	page, err := fetchPage(ctx, "获取首页文章", s.articles.FindMany, filter, params.PageQuery)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &HomePageArticles{
		Pagination: page.Pagination,
		Recent:     make([]domain.Article, 0),
		Others:     make([]domain.Article, 0),
	}
	for _, article := range page.Data {
		if article.IsRecent(now) {
			result.Recent = append(result.Recent, article)
		} else {
			result.Others = append(result.Others, article)
		}
	}

	return result, nil
}

type GetExpandedArticleParams struct {
	ActorID *uuid.UUID
	Slug    string
}

type GetExpandedArticleService struct {
	users    domain.UserRepository
	articles domain.ArticleRepository
	tags     domain.ArticleTagRepository
}

func NewGetExpandedArticleService(users domain.UserRepository, articles domain.ArticleRepository, tags domain.ArticleTagRepository) *GetExpandedArticleService {
	return &GetExpandedArticleService{users: users, articles: articles, tags: tags}
}

// Exec 未审核的文章只对作者和拥有 UpdateArticle 权限的用户可见，对其他人表现为不存在
func (s *GetExpandedArticleService) Exec(ctx context.Context, params GetExpandedArticleParams) (*domain.ExpandedArticle, error) {
	const name = "获取文章详情"

	var actor *domain.User
	if params.ActorID != nil {
		var err error
		actor, err = resolveActor(ctx, s.users, *params.ActorID, name)
		if err != nil {
			return nil, err
		}
	}

	op := Operation[domain.ExpandedArticle]{
		Name:           name,
		MissingMessage: "文章不存在",
		Load: func(ctx context.Context) (*domain.ExpandedArticle, error) {
			article, err := s.articles.FindBySlug(ctx, params.Slug)
			if err != nil || article == nil {
				return nil, err
			}
			if !article.Approved && !canSeeUnapproved(actor, article) {
				return nil, nil
			}

			author, err := s.users.FindByID(ctx, article.AuthorID)
			if err != nil {
				return nil, err
			}
			if author == nil {
				return nil, fmt.Errorf("文章 %s 的作者 %s 不存在", article.ID, article.AuthorID)
			}

			expanded := &domain.ExpandedArticle{
				Article: *article,
				Author:  author.Public(),
			}

			if article.TagID != nil {
				expanded.Tag, err = s.tags.FindByID(ctx, *article.TagID)
				if err != nil {
					return nil, err
				}
			}

			return expanded, nil
		},
	}

	return op.Run(ctx, nil)
}

func canSeeUnapproved(actor *domain.User, article *domain.Article) bool {
	if actor == nil {
		return false
	}
	return actor.ID == article.AuthorID || domain.Authorize(actor.Role, domain.PermUpdateArticle)
}

func checkTagExists(ctx context.Context, tags domain.ArticleTagRepository, tagID *int32) error {
	if tagID == nil {
		return nil
	}
	tag, err := tags.FindByID(ctx, *tagID)
	if err != nil {
		return err
	}
	if tag == nil {
		return domain.NewBadRequestError("文章标签不存在")
	}
	return nil
}

// uniqueSlug 根据标题生成其他文章没有使用过的 slug，self 为正在修改的文章
func uniqueSlug(ctx context.Context, articles domain.ArticleRepository, title string, self *uuid.UUID) (string, error) {
	base := utils.GenerateSlug(title)
	if base == "" {
		base = "article"
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		existing, err := articles.FindBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil || (self != nil && existing.ID == *self) {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}
