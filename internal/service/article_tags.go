package service

import (
	"context"
	"strings"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

type CreateArticleTagParams struct {
	StaffRole *domain.Role
	Value     string
}

type CreateArticleTagService struct {
	tags domain.ArticleTagRepository
}

func NewCreateArticleTagService(tags domain.ArticleTagRepository) *CreateArticleTagService {
	return &CreateArticleTagService{tags: tags}
}

func (s *CreateArticleTagService) Exec(ctx context.Context, params CreateArticleTagParams) (*domain.ArticleTag, error) {
	op := Operation[domain.ArticleTag]{
		Name:       "创建文章标签",
		Permission: domain.PermCreateArticleTag,
		Load: func(ctx context.Context) (*domain.ArticleTag, error) {
			value := strings.TrimSpace(params.Value)
			if value == "" {
				return nil, domain.NewBadRequestError("标签名称不能为空")
			}
			if err := checkArticleTagUnique(ctx, s.tags, 0, value); err != nil {
				return nil, err
			}
			return &domain.ArticleTag{Value: value}, nil
		},
		Persist: s.tags.Save,
	}

	return op.Run(ctx, params.StaffRole)
}

type UpdateArticleTagParams struct {
	StaffRole *domain.Role
	TagID     int32
	Value     string
}

type UpdateArticleTagService struct {
	tags domain.ArticleTagRepository
}

func NewUpdateArticleTagService(tags domain.ArticleTagRepository) *UpdateArticleTagService {
	return &UpdateArticleTagService{tags: tags}
}

func (s *UpdateArticleTagService) Exec(ctx context.Context, params UpdateArticleTagParams) (*domain.ArticleTag, error) {
	op := Operation[domain.ArticleTag]{
		Name:           "更新文章标签",
		Permission:     domain.PermUpdateArticleTag,
		MissingMessage: "文章标签不存在",
		Load: func(ctx context.Context) (*domain.ArticleTag, error) {
			tag, err := s.tags.FindByID(ctx, params.TagID)
			if err != nil || tag == nil {
				return tag, err
			}
			if err := checkArticleTagUnique(ctx, s.tags, tag.ID, strings.TrimSpace(params.Value)); err != nil {
				return nil, err
			}
			return tag, nil
		},
		Transition: func(tag *domain.ArticleTag) error {
			value := strings.TrimSpace(params.Value)
			if value == "" {
				return domain.NewBadRequestError("标签名称不能为空")
			}
			tag.Value = value
			return nil
		},
		Persist: s.tags.Save,
	}

	return op.Run(ctx, params.StaffRole)
}

type DeleteArticleTagParams struct {
	StaffRole *domain.Role
	TagID     int32
}

type DeleteArticleTagService struct {
	tags domain.ArticleTagRepository
}

func NewDeleteArticleTagService(tags domain.ArticleTagRepository) *DeleteArticleTagService {
	return &DeleteArticleTagService{tags: tags}
}

// Exec 标签已经不存在时直接返回成功
func (s *DeleteArticleTagService) Exec(ctx context.Context, params DeleteArticleTagParams) error {
	op := Operation[domain.ArticleTag]{
		Name:       "删除文章标签",
		Permission: domain.PermDeleteArticleTag,
		Missing:    MissingIsNoop,
		Load:       findBy(s.tags.FindByID, params.TagID),
		Persist:    deleteWith(s.tags.Delete),
	}

	_, err := op.Run(ctx, params.StaffRole)
	return err
}

type FetchManyArticleTagsService struct {
	tags domain.ArticleTagRepository
}

func NewFetchManyArticleTagsService(tags domain.ArticleTagRepository) *FetchManyArticleTagsService {
	return &FetchManyArticleTagsService{tags: tags}
}

func (s *FetchManyArticleTagsService) Exec(ctx context.Context, query domain.PageQuery) (*domain.Paginated[domain.ArticleTag], error) {
	return fetchPage(ctx, "获取文章标签列表", s.tags.FindMany, domain.ArticleTagFilter{}, query)
}

// checkArticleTagUnique self 为正在修改的标签，新建时传 0
func checkArticleTagUnique(ctx context.Context, tags domain.ArticleTagRepository, self int32, value string) error {
	if value == "" {
		return nil
	}
	existing, err := tags.FindByValue(ctx, value)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return domain.NewBadRequestError("标签已存在")
	}
	return nil
}
