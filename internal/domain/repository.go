package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository 是每个实体的存储适配器都必须实现的基本能力，用例只依赖这些接口
//
// FindByID 在实体不存在时返回 (nil, nil)；Save 为 upsert 语义；
// Save 和 Delete 返回成功时修改必须已经持久化
type Repository[T any, ID comparable] interface {
	FindByID(ctx context.Context, id ID) (*T, error)
	Save(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, entity *T) error
}

// Lister 返回当前页的数据以及满足过滤条件的总数
type Lister[T any, F any] interface {
	FindMany(ctx context.Context, filter F, params PaginationParameters) ([]T, uint64, error)
}

type UserRepository interface {
	Repository[User, uuid.UUID]
	Lister[User, UserFilter]
	FindByName(ctx context.Context, name string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type ArticleRepository interface {
	Repository[Article, uuid.UUID]
	Lister[Article, ArticleFilter]
	FindBySlug(ctx context.Context, slug string) (*Article, error)
}

type CommentRepository interface {
	Repository[Comment, uuid.UUID]
	Lister[Comment, CommentFilter]
	FindManyWithAuthor(ctx context.Context, filter CommentFilter, params PaginationParameters) ([]CommentWithAuthor, uint64, error)
}

type CommentReportRepository interface {
	Repository[CommentReport, int32]
	Lister[CommentReport, CommentReportFilter]
}

type TeamRoleRepository interface {
	Repository[TeamRole, int32]
	Lister[TeamRole, TeamRoleFilter]
}

type TeamUserRepository interface {
	Repository[TeamUser, uuid.UUID]
	Lister[TeamUser, TeamUserFilter]
}

type ArticleTagRepository interface {
	Repository[ArticleTag, int32]
	Lister[ArticleTag, ArticleTagFilter]
	FindByValue(ctx context.Context, value string) (*ArticleTag, error)
}
