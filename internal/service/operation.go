package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

// MissingPolicy 决定目标实体不存在时用例如何处理，不同实体的策略不同，不要合并
type MissingPolicy int

const (
	MissingIsNotFound MissingPolicy = iota
	MissingIsBadRequest
	MissingIsNoop
)

// Operation 是所有用例共用的执行模板：鉴权 → 加载目标 → 状态转换 → 持久化
//
// 任何一步失败都会直接返回，鉴权失败时不会执行后面的任何一步
type Operation[T any] struct {
	Name           string
	Permission     domain.Permission
	Missing        MissingPolicy
	MissingMessage string

	// Load 可以返回 *domain.Error 表示业务错误，其他错误都视为存储错误
	Load       func(ctx context.Context) (*T, error)
	Transition func(target *T) error
	Persist    func(ctx context.Context, target *T) (*T, error)
}

// Run 执行用例，MissingIsNoop 策略下目标不存在时返回 (nil, nil)
func (op Operation[T]) Run(ctx context.Context, role *domain.Role) (*T, error) {
	if op.Permission != "" && !domain.Authorize(role, op.Permission) {
		return nil, domain.ErrUnauthorized
	}

	target, err := op.Load(ctx)
	if err != nil {
		var derr *domain.Error
		if errors.As(err, &derr) {
			return nil, derr
		}
		return nil, internalError(op.Name+"：加载数据失败", err)
	}

	if target == nil {
		switch op.Missing {
		case MissingIsNoop:
			return nil, nil
		case MissingIsBadRequest:
			return nil, domain.NewBadRequestError(op.missingMessage())
		default:
			return nil, domain.NewResourceNotFoundError(op.missingMessage())
		}
	}

	if op.Transition != nil {
		if err := op.Transition(target); err != nil {
			return nil, err
		}
	}

	if op.Persist == nil {
		return target, nil
	}

	saved, err := op.Persist(ctx, target)
	if err != nil {
		return nil, internalError(op.Name+"：持久化失败", err)
	}

	return saved, nil
}

func (op Operation[T]) missingMessage() string {
	if op.MissingMessage != "" {
		return op.MissingMessage
	}
	if op.Missing == MissingIsBadRequest {
		return domain.ErrBadRequest.Message
	}
	return domain.ErrResourceNotFound.Message
}

// internalError 记录存储层的原始错误，对外只返回通用的内部错误
func internalError(msg string, err error) error {
	slog.Error(msg, "error", err)
	return domain.ErrInternal
}

// resolveActor 查询发起操作的用户，用户不存在说明会话与数据不一致，按未授权处理
func resolveActor(ctx context.Context, users domain.UserRepository, id uuid.UUID, opName string) (*domain.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, internalError(opName+"：查询操作者失败", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func findBy[T any, ID any](find func(context.Context, ID) (*T, error), id ID) func(context.Context) (*T, error) {
	return func(ctx context.Context) (*T, error) {
		return find(ctx, id)
	}
}

func deleteWith[T any](del func(context.Context, *T) error) func(context.Context, *T) (*T, error) {
	return func(ctx context.Context, target *T) (*T, error) {
		if err := del(ctx, target); err != nil {
			return nil, err
		}
		return target, nil
	}
}

// fetchPage 是所有分页查询用例共用的部分
func fetchPage[T any, F any](
	ctx context.Context,
	opName string,
	find func(context.Context, F, domain.PaginationParameters) ([]T, uint64, error),
	filter F,
	query domain.PageQuery,
) (*domain.Paginated[T], error) {
	params := query.Normalize()

	items, total, err := find(ctx, filter, params)
	if err != nil {
		return nil, internalError(opName+"：分页查询失败", err)
	}

	return domain.NewPaginated(items, params, total), nil
}
