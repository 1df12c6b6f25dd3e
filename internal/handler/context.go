package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

type ContextKey string

var (
	RoleCtxKey ContextKey = "role"
	SubCtxKey  ContextKey = "sub"
)

func withActor(ctx context.Context, id uuid.UUID, role *domain.Role) context.Context {
	ctx = context.WithValue(ctx, SubCtxKey, id)
	return context.WithValue(ctx, RoleCtxKey, role)
}

// actorID 只能在 auth 中间件之后调用
func actorID(ctx context.Context) uuid.UUID {
	return ctx.Value(SubCtxKey).(uuid.UUID)
}

// optionalActorID 在匿名访问时返回 nil
func optionalActorID(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(SubCtxKey).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

func actorRole(ctx context.Context) *domain.Role {
	role, _ := ctx.Value(RoleCtxKey).(*domain.Role)
	return role
}
