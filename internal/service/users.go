package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

type CreateUserParams struct {
	Name     string
	Email    string
	Password string
}

type CreateUserService struct {
	users  domain.UserRepository
	hasher PasswordHasher
}

func NewCreateUserService(users domain.UserRepository, hasher PasswordHasher) *CreateUserService {
	return &CreateUserService{users: users, hasher: hasher}
}

// Exec 注册新用户，新用户没有任何角色
func (s *CreateUserService) Exec(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	op := Operation[domain.User]{
		Name: "创建用户",
		Load: func(ctx context.Context) (*domain.User, error) {
			name := strings.TrimSpace(params.Name)
			email := strings.TrimSpace(params.Email)
			if name == "" || email == "" || params.Password == "" {
				return nil, domain.NewBadRequestError("用户名、邮箱和密码不能为空")
			}

			if err := checkUserUnique(ctx, s.users, nil, &name, &email); err != nil {
				return nil, err
			}

			hash, err := s.hasher.Hash(params.Password)
			if err != nil {
				return nil, err
			}

			return domain.NewUser(name, email, hash, nil), nil
		},
		Persist: s.users.Save,
	}

	return op.Run(ctx, nil)
}

type AuthenticateUserParams struct {
	Name     string
	Password string
}

type AuthenticateUserResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthenticateUserService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthenticateUserService(users domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthenticateUserService {
	return &AuthenticateUserService{users: users, hasher: hasher, tokens: tokens}
}

// Exec 校验用户名和密码并签发令牌，用户不存在和密码错误返回同样的错误
func (s *AuthenticateUserService) Exec(ctx context.Context, params AuthenticateUserParams) (*AuthenticateUserResult, error) {
	user, err := s.users.FindByName(ctx, params.Name)
	if err != nil {
		return nil, internalError("用户登录：查询用户失败", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	ok, err := s.hasher.Compare(user.PasswordHash, params.Password)
	if err != nil {
		return nil, internalError("用户登录：校验密码失败", err)
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, internalError("用户登录：签发令牌失败", err)
	}

	return &AuthenticateUserResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

type GetUserParams struct {
	UserID uuid.UUID
}

type GetUserService struct {
	users domain.UserRepository
}

func NewGetUserService(users domain.UserRepository) *GetUserService {
	return &GetUserService{users: users}
}

// Exec 用户不存在时返回 (nil, nil)，由调用方决定如何处理
func (s *GetUserService) Exec(ctx context.Context, params GetUserParams) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, params.UserID)
	if err != nil {
		return nil, internalError("获取用户：查询用户失败", err)
	}
	return user, nil
}

// ByName 与 Exec 相同，用于只知道用户名的场景，例如找回密码
func (s *GetUserService) ByName(ctx context.Context, name string) (*domain.User, error) {
	user, err := s.users.FindByName(ctx, name)
	if err != nil {
		return nil, internalError("获取用户：查询用户失败", err)
	}
	return user, nil
}

type UpdateUserParams struct {
	ActorID uuid.UUID
	UserID  uuid.UUID
	Name    *string
	Email   *string
	Role    *domain.Role
}

type UpdateUserService struct {
	users domain.UserRepository
}

func NewUpdateUserService(users domain.UserRepository) *UpdateUserService {
	return &UpdateUserService{users: users}
}

// Exec 用户可以修改自己的名字和邮箱，修改他人或分配角色需要 UpdateUser 权限
//
// 角色一经分配不可修改，且只能分配比操作者自身低的角色
func (s *UpdateUserService) Exec(ctx context.Context, params UpdateUserParams) (*domain.User, error) {
	const name = "更新用户"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return nil, err
	}

	var permission domain.Permission
	if actor.ID != params.UserID || params.Role != nil {
		permission = domain.PermUpdateUser
	}

	if params.Role != nil && (actor.Role == nil || !actor.Role.Outranks(*params.Role)) {
		return nil, domain.ErrUnauthorized
	}

	op := Operation[domain.User]{
		Name:           name,
		Permission:     permission,
		Missing:        MissingIsNotFound,
		MissingMessage: "用户不存在",
		Load: func(ctx context.Context) (*domain.User, error) {
			user, err := s.users.FindByID(ctx, params.UserID)
			if err != nil || user == nil {
				return user, err
			}

			var newName, newEmail *string
			if params.Name != nil {
				if name := strings.TrimSpace(*params.Name); name != user.Name {
					newName = &name
				}
			}
			if params.Email != nil {
				if email := strings.TrimSpace(*params.Email); email != user.Email {
					newEmail = &email
				}
			}
			if err := checkUserUnique(ctx, s.users, &user.ID, newName, newEmail); err != nil {
				return nil, err
			}

			return user, nil
		},
		Transition: func(user *domain.User) error {
			if params.Role != nil {
				if user.Role != nil {
					return domain.NewBadRequestError("角色一经分配不可修改")
				}
				if !params.Role.Valid() {
					return domain.NewBadRequestError("角色无效")
				}
				role := *params.Role
				user.Role = &role
			}
			if params.Name != nil {
				if strings.TrimSpace(*params.Name) == "" {
					return domain.NewBadRequestError("用户名不能为空")
				}
				user.Name = strings.TrimSpace(*params.Name)
			}
			if params.Email != nil {
				if strings.TrimSpace(*params.Email) == "" {
					return domain.NewBadRequestError("邮箱不能为空")
				}
				user.Email = strings.TrimSpace(*params.Email)
			}
			return nil
		},
		Persist: s.users.Save,
	}

	return op.Run(ctx, actor.Role)
}

type ChangePasswordParams struct {
	ActorID     uuid.UUID
	UserID      uuid.UUID
	OldPassword *string
	NewPassword string
}

type ChangePasswordService struct {
	users  domain.UserRepository
	hasher PasswordHasher
}

func NewChangePasswordService(users domain.UserRepository, hasher PasswordHasher) *ChangePasswordService {
	return &ChangePasswordService{users: users, hasher: hasher}
}

// Exec 修改自己的密码需要提供旧密码，修改他人的密码需要 ChangeUserPassword 权限
func (s *ChangePasswordService) Exec(ctx context.Context, params ChangePasswordParams) error {
	const name = "修改密码"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return err
	}

	self := actor.ID == params.UserID

	var permission domain.Permission
	if !self {
		permission = domain.PermChangeUserPassword
	}

	var newHash string

	op := Operation[domain.User]{
		Name:           name,
		Permission:     permission,
		MissingMessage: "用户不存在",
		Load: func(ctx context.Context) (*domain.User, error) {
			if params.NewPassword == "" {
				return nil, domain.NewBadRequestError("新密码不能为空")
			}

			user, err := s.users.FindByID(ctx, params.UserID)
			if err != nil || user == nil {
				return user, err
			}

			if self {
				if params.OldPassword == nil {
					return nil, domain.NewBadRequestError("请提供旧密码")
				}
				ok, err := s.hasher.Compare(user.PasswordHash, *params.OldPassword)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, domain.NewBadRequestError("旧密码错误")
				}
			}

			newHash, err = s.hasher.Hash(params.NewPassword)
			if err != nil {
				return nil, err
			}

			return user, nil
		},
		Transition: func(user *domain.User) error {
			setPassword(user, newHash)
			return nil
		},
		Persist: s.users.Save,
	}

	_, err = op.Run(ctx, actor.Role)
	return err
}

type ResetPasswordParams struct {
	Name        string
	NewPassword string
}

type ResetPasswordService struct {
	users  domain.UserRepository
	hasher PasswordHasher
}

func NewResetPasswordService(users domain.UserRepository, hasher PasswordHasher) *ResetPasswordService {
	return &ResetPasswordService{users: users, hasher: hasher}
}

// Exec 直接设置新密码，调用前传输层必须已经校验过验证码
func (s *ResetPasswordService) Exec(ctx context.Context, params ResetPasswordParams) error {
	var newHash string

	op := Operation[domain.User]{
		Name:           "重置密码",
		MissingMessage: "用户不存在",
		Load: func(ctx context.Context) (*domain.User, error) {
			if params.NewPassword == "" {
				return nil, domain.NewBadRequestError("新密码不能为空")
			}

			user, err := s.users.FindByName(ctx, params.Name)
			if err != nil || user == nil {
				return user, err
			}

			newHash, err = s.hasher.Hash(params.NewPassword)
			if err != nil {
				return nil, err
			}
			return user, nil
		},
		Transition: func(user *domain.User) error {
			setPassword(user, newHash)
			return nil
		},
		Persist: s.users.Save,
	}

	_, err := op.Run(ctx, nil)
	return err
}

type FetchManyUsersParams struct {
	ActorID uuid.UUID
	Role    *domain.Role
	domain.PageQuery
}

type FetchManyUsersService struct {
	users domain.UserRepository
}

func NewFetchManyUsersService(users domain.UserRepository) *FetchManyUsersService {
	return &FetchManyUsersService{users: users}
}

func (s *FetchManyUsersService) Exec(ctx context.Context, params FetchManyUsersParams) (*domain.Paginated[domain.User], error) {
	const name = "获取用户列表"

	actor, err := resolveActor(ctx, s.users, params.ActorID, name)
	if err != nil {
		return nil, err
	}
	if !domain.Authorize(actor.Role, domain.PermUpdateUser) {
		return nil, domain.ErrUnauthorized
	}

	return fetchPage(ctx, name, s.users.FindMany, domain.UserFilter{Role: params.Role}, params.PageQuery)
}

func setPassword(user *domain.User, hash string) {
	now := time.Now().UTC()
	user.PasswordHash = hash
	user.PasswordChangedAt = &now
}

// checkUserUnique 检查用户名和邮箱是否已被其他用户占用，self 为正在修改的用户
func checkUserUnique(ctx context.Context, users domain.UserRepository, self *uuid.UUID, name, email *string) error {
	if name != nil {
		existing, err := users.FindByName(ctx, *name)
		if err != nil {
			return err
		}
		if existing != nil && (self == nil || existing.ID != *self) {
			return domain.NewBadRequestError("用户名已存在")
		}
	}

	if email != nil {
		existing, err := users.FindByEmail(ctx, *email)
		if err != nil {
			return err
		}
		if existing != nil && (self == nil || existing.ID != *self) {
			return domain.NewBadRequestError("邮箱已存在")
		}
	}

	return nil
}
