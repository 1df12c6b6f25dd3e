package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

type CreateTeamRoleParams struct {
	StaffRole *domain.Role
	Value     string
}

type CreateTeamRoleService struct {
	teamRoles domain.TeamRoleRepository
}

func NewCreateTeamRoleService(teamRoles domain.TeamRoleRepository) *CreateTeamRoleService {
	return &CreateTeamRoleService{teamRoles: teamRoles}
}

func (s *CreateTeamRoleService) Exec(ctx context.Context, params CreateTeamRoleParams) (*domain.TeamRole, error) {
	op := Operation[domain.TeamRole]{
		Name:       "创建团队职位",
		Permission: domain.PermCreateTeamRole,
		Load: func(ctx context.Context) (*domain.TeamRole, error) {
			value := strings.TrimSpace(params.Value)
			if value == "" {
				return nil, domain.NewBadRequestError("职位名称不能为空")
			}
			return &domain.TeamRole{Value: value, CreatedAt: time.Now().UTC()}, nil
		},
		Persist: s.teamRoles.Save,
	}

	return op.Run(ctx, params.StaffRole)
}

type UpdateTeamRoleParams struct {
	StaffRole  *domain.Role
	TeamRoleID int32
	Value      string
}

type UpdateTeamRoleService struct {
	teamRoles domain.TeamRoleRepository
}

func NewUpdateTeamRoleService(teamRoles domain.TeamRoleRepository) *UpdateTeamRoleService {
	return &UpdateTeamRoleService{teamRoles: teamRoles}
}

func (s *UpdateTeamRoleService) Exec(ctx context.Context, params UpdateTeamRoleParams) (*domain.TeamRole, error) {
	op := Operation[domain.TeamRole]{
		Name:           "更新团队职位",
		Permission:     domain.PermUpdateTeamRole,
		MissingMessage: "团队职位不存在",
		Load:           findBy(s.teamRoles.FindByID, params.TeamRoleID),
		Transition: func(role *domain.TeamRole) error {
			value := strings.TrimSpace(params.Value)
			if value == "" {
				return domain.NewBadRequestError("职位名称不能为空")
			}
			role.Value = value
			return nil
		},
		Persist: s.teamRoles.Save,
	}

	return op.Run(ctx, params.StaffRole)
}

type DeleteTeamRoleParams struct {
	StaffRole  *domain.Role
	TeamRoleID int32
}

type DeleteTeamRoleService struct {
	teamRoles domain.TeamRoleRepository
}

func NewDeleteTeamRoleService(teamRoles domain.TeamRoleRepository) *DeleteTeamRoleService {
	return &DeleteTeamRoleService{teamRoles: teamRoles}
}

func (s *DeleteTeamRoleService) Exec(ctx context.Context, params DeleteTeamRoleParams) error {
	op := Operation[domain.TeamRole]{
		Name:           "删除团队职位",
		Permission:     domain.PermDeleteTeamRole,
		Missing:        MissingIsBadRequest,
		MissingMessage: "团队职位不存在",
		Load:           findBy(s.teamRoles.FindByID, params.TeamRoleID),
		Persist:        deleteWith(s.teamRoles.Delete),
	}

	_, err := op.Run(ctx, params.StaffRole)
	return err
}

type FetchManyTeamRolesService struct {
	teamRoles domain.TeamRoleRepository
}

func NewFetchManyTeamRolesService(teamRoles domain.TeamRoleRepository) *FetchManyTeamRolesService {
	return &FetchManyTeamRolesService{teamRoles: teamRoles}
}

func (s *FetchManyTeamRolesService) Exec(ctx context.Context, query domain.PageQuery) (*domain.Paginated[domain.TeamRole], error) {
	return fetchPage(ctx, "获取团队职位列表", s.teamRoles.FindMany, domain.TeamRoleFilter{}, query)
}

type CreateTeamUserParams struct {
	StaffRole       *domain.Role
	Name            string
	ProfileImageURL string
	UserID          *uuid.UUID
	TeamRoleID      int32
}

type CreateTeamUserService struct {
	teamRoles domain.TeamRoleRepository
	teamUsers domain.TeamUserRepository
}

func NewCreateTeamUserService(teamRoles domain.TeamRoleRepository, teamUsers domain.TeamUserRepository) *CreateTeamUserService {
	return &CreateTeamUserService{teamRoles: teamRoles, teamUsers: teamUsers}
}

func (s *CreateTeamUserService) Exec(ctx context.Context, params CreateTeamUserParams) (*domain.TeamUser, error) {
	op := Operation[domain.TeamUser]{
		Name:       "创建团队成员",
		Permission: domain.PermCreateTeamUser,
		Load: func(ctx context.Context) (*domain.TeamUser, error) {
			name := strings.TrimSpace(params.Name)
			if name == "" {
				return nil, domain.NewBadRequestError("成员名称不能为空")
			}
			if err := checkTeamRoleExists(ctx, s.teamRoles, params.TeamRoleID); err != nil {
				return nil, err
			}
			return domain.NewTeamUser(name, params.ProfileImageURL, params.UserID, params.TeamRoleID), nil
		},
		Persist: s.teamUsers.Save,
	}

	return op.Run(ctx, params.StaffRole)
}

type UpdateTeamUserParams struct {
	StaffRole       *domain.Role
	TeamUserID      uuid.UUID
	Name            *string
	ProfileImageURL *string
	UserID          *uuid.UUID
	TeamRoleID      *int32
}

type UpdateTeamUserService struct {
	teamRoles domain.TeamRoleRepository
	teamUsers domain.TeamUserRepository
}

func NewUpdateTeamUserService(teamRoles domain.TeamRoleRepository, teamUsers domain.TeamUserRepository) *UpdateTeamUserService {
	return &UpdateTeamUserService{teamRoles: teamRoles, teamUsers: teamUsers}
}

func (s *UpdateTeamUserService) Exec(ctx context.Context, params UpdateTeamUserParams) (*domain.TeamUser, error) {
	op := Operation[domain.TeamUser]{
		Name:           "更新团队成员",
		Permission:     domain.PermUpdateTeamUser,
		MissingMessage: "团队成员不存在",
		Load: func(ctx context.Context) (*domain.TeamUser, error) {
			member, err := s.teamUsers.FindByID(ctx, params.TeamUserID)
			if err != nil || member == nil {
				return member, err
			}
			if params.TeamRoleID != nil {
				if err := checkTeamRoleExists(ctx, s.teamRoles, *params.TeamRoleID); err != nil {
					return nil, err
				}
			}
			return member, nil
		},
		Transition: func(member *domain.TeamUser) error {
			if params.Name != nil {
				name := strings.TrimSpace(*params.Name)
				if name == "" {
					return domain.NewBadRequestError("成员名称不能为空")
				}
				member.Name = name
			}
			if params.ProfileImageURL != nil {
				member.ProfileImageURL = *params.ProfileImageURL
			}
			if params.UserID != nil {
				userID := *params.UserID
				member.UserID = &userID
			}
			if params.TeamRoleID != nil {
				member.TeamRoleID = *params.TeamRoleID
			}
			return nil
		},
		Persist: s.teamUsers.Save,
	}

	return op.Run(ctx, params.StaffRole)
}

type DeleteTeamUserParams struct {
	StaffRole  *domain.Role
	TeamUserID uuid.UUID
}

type DeleteTeamUserService struct {
	teamUsers domain.TeamUserRepository
}

func NewDeleteTeamUserService(teamUsers domain.TeamUserRepository) *DeleteTeamUserService {
	return &DeleteTeamUserService{teamUsers: teamUsers}
}

func (s *DeleteTeamUserService) Exec(ctx context.Context, params DeleteTeamUserParams) error {
	op := Operation[domain.TeamUser]{
		Name:           "删除团队成员",
		Permission:     domain.PermDeleteTeamUser,
		Missing:        MissingIsBadRequest,
		MissingMessage: "团队成员不存在",
		Load:           findBy(s.teamUsers.FindByID, params.TeamUserID),
		Persist:        deleteWith(s.teamUsers.Delete),
	}

	_, err := op.Run(ctx, params.StaffRole)
	return err
}

type FetchManyTeamUsersParams struct {
	TeamRoleID *int32
	domain.PageQuery
}

type FetchManyTeamUsersService struct {
	teamUsers domain.TeamUserRepository
}

func NewFetchManyTeamUsersService(teamUsers domain.TeamUserRepository) *FetchManyTeamUsersService {
	return &FetchManyTeamUsersService{teamUsers: teamUsers}
}

func (s *FetchManyTeamUsersService) Exec(ctx context.Context, params FetchManyTeamUsersParams) (*domain.Paginated[domain.TeamUser], error) {
	filter := domain.TeamUserFilter{TeamRoleID: params.TeamRoleID}
	return fetchPage(ctx, "获取团队成员列表", s.teamUsers.FindMany, filter, params.PageQuery)
}

func checkTeamRoleExists(ctx context.Context, teamRoles domain.TeamRoleRepository, id int32) error {
	role, err := teamRoles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.NewBadRequestError("团队职位不存在")
	}
	return nil
}
