package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.services.CreateUser.Exec(ctx, CreateUserParams{Name: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Nil(t, user.Role)
	assert.Equal(t, "hashed:secret123", user.PasswordHash)
	assert.Equal(t, 1, f.users.len())

	_, err = f.services.CreateUser.Exec(ctx, CreateUserParams{Name: "alice", Email: "other@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.services.CreateUser.Exec(ctx, CreateUserParams{Name: "bob", Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.services.CreateUser.Exec(ctx, CreateUserParams{Name: " ", Email: "c@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	assert.Equal(t, 1, f.users.len())
}

func TestAuthenticateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "alice", domain.RoleWriter)

	result, err := f.services.AuthenticateUser.Exec(ctx, AuthenticateUserParams{Name: "alice", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, "token-"+user.ID.String(), result.Token)

	_, err = f.services.AuthenticateUser.Exec(ctx, AuthenticateUserParams{Name: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.services.AuthenticateUser.Exec(ctx, AuthenticateUserParams{Name: "nobody", Password: "password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetUserAbsentReturnsNil(t *testing.T) {
	f := newFixture(t)

	user, err := f.services.GetUser.Exec(context.Background(), GetUserParams{UserID: uuid.New()})
	assert.NoError(t, err)
	assert.Nil(t, user)

	f.users.failWith = errStorage
	_, err = f.services.GetUser.Exec(context.Background(), GetUserParams{UserID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestUpdateUserSelf(t *testing.T) {
	f := newFixture(t)
	reader := f.addUser(t, "reader", "")

	updated, err := f.services.UpdateUser.Exec(context.Background(), UpdateUserParams{
		ActorID: reader.ID,
		UserID:  reader.ID,
		Name:    ptr("reader2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "reader2", updated.Name)
}

func TestUpdateUserRejectsPaddedDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice", "")
	f.addUser(t, "bob", "")

	_, err := f.services.UpdateUser.Exec(ctx, UpdateUserParams{ActorID: alice.ID, UserID: alice.ID, Name: ptr(" bob ")})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.services.UpdateUser.Exec(ctx, UpdateUserParams{ActorID: alice.ID, UserID: alice.ID, Email: ptr(" bob@example.com ")})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	stored, _ := f.users.FindByID(ctx, alice.ID)
	assert.Equal(t, "alice", stored.Name)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.Zero(t, f.users.mutations())

	// 去掉空白后与自己的原值相同不算冲突
	updated, err := f.services.UpdateUser.Exec(ctx, UpdateUserParams{ActorID: alice.ID, UserID: alice.ID, Name: ptr(" alice ")})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Name)
}

func TestUpdateUserOtherRequiresPermission(t *testing.T) {
	f := newFixture(t)
	editor := f.addUser(t, "editor", domain.RoleEditor)
	target := f.addUser(t, "target", "")

	_, err := f.services.UpdateUser.Exec(context.Background(), UpdateUserParams{
		ActorID: editor.ID,
		UserID:  target.ID,
		Name:    ptr("hacked"),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	stored, _ := f.users.FindByID(context.Background(), target.ID)
	assert.Equal(t, "target", stored.Name)
	assert.Zero(t, f.users.mutations())
}

func TestUpdateUserAssignsRoleOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.addUser(t, "admin", domain.RoleAdmin)
	target := f.addUser(t, "target", "")

	updated, err := f.services.UpdateUser.Exec(ctx, UpdateUserParams{ActorID: admin.ID, UserID: target.ID, Role: rolePtr(domain.RoleEditor)})
	require.NoError(t, err)
	require.NotNil(t, updated.Role)
	assert.Equal(t, domain.RoleEditor, *updated.Role)

	_, err = f.services.UpdateUser.Exec(ctx, UpdateUserParams{ActorID: admin.ID, UserID: target.ID, Role: rolePtr(domain.RoleWriter)})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	// 不能分配与自己同级或更高的角色
	other := f.addUser(t, "other", "")
	_, err = f.services.UpdateUser.Exec(ctx, UpdateUserParams{ActorID: admin.ID, UserID: other.ID, Role: rolePtr(domain.RoleAdmin)})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateUserMissing(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", domain.RoleAdmin)

	_, err := f.services.UpdateUser.Exec(context.Background(), UpdateUserParams{ActorID: admin.ID, UserID: uuid.New(), Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice", domain.RoleWriter)
	bob := f.addUser(t, "bob", domain.RoleWriter)
	principal := f.addUser(t, "principal", domain.RolePrincipal)

	err := f.services.ChangePassword.Exec(ctx, ChangePasswordParams{ActorID: alice.ID, UserID: alice.ID, NewPassword: "next"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	err = f.services.ChangePassword.Exec(ctx, ChangePasswordParams{ActorID: alice.ID, UserID: alice.ID, OldPassword: ptr("wrong"), NewPassword: "next"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	err = f.services.ChangePassword.Exec(ctx, ChangePasswordParams{ActorID: alice.ID, UserID: alice.ID, OldPassword: ptr("password"), NewPassword: "next"})
	require.NoError(t, err)
	stored, _ := f.users.FindByID(ctx, alice.ID)
	assert.Equal(t, "hashed:next", stored.PasswordHash)
	assert.NotNil(t, stored.PasswordChangedAt)

	err = f.services.ChangePassword.Exec(ctx, ChangePasswordParams{ActorID: alice.ID, UserID: bob.ID, NewPassword: "stolen"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = f.services.ChangePassword.Exec(ctx, ChangePasswordParams{ActorID: principal.ID, UserID: bob.ID, NewPassword: "reset"})
	require.NoError(t, err)
	stored, _ = f.users.FindByID(ctx, bob.ID)
	assert.Equal(t, "hashed:reset", stored.PasswordHash)

	err = f.services.ChangePassword.Exec(ctx, ChangePasswordParams{ActorID: principal.ID, UserID: uuid.New(), NewPassword: "reset"})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addUser(t, "alice", "")

	require.NoError(t, f.services.ResetPassword.Exec(ctx, ResetPasswordParams{Name: "alice", NewPassword: "fresh"}))
	stored, _ := f.users.FindByName(ctx, "alice")
	assert.Equal(t, "hashed:fresh", stored.PasswordHash)

	err := f.services.ResetPassword.Exec(ctx, ResetPasswordParams{Name: "nobody", NewPassword: "fresh"})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestFetchManyUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.addUser(t, "admin", domain.RoleAdmin)
	writer := f.addUser(t, "writer", domain.RoleWriter)
	f.addUser(t, "reader", "")

	page, err := f.services.FetchManyUsers.Exec(ctx, FetchManyUsersParams{ActorID: admin.ID})
	require.NoError(t, err)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, domain.PaginationResponse{CurrentPage: 1, TotalItems: 3, TotalPages: 1}, page.Pagination)

	page, err = f.services.FetchManyUsers.Exec(ctx, FetchManyUsersParams{ActorID: admin.ID, Role: rolePtr(domain.RoleWriter)})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, writer.ID, page.Data[0].ID)

	_, err = f.services.FetchManyUsers.Exec(ctx, FetchManyUsersParams{ActorID: writer.ID})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
