package domain

import "fmt"

type Permission string

const (
	PermUpdateUser         Permission = "update_user"
	PermChangeUserPassword Permission = "change_user_password"

	PermCreateArticle     Permission = "create_article"
	PermUpdateArticle     Permission = "update_article"
	PermApproveArticle    Permission = "approve_article"
	PermDisapproveArticle Permission = "disapprove_article"
	PermDeleteArticle     Permission = "delete_article"

	PermInactivateComment Permission = "inactivate_comment"
	PermDeleteComment     Permission = "delete_comment"

	PermSolveReport  Permission = "solve_report"
	PermDeleteReport Permission = "delete_report"

	PermCreateTeamRole Permission = "create_team_role"
	PermUpdateTeamRole Permission = "update_team_role"
	PermDeleteTeamRole Permission = "delete_team_role"

	PermCreateTeamUser Permission = "create_team_user"
	PermUpdateTeamUser Permission = "update_team_user"
	PermDeleteTeamUser Permission = "delete_team_user"

	PermCreateArticleTag Permission = "create_article_tag"
	PermUpdateArticleTag Permission = "update_article_tag"
	PermDeleteArticleTag Permission = "delete_article_tag"
)

// roleGrants 只记录每个角色在前一个角色基础上新增的权限
var roleGrants = map[Role][]Permission{
	RoleUser:   {},
	RoleWriter: {PermCreateArticle},
	RoleEditor: {PermUpdateArticle, PermApproveArticle},
	RoleCoord:  {PermDisapproveArticle, PermInactivateComment, PermSolveReport},
	RoleAdmin: {
		PermUpdateUser,
		PermDeleteComment,
		PermCreateTeamUser,
		PermUpdateTeamUser,
		PermDeleteTeamUser,
	},
	RolePrincipal: {
		PermChangeUserPassword,
		PermDeleteArticle,
		PermDeleteReport,
		PermCreateTeamRole,
		PermUpdateTeamRole,
		PermCreateArticleTag,
		PermUpdateArticleTag,
	},
	RoleCeo: {PermDeleteTeamRole, PermDeleteArticleTag},
}

type roleTable struct {
	sets    map[Role]map[Permission]struct{}
	ordered map[Role][]Permission
}

var permissionTable = buildPermissionTable(Roles, roleGrants)

// buildPermissionTable 按照 order 的顺序累加每个角色的新增权限
func buildPermissionTable(order []Role, grants map[Role][]Permission) roleTable {
	table := roleTable{
		sets:    make(map[Role]map[Permission]struct{}, len(order)),
		ordered: make(map[Role][]Permission, len(order)),
	}

	granted := make(map[Permission]Role)
	var acc []Permission

	for i, role := range order {
		increment, ok := grants[role]
		if !ok {
			panic(fmt.Sprintf("角色 %s 没有定义权限", role))
		}
		// 除了最低的角色，每个角色都必须比前一个角色多至少一个权限
		if i > 0 && len(increment) == 0 {
			panic(fmt.Sprintf("角色 %s 没有新增任何权限", role))
		}

		for _, p := range increment {
			if owner, dup := granted[p]; dup {
				panic(fmt.Sprintf("权限 %s 同时授予了 %s 和 %s", p, owner, role))
			}
			granted[p] = role
		}

		acc = append(acc, increment...)

		set := make(map[Permission]struct{}, len(acc))
		for _, p := range acc {
			set[p] = struct{}{}
		}
		table.sets[role] = set
		table.ordered[role] = append([]Permission(nil), acc...)
	}

	return table
}

// PermissionsOf 返回角色拥有的全部权限，未知角色返回空
func PermissionsOf(role Role) []Permission {
	return append([]Permission(nil), permissionTable.ordered[role]...)
}

func (r Role) Can(p Permission) bool {
	_, ok := permissionTable.sets[r][p]
	return ok
}

// Authorize 检查角色是否拥有所需权限，没有角色的用户没有任何特权
func Authorize(role *Role, p Permission) bool {
	if role == nil {
		return false
	}
	return role.Can(p)
}
