package domain

type Role string

// 角色按权限从低到高排列，后一个角色拥有前一个角色的全部权限
const (
	RoleUser      Role = "user"
	RoleWriter    Role = "writer"
	RoleEditor    Role = "editor"
	RoleCoord     Role = "coord"
	RoleAdmin     Role = "admin"
	RolePrincipal Role = "principal"
	RoleCeo       Role = "ceo"
)

// Roles 是角色的全序，下标即等级
var Roles = []Role{
	RoleUser,
	RoleWriter,
	RoleEditor,
	RoleCoord,
	RoleAdmin,
	RolePrincipal,
	RoleCeo,
}

// Rank 返回角色在全序中的位置，未知角色返回 -1
func (r Role) Rank() int {
	for i, role := range Roles {
		if role == r {
			return i
		}
	}
	return -1
}

func (r Role) Valid() bool {
	return r.Rank() >= 0
}

// Outranks 判断 r 的等级是否严格高于 other
func (r Role) Outranks(other Role) bool {
	return r.Valid() && r.Rank() > other.Rank()
}

func ParseRole(s string) (Role, bool) {
	role := Role(s)
	if !role.Valid() {
		return "", false
	}
	return role, true
}
