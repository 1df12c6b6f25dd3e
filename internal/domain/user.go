package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Role              *Role      `json:"role"`
	CreatedAt         time.Time  `json:"createdAt"`
	PasswordChangedAt *time.Time `json:"passwordChangedAt"`
}

func NewUser(name, email, passwordHash string, role *Role) *User {
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

// Permissions 返回用户当前拥有的全部权限
func (u *User) Permissions() []Permission {
	if u.Role == nil {
		return []Permission{}
	}
	return PermissionsOf(*u.Role)
}

// PublicUser 是可以展示给其他用户的信息
type PublicUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role *Role     `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:   u.ID,
		Name: u.Name,
		Role: u.Role,
	}
}

type UserFilter struct {
	Role *Role
}
