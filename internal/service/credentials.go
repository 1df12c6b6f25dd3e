package service

import (
	"time"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
)

// PasswordHasher 由 auth 包实现，用例不关心具体算法
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
}
