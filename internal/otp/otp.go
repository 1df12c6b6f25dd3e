package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/utils"
)

const PurposeResetPassword = "reset_password"

var ErrMismatch = errors.New("验证码错误")

// Store 把一次性验证码保存在 redis 中，验证成功后立即删除
type Store struct {
	rdb        *redis.Client
	expiration time.Duration
	generate   func() string
}

func NewStore(rdb *redis.Client, expiration time.Duration) *Store {
	return &Store{
		rdb:        rdb,
		expiration: expiration,
		generate:   utils.GenerateRandomOTP,
	}
}

// consumeScript 只有验证码匹配时才删除，比较和删除在 redis 中一次完成
var consumeScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if stored == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

func key(purpose, subject string) string {
	return fmt.Sprintf("otp_%s_%s", subject, purpose)
}

// Issue 生成新的验证码，会覆盖同一用户同一用途之前的验证码
func (s *Store) Issue(ctx context.Context, purpose, subject string) (string, error) {
	code := s.generate()
	if err := s.rdb.Set(ctx, key(purpose, subject), code, s.expiration).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify 验证码不存在、过期或不匹配时都返回 ErrMismatch
func (s *Store) Verify(ctx context.Context, purpose, subject, code string) error {
	consumed, err := consumeScript.Run(ctx, s.rdb, []string{key(purpose, subject)}, code).Int()
	if err != nil {
		return err
	}
	if consumed == 0 {
		return ErrMismatch
	}
	return nil
}

func (s *Store) Expiration() time.Duration {
	return s.expiration
}
