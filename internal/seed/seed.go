package seed

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/utils"
)

var ErrNoAuthors = errors.New("没有可以发布文章的用户")

// 一次最多取出这么多条记录作为随机数据的候选
const candidateLimit = 100

// EnsureInitialAdmin 保证数据库中存在拥有 Ceo 角色的初始管理员，已经存在时不做任何修改
func EnsureInitialAdmin(ctx context.Context, users domain.UserRepository, hasher service.PasswordHasher, name, email, password string) (created bool, err error) {
	existing, err := users.FindByName(ctx, name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}

	ceo := domain.RoleCeo
	if _, err := users.Save(ctx, domain.NewUser(name, email, hash, &ceo)); err != nil {
		return false, err
	}
	return true, nil
}

// Users 插入 n 个随机用户，大约一半的用户带有随机的员工角色，返回成功插入的数量
func Users(ctx context.Context, users domain.UserRepository, n int, password, emailDomain string) int {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain, rand.Intn(2) == 0)
		if err != nil {
			slog.Error("无法生成随机用户", "error", err)
			continue
		}

		if _, err := users.Save(ctx, user); err != nil {
			slog.Error("无法插入用户", "error", err)
			continue
		}

		cnt++
	}
	return cnt
}

func Tags(ctx context.Context, tags domain.ArticleTagRepository, n int) int {
	cnt := 0
	for _, value := range utils.GenerateRandomTagValues(n) {
		if _, err := tags.Save(ctx, &domain.ArticleTag{Value: value}); err != nil {
			slog.Error("无法插入标签", "error", err)
			continue
		}
		cnt++
	}
	return cnt
}

// Articles 随机挑选有发布权限的用户作为作者插入 n 篇文章
func Articles(ctx context.Context, users domain.UserRepository, tags domain.ArticleTagRepository, articles domain.ArticleRepository, n int) (int, error) {
	params := domain.PaginationParameters{Page: 1, ItemsPerPage: candidateLimit}

	candidates, _, err := users.FindMany(ctx, domain.UserFilter{}, params)
	if err != nil {
		return 0, err
	}
	var authors []uuid.UUID
	for _, u := range candidates {
		if domain.Authorize(u.Role, domain.PermCreateArticle) {
			authors = append(authors, u.ID)
		}
	}
	if len(authors) == 0 {
		return 0, ErrNoAuthors
	}

	tagList, _, err := tags.FindMany(ctx, domain.ArticleTagFilter{}, params)
	if err != nil {
		return 0, err
	}

	cnt := 0
	for i := 0; i < n; i++ {
		// 有些文章没有标签
		var tagID *int32
		if len(tagList) > 0 && rand.Intn(5) != 0 {
			tagID = &tagList[rand.Intn(len(tagList))].ID
		}

		article := utils.GenerateRandomArticle(authors[rand.Intn(len(authors))], tagID)
		if _, err := articles.Save(ctx, article); err != nil {
			slog.Error("无法插入文章", "error", err)
			continue
		}
		cnt++
	}
	return cnt, nil
}
