package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/auth"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/config"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/repository"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机标签, 3: 插入随机文章, 4: 创建初始管理员)")
	flag.IntVar(&n, "n", 0, "要插入的记录数量，为 0 时使用配置中的数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)
	users := repository.NewUserRepository(repo)
	tags := repository.NewArticleTagRepository(repo)
	articles := repository.NewArticleRepository(repo)

	count := func(fallback int) int {
		if n > 0 {
			return n
		}
		return fallback
	}

	// 插入大量数据时不受连接超时的限制
	ctx = context.Background()

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		cnt := seed.Users(ctx, users, count(cfg.Seed.Users), cfg.Seed.User.Password, cfg.Email.UserDomain)
		slog.Info("插入用户成功", slog.Int("count", cnt))
	case 2:
		cnt := seed.Tags(ctx, tags, count(cfg.Seed.Tags))
		slog.Info("插入标签成功", slog.Int("count", cnt))
	case 3:
		cnt, err := seed.Articles(ctx, users, tags, articles, count(cfg.Seed.Articles))
		if err != nil {
			slog.Error("无法插入文章", slog.String("error", err.Error()))
			return
		}
		slog.Info("插入文章成功", slog.Int("count", cnt))
	case 4:
		created, err := seed.EnsureInitialAdmin(ctx, users, auth.NewBcryptHasher(cfg.Bcrypt.Cost), cfg.InitialAdmin.Name, cfg.InitialAdmin.Email, cfg.InitialAdmin.Password)
		if err != nil {
			slog.Error("无法创建初始管理员", slog.String("error", err.Error()))
			return
		}
		slog.Info("初始管理员已就绪", slog.Bool("created", created))
	default:
		slog.Error("指定的操作非法")
	}
}
