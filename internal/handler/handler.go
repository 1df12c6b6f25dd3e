package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/auth"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/config"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type OTPStore interface {
	Issue(ctx context.Context, purpose, subject string) (string, error)
	Verify(ctx context.Context, purpose, subject, code string) error
	Expiration() time.Duration
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	translator ut.Translator
	services   *service.Services
	tokens     TokenParser
	otp        OTPStore
	mailer     MailPublisher

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, services *service.Services, tokens TokenParser, otp OTPStore, mailer MailPublisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		translator: trans,
		services:   services,
		tokens:     tokens,
		otp:        otp,
		mailer:     mailer,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Handle("/metrics", promhttp.Handler())

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 匿名可以访问的 API 使用 optionalAuth，其余必须登录，权限由用例检查
	h.Mux.With(h.optionalAuth).Get("/home", h.GetHomePageArticles)

	h.Mux.With(h.auth).Route("/my-info", func(r chi.Router) {
		r.Get("/", h.GetMyInfo)
		r.Patch("/", h.UpdateMyInfo)
		r.Patch("/password", h.UpdateMyPassword)
	})

	h.Mux.With(h.auth).Route("/users", func(r chi.Router) {
		r.Get("/", h.GetUsers)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Patch("/", h.UpdateUser)
			r.Patch("/password", h.UpdateUserPassword)
		})
	})

	// GET 使用 slug，其余操作使用 id
	h.Mux.Route("/articles", func(r chi.Router) {
		r.With(h.optionalAuth).Get("/", h.GetArticles)
		r.With(h.auth).Post("/", h.CreateArticle)
		r.Route("/{key}", func(r chi.Router) {
			r.With(h.optionalAuth).Get("/", h.GetExpandedArticle)
			r.With(h.auth).Patch("/", h.UpdateArticle)
			r.With(h.auth).Delete("/", h.DeleteArticle)
			r.Get("/comments", h.GetArticleComments)
			r.With(h.auth).Post("/comments", h.CommentOnArticle)
		})
	})

	h.Mux.Route("/comments", func(r chi.Router) {
		r.With(h.optionalAuth).Get("/", h.GetComments)
		r.With(h.auth).Route("/{id}", func(r chi.Router) {
			r.Delete("/", h.DeleteComment)
			r.Patch("/visibility", h.ToggleCommentVisibility)
			r.Post("/reports", h.ReportComment)
		})
	})

	h.Mux.With(h.auth).Route("/comment-reports", func(r chi.Router) {
		r.Get("/", h.GetCommentReports)
		r.Patch("/{id}/solve", h.SolveCommentReport)
		r.Delete("/{id}", h.DeleteCommentReport)
	})

	h.Mux.Route("/team-roles", func(r chi.Router) {
		r.Get("/", h.GetTeamRoles)
		r.With(h.auth).Post("/", h.CreateTeamRole)
		r.With(h.auth).Patch("/{id}", h.UpdateTeamRole)
		r.With(h.auth).Delete("/{id}", h.DeleteTeamRole)
	})

	h.Mux.Route("/team-users", func(r chi.Router) {
		r.Get("/", h.GetTeamUsers)
		r.With(h.auth).Post("/", h.CreateTeamUser)
		r.With(h.auth).Patch("/{id}", h.UpdateTeamUser)
		r.With(h.auth).Delete("/{id}", h.DeleteTeamUser)
	})

	h.Mux.Route("/article-tags", func(r chi.Router) {
		r.Get("/", h.GetArticleTags)
		r.With(h.auth).Post("/", h.CreateArticleTag)
		r.With(h.auth).Patch("/{id}", h.UpdateArticleTag)
		r.With(h.auth).Delete("/{id}", h.DeleteArticleTag)
	})
}
