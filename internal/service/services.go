package service

import "github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"

type Repositories struct {
	Users          domain.UserRepository
	Articles       domain.ArticleRepository
	Comments       domain.CommentRepository
	CommentReports domain.CommentReportRepository
	TeamRoles      domain.TeamRoleRepository
	TeamUsers      domain.TeamUserRepository
	ArticleTags    domain.ArticleTagRepository
}

// Services 汇总所有用例，由 cmd/api 构造一次后交给传输层
type Services struct {
	CreateUser       *CreateUserService
	AuthenticateUser *AuthenticateUserService
	GetUser          *GetUserService
	UpdateUser       *UpdateUserService
	ChangePassword   *ChangePasswordService
	ResetPassword    *ResetPasswordService
	FetchManyUsers   *FetchManyUsersService

	CreateArticle         *CreateArticleService
	UpdateArticle         *UpdateArticleService
	DeleteArticle         *DeleteArticleService
	FetchManyArticles     *FetchManyArticlesService
	FetchHomePageArticles *FetchHomePageArticlesService
	GetExpandedArticle    *GetExpandedArticleService

	CommentOnArticle            *CommentOnArticleService
	DeleteComment               *DeleteCommentService
	ToggleCommentVisibility     *ToggleCommentVisibilityService
	FetchManyComments           *FetchManyCommentsService
	FetchManyCommentsWithAuthor *FetchManyCommentsWithAuthorService

	CreateCommentReport     *CreateCommentReportService
	SolveCommentReport      *SolveCommentReportService
	DeleteCommentReport     *DeleteCommentReportService
	FetchManyCommentReports *FetchManyCommentReportsService

	CreateTeamRole     *CreateTeamRoleService
	UpdateTeamRole     *UpdateTeamRoleService
	DeleteTeamRole     *DeleteTeamRoleService
	FetchManyTeamRoles *FetchManyTeamRolesService

	CreateTeamUser     *CreateTeamUserService
	UpdateTeamUser     *UpdateTeamUserService
	DeleteTeamUser     *DeleteTeamUserService
	FetchManyTeamUsers *FetchManyTeamUsersService

	CreateArticleTag     *CreateArticleTagService
	UpdateArticleTag     *UpdateArticleTagService
	DeleteArticleTag     *DeleteArticleTagService
	FetchManyArticleTags *FetchManyArticleTagsService
}

func NewServices(repos Repositories, hasher PasswordHasher, tokens TokenIssuer) *Services {
	return &Services{
		CreateUser:       NewCreateUserService(repos.Users, hasher),
		AuthenticateUser: NewAuthenticateUserService(repos.Users, hasher, tokens),
		GetUser:          NewGetUserService(repos.Users),
		UpdateUser:       NewUpdateUserService(repos.Users),
		ChangePassword:   NewChangePasswordService(repos.Users, hasher),
		ResetPassword:    NewResetPasswordService(repos.Users, hasher),
		FetchManyUsers:   NewFetchManyUsersService(repos.Users),

		CreateArticle:         NewCreateArticleService(repos.Users, repos.Articles, repos.ArticleTags),
		UpdateArticle:         NewUpdateArticleService(repos.Users, repos.Articles, repos.ArticleTags),
		DeleteArticle:         NewDeleteArticleService(repos.Users, repos.Articles),
		FetchManyArticles:     NewFetchManyArticlesService(repos.Users, repos.Articles),
		FetchHomePageArticles: NewFetchHomePageArticlesService(repos.Articles),
		GetExpandedArticle:    NewGetExpandedArticleService(repos.Users, repos.Articles, repos.ArticleTags),

		CommentOnArticle:            NewCommentOnArticleService(repos.Users, repos.Articles, repos.Comments),
		DeleteComment:               NewDeleteCommentService(repos.Users, repos.Comments),
		ToggleCommentVisibility:     NewToggleCommentVisibilityService(repos.Users, repos.Comments),
		FetchManyComments:           NewFetchManyCommentsService(repos.Users, repos.Comments),
		FetchManyCommentsWithAuthor: NewFetchManyCommentsWithAuthorService(repos.Comments),

		CreateCommentReport:     NewCreateCommentReportService(repos.Users, repos.Comments, repos.CommentReports),
		SolveCommentReport:      NewSolveCommentReportService(repos.Users, repos.CommentReports),
		DeleteCommentReport:     NewDeleteCommentReportService(repos.CommentReports),
		FetchManyCommentReports: NewFetchManyCommentReportsService(repos.CommentReports),

		CreateTeamRole:     NewCreateTeamRoleService(repos.TeamRoles),
		UpdateTeamRole:     NewUpdateTeamRoleService(repos.TeamRoles),
		DeleteTeamRole:     NewDeleteTeamRoleService(repos.TeamRoles),
		FetchManyTeamRoles: NewFetchManyTeamRolesService(repos.TeamRoles),

		CreateTeamUser:     NewCreateTeamUserService(repos.TeamRoles, repos.TeamUsers),
		UpdateTeamUser:     NewUpdateTeamUserService(repos.TeamRoles, repos.TeamUsers),
		DeleteTeamUser:     NewDeleteTeamUserService(repos.TeamUsers),
		FetchManyTeamUsers: NewFetchManyTeamUsersService(repos.TeamUsers),

		CreateArticleTag:     NewCreateArticleTagService(repos.ArticleTags),
		UpdateArticleTag:     NewUpdateArticleTagService(repos.ArticleTags),
		DeleteArticleTag:     NewDeleteArticleTagService(repos.ArticleTags),
		FetchManyArticleTags: NewFetchManyArticleTagsService(repos.ArticleTags),
	}
}
