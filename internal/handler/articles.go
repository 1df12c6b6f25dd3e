package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
)

func (h *Handler) GetHomePageArticles(w http.ResponseWriter, r *http.Request) {
	query, err := readPageQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	tagID, err := int32Query(r, "tagId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	home, err := h.services.FetchHomePageArticles.Exec(r.Context(), service.FetchHomePageArticlesParams{
		TagID:     tagID,
		PageQuery: query,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取首页文章成功", home)
}

func (h *Handler) GetArticles(w http.ResponseWriter, r *http.Request) {
	query, err := readPageQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	authorID, err := uuidQuery(r, "authorId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	tagID, err := int32Query(r, "tagId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	includeUnapproved, err := boolQuery(r, "includeUnapproved")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	page, err := h.services.FetchManyArticles.Exec(r.Context(), service.FetchManyArticlesParams{
		ActorID:           optionalActorID(r.Context()),
		AuthorID:          authorID,
		TagID:             tagID,
		IncludeUnapproved: includeUnapproved != nil && *includeUnapproved,
		PageQuery:         query,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取文章列表成功", page)
}

func (h *Handler) GetExpandedArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.services.GetExpandedArticle.Exec(r.Context(), service.GetExpandedArticleParams{
		ActorID: optionalActorID(r.Context()),
		Slug:    chi.URLParam(r, "key"),
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取文章成功", article)
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title" validate:"required,max=200"`
		Content  string `json:"content" validate:"required"`
		CoverURL string `json:"coverUrl" validate:"omitempty,url"`
		TagID    *int32 `json:"tagId"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	article, err := h.services.CreateArticle.Exec(r.Context(), service.CreateArticleParams{
		ActorID:  actorID(r.Context()),
		Title:    req.Title,
		Content:  req.Content,
		CoverURL: req.CoverURL,
		TagID:    req.TagID,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建文章成功", article)
}

func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "key")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var req struct {
		Title    *string `json:"title" validate:"omitnil,min=1,max=200"`
		Content  *string `json:"content" validate:"omitnil,min=1"`
		CoverURL *string `json:"coverUrl" validate:"omitnil,omitempty,url"`
		TagID    *int32  `json:"tagId"`
		Approved *bool   `json:"approved"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	article, err := h.services.UpdateArticle.Exec(r.Context(), service.UpdateArticleParams{
		ActorID:   actorID(r.Context()),
		ArticleID: id,
		Title:     req.Title,
		Content:   req.Content,
		CoverURL:  req.CoverURL,
		TagID:     req.TagID,
		Approved:  req.Approved,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新文章成功", article)
}

func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "key")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.services.DeleteArticle.Exec(r.Context(), service.DeleteArticleParams{
		ActorID:   actorID(r.Context()),
		ArticleID: id,
	}); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除文章成功", nil)
}
