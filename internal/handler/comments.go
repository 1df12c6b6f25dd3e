package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
)

// GetArticleComments 返回文章下可见的评论及其作者
func (h *Handler) GetArticleComments(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "key")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	query, err := readPageQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	page, err := h.services.FetchManyCommentsWithAuthor.Exec(r.Context(), service.FetchManyCommentsWithAuthorParams{
		ArticleID: &id,
		PageQuery: query,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取评论成功", page)
}

func (h *Handler) CommentOnArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "key")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var req struct {
		Content string `json:"content" validate:"required,max=2000"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	comment, err := h.services.CommentOnArticle.Exec(r.Context(), service.CommentOnArticleParams{
		ActorID:   actorID(r.Context()),
		ArticleID: id,
		Content:   req.Content,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "评论成功", comment)
}

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	query, err := readPageQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	articleID, err := uuidQuery(r, "articleId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	includeInactive, err := boolQuery(r, "includeInactive")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	page, err := h.services.FetchManyComments.Exec(r.Context(), service.FetchManyCommentsParams{
		ActorID:         optionalActorID(r.Context()),
		ArticleID:       articleID,
		IncludeInactive: includeInactive != nil && *includeInactive,
		PageQuery:       query,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取评论成功", page)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.services.DeleteComment.Exec(r.Context(), service.DeleteCommentParams{
		ActorID:   actorID(r.Context()),
		CommentID: id,
	}); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除评论成功", nil)
}

func (h *Handler) ToggleCommentVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	comment, err := h.services.ToggleCommentVisibility.Exec(r.Context(), service.ToggleCommentVisibilityParams{
		ActorID:   actorID(r.Context()),
		CommentID: id,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新评论可见性成功", comment)
}
