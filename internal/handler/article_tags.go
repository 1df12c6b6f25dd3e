package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
)

func (h *Handler) GetArticleTags(w http.ResponseWriter, r *http.Request) {
	query, err := readPageQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	page, err := h.services.FetchManyArticleTags.Exec(r.Context(), query)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取文章标签成功", page)
}

func (h *Handler) CreateArticleTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value" validate:"required,max=50"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	tag, err := h.services.CreateArticleTag.Exec(r.Context(), service.CreateArticleTagParams{
		StaffRole: actorRole(r.Context()),
		Value:     req.Value,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建文章标签成功", tag)
}

func (h *Handler) UpdateArticleTag(w http.ResponseWriter, r *http.Request) {
	id, err := int32Param(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var req struct {
		Value string `json:"value" validate:"required,max=50"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	tag, err := h.services.UpdateArticleTag.Exec(r.Context(), service.UpdateArticleTagParams{
		StaffRole: actorRole(r.Context()),
		TagID:     id,
		Value:     req.Value,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新文章标签成功", tag)
}

func (h *Handler) DeleteArticleTag(w http.ResponseWriter, r *http.Request) {
	id, err := int32Param(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.services.DeleteArticleTag.Exec(r.Context(), service.DeleteArticleTagParams{
		StaffRole: actorRole(r.Context()),
		TagID:     id,
	}); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除文章标签成功", nil)
}
