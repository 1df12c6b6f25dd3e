package handler

import (
	"errors"
	"net/http"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/utils"
)

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	query, err := readPageQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var role *domain.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed, ok := domain.ParseRole(raw)
		if !ok {
			h.badRequest(w, r, errors.New("角色无效"))
			return
		}
		role = &parsed
	}

	page, err := h.services.FetchManyUsers.Exec(r.Context(), service.FetchManyUsersParams{
		ActorID:   actorID(r.Context()),
		Role:      role,
		PageQuery: query,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取用户列表成功", page)
}

// GetUser 只返回可以公开的信息
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.services.GetUser.Exec(r.Context(), service.GetUserParams{UserID: id})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	if user == nil {
		h.serviceError(w, r, domain.NewResourceNotFoundError("用户不存在"))
		return
	}

	h.successResponse(w, r, "获取用户信息成功", user.Public())
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var req struct {
		Name  *string `json:"name" validate:"omitnil,min=1,max=50"`
		Email *string `json:"email" validate:"omitnil,email"`
		Role  *string `json:"role"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	var role *domain.Role
	if req.Role != nil {
		parsed, ok := domain.ParseRole(*req.Role)
		if !ok {
			h.badRequest(w, r, errors.New("角色无效"))
			return
		}
		role = &parsed
	}

	user, err := h.services.UpdateUser.Exec(r.Context(), service.UpdateUserParams{
		ActorID: actorID(r.Context()),
		UserID:  id,
		Name:    req.Name,
		Email:   req.Email,
		Role:    role,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新用户信息成功", user)
}

func (h *Handler) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.services.ChangePassword.Exec(r.Context(), service.ChangePasswordParams{
		ActorID:     actorID(r.Context()),
		UserID:      id,
		NewPassword: req.Password,
	}); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新用户密码成功", nil)
}
