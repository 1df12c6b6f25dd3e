package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/utils"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.GetUser.Exec(r.Context(), service.GetUserParams{UserID: actorID(r.Context())})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	if user == nil {
		// 令牌有效但用户已经不存在
		h.unauthorized(w, r, "用户不存在")
		return
	}

	h.successResponse(w, r, "获取个人信息成功", user)
}

func (h *Handler) UpdateMyInfo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  *string `json:"name" validate:"omitnil,min=1,max=50"`
		Email *string `json:"email" validate:"omitnil,email"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	me := actorID(r.Context())
	user, err := h.services.UpdateUser.Exec(r.Context(), service.UpdateUserParams{
		ActorID: me,
		UserID:  me,
		Name:    req.Name,
		Email:   req.Email,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新个人信息成功", user)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		h.badRequest(w, r, err)
		return
	}

	me := actorID(r.Context())
	if err := h.services.ChangePassword.Exec(r.Context(), service.ChangePasswordParams{
		ActorID:     me,
		UserID:      me,
		OldPassword: &req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新密码成功", nil)
}
