package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
)

func (h *Handler) GetTeamRoles(w http.ResponseWriter, r *http.Request) {
	query, err := readPageQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	page, err := h.services.FetchManyTeamRoles.Exec(r.Context(), query)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取团队职位成功", page)
}

func (h *Handler) CreateTeamRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value" validate:"required,max=50"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	role, err := h.services.CreateTeamRole.Exec(r.Context(), service.CreateTeamRoleParams{
		StaffRole: actorRole(r.Context()),
		Value:     req.Value,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建团队职位成功", role)
}

func (h *Handler) UpdateTeamRole(w http.ResponseWriter, r *http.Request) {
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

	role, err := h.services.UpdateTeamRole.Exec(r.Context(), service.UpdateTeamRoleParams{
		StaffRole:  actorRole(r.Context()),
		TeamRoleID: id,
		Value:      req.Value,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新团队职位成功", role)
}

func (h *Handler) DeleteTeamRole(w http.ResponseWriter, r *http.Request) {
	id, err := int32Param(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.services.DeleteTeamRole.Exec(r.Context(), service.DeleteTeamRoleParams{
		StaffRole:  actorRole(r.Context()),
		TeamRoleID: id,
	}); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除团队职位成功", nil)
}

func (h *Handler) GetTeamUsers(w http.ResponseWriter, r *http.Request) {
	query, err := readPageQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	teamRoleID, err := int32Query(r, "teamRoleId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	page, err := h.services.FetchManyTeamUsers.Exec(r.Context(), service.FetchManyTeamUsersParams{
		TeamRoleID: teamRoleID,
		PageQuery:  query,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取团队成员成功", page)
}

func (h *Handler) CreateTeamUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string     `json:"name" validate:"required,max=50"`
		ProfileImageURL string     `json:"profileImageUrl" validate:"omitempty,url"`
		UserID          *uuid.UUID `json:"userId"`
		TeamRoleID      int32      `json:"teamRoleId" validate:"required"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	member, err := h.services.CreateTeamUser.Exec(r.Context(), service.CreateTeamUserParams{
		StaffRole:       actorRole(r.Context()),
		Name:            req.Name,
		ProfileImageURL: req.ProfileImageURL,
		UserID:          req.UserID,
		TeamRoleID:      req.TeamRoleID,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建团队成员成功", member)
}

func (h *Handler) UpdateTeamUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var req struct {
		Name            *string    `json:"name" validate:"omitnil,min=1,max=50"`
		ProfileImageURL *string    `json:"profileImageUrl" validate:"omitnil,omitempty,url"`
		UserID          *uuid.UUID `json:"userId"`
		TeamRoleID      *int32     `json:"teamRoleId"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	member, err := h.services.UpdateTeamUser.Exec(r.Context(), service.UpdateTeamUserParams{
		StaffRole:       actorRole(r.Context()),
		TeamUserID:      id,
		Name:            req.Name,
		ProfileImageURL: req.ProfileImageURL,
		UserID:          req.UserID,
		TeamRoleID:      req.TeamRoleID,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新团队成员成功", member)
}

func (h *Handler) DeleteTeamUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.services.DeleteTeamUser.Exec(r.Context(), service.DeleteTeamUserParams{
		StaffRole:  actorRole(r.Context()),
		TeamUserID: id,
	}); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除团队成员成功", nil)
}
