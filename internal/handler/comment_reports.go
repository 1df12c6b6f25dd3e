package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/newsroom/backend/internal/domain"
	"github.com/sysu-ecnc-dev/newsroom/backend/internal/service"
)

func (h *Handler) ReportComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var req struct {
		Content string `json:"content" validate:"required,max=500"`
	}

	if !h.readAndValidate(w, r, &req) {
		return
	}

	result, err := h.services.CreateCommentReport.Exec(r.Context(), service.CreateCommentReportParams{
		ActorID:   actorID(r.Context()),
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	// 通知评论作者
	if result.CommentAuthor != nil {
		h.publishMail(r.Context(), domain.MailMessage{
			Type: domain.MailTypeCommentReported,
			To:   result.CommentAuthor.Email,
			Data: domain.CommentReportedMailData{
				Name:           result.CommentAuthor.Name,
				CommentContent: result.Comment.Content,
				ReportContent:  result.Report.Content,
			},
		})
	}

	h.successResponse(w, r, "举报成功", result.Report)
}

func (h *Handler) GetCommentReports(w http.ResponseWriter, r *http.Request) {
	query, err := readPageQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	solved, err := boolQuery(r, "solved")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	page, err := h.services.FetchManyCommentReports.Exec(r.Context(), service.FetchManyCommentReportsParams{
		StaffRole: actorRole(r.Context()),
		Solved:    solved,
		PageQuery: query,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取举报列表成功", page)
}

func (h *Handler) SolveCommentReport(w http.ResponseWriter, r *http.Request) {
	id, err := int32Param(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	report, err := h.services.SolveCommentReport.Exec(r.Context(), service.SolveCommentReportParams{
		ActorID:  actorID(r.Context()),
		ReportID: id,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "处理举报成功", report)
}

func (h *Handler) DeleteCommentReport(w http.ResponseWriter, r *http.Request) {
	id, err := int32Param(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.services.DeleteCommentReport.Exec(r.Context(), service.DeleteCommentReportParams{
		StaffRole: actorRole(r.Context()),
		ReportID:  id,
	}); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除举报成功", nil)
}
