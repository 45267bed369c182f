package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

// ReorderTaskPriority 调整任务优先级：站内通知由排程服务落库，
// 这里再补一封邮件告知任务负责人
func (h *Handler) ReorderTaskPriority(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "任务ID无效")
		return
	}

	var req struct {
		SortOrder *int32 `json:"sortOrder" validate:"required"`
		Reason    string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	task, assignee, err := h.planner.ReorderTaskPriority(myInfo, taskID, *req.SortOrder, req.Reason)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "priority_change",
		To:   assignee.Email,
		Data: domain.PriorityChangeMailData{
			FullName:  assignee.FullName,
			TaskTitle: task.Title,
			SortOrder: task.SortOrder,
			Reason:    req.Reason,
		},
	}

	if err := h.publishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "调整任务优先级成功", task)
}
