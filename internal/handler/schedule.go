package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/planner"
)

// targetUserID 解析 userId 查询参数，缺省时指向当前登录用户
func (h *Handler) targetUserID(r *http.Request, myInfo *domain.User) (int64, bool) {
	param := r.URL.Query().Get("userId")
	if param == "" {
		return myInfo.ID, true
	}

	userID, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func (h *Handler) GetScheduleForDate(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	userID, ok := h.targetUserID(r, myInfo)
	if !ok {
		h.errorResponse(w, r, "用户ID无效")
		return
	}

	view, err := h.planner.ScheduleForDate(myInfo, userID, r.URL.Query().Get("date"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取日程成功", view)
}

func (h *Handler) GetScheduleForWeek(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	userID, ok := h.targetUserID(r, myInfo)
	if !ok {
		h.errorResponse(w, r, "用户ID无效")
		return
	}

	week, err := h.planner.ScheduleForWeek(myInfo, userID, r.URL.Query().Get("weekStart"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取周日程成功", week)
}

func (h *Handler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	userID, ok := h.targetUserID(r, myInfo)
	if !ok {
		h.errorResponse(w, r, "用户ID无效")
		return
	}

	summary, err := h.planner.DailySummary(myInfo, userID, r.URL.Query().Get("date"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取日程统计成功", summary)
}

func (h *Handler) GetUnscheduledTasks(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	userID, ok := h.targetUserID(r, myInfo)
	if !ok {
		h.errorResponse(w, r, "用户ID无效")
		return
	}

	tasks, err := h.planner.UnscheduledTasks(myInfo, userID, r.URL.Query().Get("date"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取待排任务成功", tasks)
}

func (h *Handler) GetEmployeesWithSchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	statuses, err := h.planner.EmployeesWithSchedule(myInfo, r.URL.Query().Get("date"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工日程成功", statuses)
}

func (h *Handler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		UserID      *int64  `json:"userID"`
		Date        string  `json:"date" validate:"required"`
		StartTime   *int32  `json:"startTime" validate:"required"`
		EndTime     *int32  `json:"endTime" validate:"required"`
		Type        string  `json:"type" validate:"required,oneof=brief_task personal"`
		TaskID      *int64  `json:"taskID"`
		BriefID     *int64  `json:"briefID"`
		Title       string  `json:"title" validate:"required"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
		Force       bool    `json:"force"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	userID := myInfo.ID
	if req.UserID != nil {
		userID = *req.UserID
	}

	block, err := h.planner.CreateBlock(myInfo, &planner.CreateBlockInput{
		UserID:      userID,
		Date:        req.Date,
		StartTime:   *req.StartTime,
		EndTime:     *req.EndTime,
		Type:        domain.BlockType(req.Type),
		TaskID:      req.TaskID,
		BriefID:     req.BriefID,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Force:       req.Force,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建日程块成功", block)
}

func (h *Handler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	blockID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "日程块ID无效")
		return
	}

	var req struct {
		StartTime   *int32  `json:"startTime"`
		EndTime     *int32  `json:"endTime"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
		Completed   *bool   `json:"completed"`
		Force       bool    `json:"force"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	block, err := h.planner.UpdateBlock(myInfo, blockID, &planner.UpdateBlockInput{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Completed:   req.Completed,
		Force:       req.Force,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新日程块成功", block)
}

func (h *Handler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	blockID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "日程块ID无效")
		return
	}

	if err := h.planner.DeleteBlock(myInfo, blockID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除日程块成功", nil)
}

func (h *Handler) CopyDay(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		UserID     *int64 `json:"userID"`
		SourceDate string `json:"sourceDate" validate:"required"`
		TargetDate string `json:"targetDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	userID := myInfo.ID
	if req.UserID != nil {
		userID = *req.UserID
	}

	result, err := h.planner.CopyDay(myInfo, userID, req.SourceDate, req.TargetDate)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "复制日程成功", result)
}

func (h *Handler) QuickSchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		TaskID int64  `json:"taskID" validate:"required"`
		Date   string `json:"date" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	block, err := h.planner.QuickSchedule(myInfo, req.TaskID, req.Date)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "任务已排入日程", block)
}

func (h *Handler) GetDailyNote(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	note, err := h.planner.DailyNote(myInfo, r.URL.Query().Get("date"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.successResponse(w, r, "当天还没有备注", nil)
			return
		}
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取备注成功", note)
}

func (h *Handler) SaveDailyNote(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Date    string `json:"date" validate:"required"`
		Content string `json:"content"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	note, err := h.planner.SaveDailyNote(myInfo, req.Date, req.Content)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "保存备注成功", note)
}
