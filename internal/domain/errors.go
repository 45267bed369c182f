package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("用户未登录")
	ErrNotAuthorized   = errors.New("权限不足")
	ErrNotFound        = errors.New("资源不存在")
)

// ValidationError: 时间范围等校验失败，Message 中写明违反的具体规则
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError: 与自己安排的日程冲突，属于硬失败，调用方只能换时间
type ConflictError struct {
	BlockTitle string
	TimeRange  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("时间段与「%s」（%s）冲突，请调整时间", e.BlockTitle, e.TimeRange)
}

// ConflictingBlock: 冲突详情中的单个日程块
type ConflictingBlock struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	StartTime   int32  `json:"startTime"`
	EndTime     int32  `json:"endTime"`
	TimeRange   string `json:"timeRange"`
	CreatorID   int64  `json:"creatorID"`
	CreatorName string `json:"creatorName"`
}

// CrossConflictError: 与他人创建的日程冲突时返回的结构化冲突信息，
// 调用方可以选择联系对方、取消或强制提交，系统不会自动裁决
type CrossConflictError struct {
	Conflicts []ConflictingBlock `json:"conflicts"`
}

func (e *CrossConflictError) Error() string {
	return "时间段与他人安排的日程冲突"
}
