package domain

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type BriefStatus string

const (
	BriefStatusActive   BriefStatus = "active"
	BriefStatusArchived BriefStatus = "archived"
)

// Task: 归属于某个简报的任务，SortOrder 越小优先级越高
type Task struct {
	ID              int64      `json:"id"`
	BriefID         int64      `json:"briefID"`
	AssigneeID      int64      `json:"assigneeID"`
	Title           string     `json:"title"`
	Status          TaskStatus `json:"status"`
	Duration        string     `json:"duration"` // 人类可读的时长，如 "2h"
	DurationMinutes int32      `json:"durationMinutes"`
	SortOrder       int32      `json:"sortOrder"`
	CreatedAt       time.Time  `json:"createdAt"`
	Version         int32      `json:"-"`
}

type Brief struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Status    BriefStatus `json:"status"`
	TeamColor *string     `json:"teamColor,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	Version   int32       `json:"-"`
}

// TaskWithBrief: 任务连同其父简报的展示信息，用于待排任务列表
type TaskWithBrief struct {
	Task
	BriefTitle  string      `json:"briefTitle"`
	BriefStatus BriefStatus `json:"briefStatus"`
	TeamColor   *string     `json:"teamColor,omitempty"`
	Tier        string      `json:"tier"` // high / medium / low
}
