package domain

import "time"

type BlockType string

const (
	BlockTypeBriefTask BlockType = "brief_task"
	BlockTypePersonal  BlockType = "personal"
)

// ScheduleBlock: 某个用户在某一天上的一段连续时间安排
// StartTime 和 EndTime 均为自当天零点起的分钟数，取值范围 [0, 1440]
type ScheduleBlock struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userID"`
	Date        string    `json:"date"` // YYYY-MM-DD，不带时区
	StartTime   int32     `json:"startTime"`
	EndTime     int32     `json:"endTime"`
	Type        BlockType `json:"type"`
	TaskID      *int64    `json:"taskID,omitempty"`  // 仅 brief_task 类型存在
	BriefID     *int64    `json:"briefID,omitempty"` // 仅 brief_task 类型存在
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedBy   int64     `json:"createdBy"` // 创建者，可能不是 UserID 本人（主管代他人排程）
	CreatedAt   time.Time `json:"createdAt"`
}

func (b *ScheduleBlock) Duration() int32 {
	return b.EndTime - b.StartTime
}

// ScheduleBlockView: 日视图返回的日程块，附带关联简报和任务的展示信息
type ScheduleBlockView struct {
	ScheduleBlock
	BriefTitle *string     `json:"briefTitle,omitempty"`
	TaskStatus *TaskStatus `json:"taskStatus,omitempty"`
	TeamColor  *string     `json:"teamColor,omitempty"`
}

type DailyNote struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userID"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DailySummary: 某一天的统计信息，每次查询时重新计算，不落库
type DailySummary struct {
	TotalMinutes          int32   `json:"totalMinutes"`
	BriefMinutes          int32   `json:"briefMinutes"`
	PersonalMinutes       int32   `json:"personalMinutes"`
	BlockCount            int     `json:"blockCount"`
	LongestGapMinutes     int32   `json:"longestGapMinutes"`
	LongestStretchMinutes int32   `json:"longestStretchMinutes"`
	UtilizationPct        int     `json:"utilizationPct"`
	TotalHours            float64 `json:"totalHours"`
}

// EmployeeStatus: 主管视角下某个员工某天的日程概况
type EmployeeStatus struct {
	User   *User            `json:"user"`
	Blocks []*ScheduleBlock `json:"blocks"`
	IsBusy bool             `json:"isBusy"`
}
