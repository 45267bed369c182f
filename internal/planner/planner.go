package planner

import (
	"time"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

// DecideFunc 在写入日程块的同一个事务内执行，入参是 (用户, 日期) 桶内
// 当前的全部日程块；返回非 nil 错误则放弃写入并回滚
type DecideFunc func(existing []*domain.ScheduleBlock) error

// Store 是排程服务需要的存储能力
// PlaceBlock 必须保证「读取当天日程 -> decide -> 写入」在一个可串行化的
// 事务边界内完成，避免两个并发请求同时通过冲突检查后都落库
type Store interface {
	PlaceBlock(block *domain.ScheduleBlock, decide func(existing []*domain.ScheduleBlock) error) error
	GetBlock(id int64) (*domain.ScheduleBlock, error)
	DeleteBlock(id int64) error
	ListBlocksForDate(userID int64, date string) ([]*domain.ScheduleBlock, error)
	ListBlockViewsForDate(userID int64, date string) ([]*domain.ScheduleBlockView, error)
	ListBlocksForDateAllUsers(date string) ([]*domain.ScheduleBlock, error)

	GetTask(id int64) (*domain.Task, error)
	UpdateTaskSortOrder(task *domain.Task) error
	ListTasksByAssignee(userID int64) ([]*domain.TaskWithBrief, error)

	GetUser(id int64) (*domain.User, error)
	ListActiveUsers() ([]*domain.User, error)

	UpsertDailyNote(note *domain.DailyNote) error
	GetDailyNote(userID int64, date string) (*domain.DailyNote, error)

	InsertNotification(n *domain.Notification) error
}

// Planner 是日程的权威变更与查询服务
// 时钟通过 now 注入，测试时可以固定时间
type Planner struct {
	store Store
	now   func() time.Time
}

func New(store Store, now func() time.Time) *Planner {
	if now == nil {
		now = time.Now
	}
	return &Planner{
		store: store,
		now:   now,
	}
}

func (p *Planner) today() string {
	return p.now().Format("2006-01-02")
}

// nowMinutes 返回当前时刻距离当天零点的分钟数
func (p *Planner) nowMinutes() int32 {
	t := p.now()
	return int32(t.Hour()*60 + t.Minute())
}
