package planner

import (
	"sort"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/schedule"
)

// DayView: 某个用户某一天的完整日视图，布局每次查询都重新计算
type DayView struct {
	Date      string                      `json:"date"`
	IsWeekend bool                        `json:"isWeekend"`
	GridStart int32                       `json:"gridStart"`
	GridEnd   int32                       `json:"gridEnd"`
	Blocks    []*domain.ScheduleBlockView `json:"blocks"`
	Layout    map[int64]schedule.Slot     `json:"layout"`
}

func (p *Planner) ScheduleForDate(actor *domain.User, userID int64, date string) (*DayView, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, domain.NewValidationError("日期格式必须为 YYYY-MM-DD")
	}

	views, err := p.store.ListBlockViewsForDate(userID, date)
	if err != nil {
		return nil, err
	}

	blocks := make([]*domain.ScheduleBlock, len(views))
	for i, v := range views {
		blocks[i] = &v.ScheduleBlock
	}

	gridStart, gridEnd := schedule.GridRange(blocks)

	return &DayView{
		Date:      date,
		IsWeekend: schedule.IsWeekend(date),
		GridStart: gridStart,
		GridEnd:   gridEnd,
		Blocks:    views,
		Layout:    schedule.Layout(blocks),
	}, nil
}

// ScheduleForWeek 返回从 weekStart 所在周的周一开始连续 7 天的日程块
func (p *Planner) ScheduleForWeek(actor *domain.User, userID int64, weekStart string) (map[string][]*domain.ScheduleBlock, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	monday, err := schedule.WeekStart(weekStart)
	if err != nil {
		return nil, domain.NewValidationError("日期格式必须为 YYYY-MM-DD")
	}

	dates, err := schedule.WeekDates(monday)
	if err != nil {
		return nil, err
	}

	week := make(map[string][]*domain.ScheduleBlock, len(dates))
	for _, date := range dates {
		blocks, err := p.store.ListBlocksForDate(userID, date)
		if err != nil {
			return nil, err
		}
		week[date] = blocks
	}

	return week, nil
}

func (p *Planner) DailySummary(actor *domain.User, userID int64, date string) (*domain.DailySummary, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	blocks, err := p.store.ListBlocksForDate(userID, date)
	if err != nil {
		return nil, err
	}

	return schedule.Summarize(blocks), nil
}

// UnscheduledTasks 计算某个用户在 date 还没有排上日历的任务：
// 任务未完成、父简报未归档、且当天没有任何日程块引用它，按 sortOrder 升序
func (p *Planner) UnscheduledTasks(actor *domain.User, userID int64, date string) ([]*domain.TaskWithBrief, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	tasks, err := p.store.ListTasksByAssignee(userID)
	if err != nil {
		return nil, err
	}

	blocks, err := p.store.ListBlocksForDate(userID, date)
	if err != nil {
		return nil, err
	}

	scheduled := make(map[int64]bool, len(blocks))
	for _, b := range blocks {
		if b.TaskID != nil {
			scheduled[*b.TaskID] = true
		}
	}

	unscheduled := []*domain.TaskWithBrief{}
	for _, t := range tasks {
		if t.Status == domain.TaskStatusDone {
			continue
		}
		if t.BriefStatus == domain.BriefStatusArchived {
			continue
		}
		if scheduled[t.ID] {
			continue
		}
		t.Tier = schedule.PriorityTier(t.SortOrder)
		unscheduled = append(unscheduled, t)
	}

	sort.SliceStable(unscheduled, func(i, j int) bool {
		return unscheduled[i].SortOrder < unscheduled[j].SortOrder
	})

	return unscheduled, nil
}

// EmployeesWithSchedule 返回所有在职用户当天的日程概况（主管/管理员视角）
// IsBusy 表示当前时刻正落在某个日程块内，只对今天有意义
func (p *Planner) EmployeesWithSchedule(actor *domain.User, date string) ([]*domain.EmployeeStatus, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !schedule.Allowed(schedule.OpViewEmployees, actor.Role, false) {
		return nil, domain.ErrNotAuthorized
	}

	users, err := p.store.ListActiveUsers()
	if err != nil {
		return nil, err
	}

	blocks, err := p.store.ListBlocksForDateAllUsers(date)
	if err != nil {
		return nil, err
	}

	byUser := make(map[int64][]*domain.ScheduleBlock, len(users))
	for _, b := range blocks {
		byUser[b.UserID] = append(byUser[b.UserID], b)
	}

	isToday := date == p.today()
	nowMin := p.nowMinutes()

	statuses := make([]*domain.EmployeeStatus, 0, len(users))
	for _, u := range users {
		status := &domain.EmployeeStatus{
			User:   u,
			Blocks: byUser[u.ID],
		}
		if status.Blocks == nil {
			status.Blocks = []*domain.ScheduleBlock{}
		}
		if isToday {
			for _, b := range status.Blocks {
				if b.StartTime <= nowMin && nowMin < b.EndTime {
					status.IsBusy = true
					break
				}
			}
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
