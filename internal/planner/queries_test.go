package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

func TestScheduleForDate(t *testing.T) {
	p, store := newTestPlanner()
	seedBrief(store, 20, "春季活动", domain.BriefStatusActive)
	briefID, taskID := int64(20), int64(10)

	a := seedBlock(store, 1, testToday, 660, 720, 1)
	b := seedBlock(store, 1, testToday, 700, 780, 1)
	b.Type = domain.BlockTypeBriefTask
	b.TaskID = &taskID
	b.BriefID = &briefID
	// 别人的日程不应出现在视图里
	seedBlock(store, 2, testToday, 660, 720, 2)

	view, err := p.ScheduleForDate(memberActor(store), 1, testToday)
	require.NoError(t, err)

	assert.Equal(t, testToday, view.Date)
	assert.False(t, view.IsWeekend)
	assert.Equal(t, int32(660), view.GridStart)
	assert.Equal(t, int32(1200), view.GridEnd)
	require.Len(t, view.Blocks, 2)

	// 两个块重叠，各占一半宽度
	require.Contains(t, view.Layout, a.ID)
	require.Contains(t, view.Layout, b.ID)
	assert.Equal(t, 2, view.Layout[a.ID].TotalColumns)
	assert.Equal(t, 2, view.Layout[b.ID].TotalColumns)
	assert.NotEqual(t, view.Layout[a.ID].Column, view.Layout[b.ID].Column)

	// 任务块带上了简报标题
	for _, v := range view.Blocks {
		if v.ID == b.ID {
			require.NotNil(t, v.BriefTitle)
			assert.Equal(t, "春季活动", *v.BriefTitle)
		}
	}
}

func TestScheduleForDateWeekend(t *testing.T) {
	p, store := newTestPlanner()

	view, err := p.ScheduleForDate(memberActor(store), 1, "2025-03-15")
	require.NoError(t, err)
	assert.True(t, view.IsWeekend)
	assert.Empty(t, view.Blocks)
}

func TestScheduleForDateInvalidDate(t *testing.T) {
	p, store := newTestPlanner()

	_, err := p.ScheduleForDate(memberActor(store), 1, "今天")
	validationErr := &domain.ValidationError{}
	require.ErrorAs(t, err, &validationErr)
}

func TestScheduleForWeekNormalizesToMonday(t *testing.T) {
	p, store := newTestPlanner()
	// 周三的块
	seedBlock(store, 1, "2025-03-12", 660, 720, 1)
	// 下周一的块，不属于这一周
	seedBlock(store, 1, "2025-03-17", 660, 720, 1)

	// 用周五查询，应归一化到 03-10 那个周一
	week, err := p.ScheduleForWeek(memberActor(store), 1, "2025-03-14")
	require.NoError(t, err)

	require.Len(t, week, 7)
	assert.Contains(t, week, "2025-03-10")
	assert.Contains(t, week, "2025-03-16")
	assert.NotContains(t, week, "2025-03-17")
	assert.Len(t, week["2025-03-12"], 1)
	assert.Empty(t, week["2025-03-10"])
}

func TestDailySummary(t *testing.T) {
	p, store := newTestPlanner()
	seedBlock(store, 1, testToday, 660, 780, 1)

	summary, err := p.DailySummary(memberActor(store), 1, testToday)
	require.NoError(t, err)
	assert.Equal(t, int32(120), summary.TotalMinutes)
	assert.Equal(t, 1, summary.BlockCount)
}

func TestUnscheduledTasks(t *testing.T) {
	p, store := newTestPlanner()
	seedBrief(store, 20, "春季活动", domain.BriefStatusActive)
	seedBrief(store, 21, "去年的活动", domain.BriefStatusArchived)

	seedTask(store, 10, 20, 1, "低优先级", domain.TaskStatusTodo, 60, 6000)
	seedTask(store, 11, 20, 1, "高优先级", domain.TaskStatusTodo, 60, 500)
	seedTask(store, 12, 20, 1, "进行中", domain.TaskStatusInProgress, 60, 2000)
	seedTask(store, 13, 20, 1, "已完成", domain.TaskStatusDone, 60, 100)
	seedTask(store, 14, 21, 1, "归档简报的任务", domain.TaskStatusTodo, 60, 200)
	seedTask(store, 15, 20, 1, "今天已排上", domain.TaskStatusTodo, 60, 800)
	seedTask(store, 16, 20, 2, "别人的任务", domain.TaskStatusTodo, 60, 100)

	scheduledID, briefID := int64(15), int64(20)
	block := seedBlock(store, 1, testToday, 660, 720, 1)
	block.Type = domain.BlockTypeBriefTask
	block.TaskID = &scheduledID
	block.BriefID = &briefID

	tasks, err := p.UnscheduledTasks(memberActor(store), 1, testToday)
	require.NoError(t, err)

	// 已完成、归档简报、已排上的都被过滤，剩下的按 sortOrder 升序
	require.Len(t, tasks, 3)
	assert.Equal(t, "高优先级", tasks[0].Title)
	assert.Equal(t, "进行中", tasks[1].Title)
	assert.Equal(t, "低优先级", tasks[2].Title)

	assert.Equal(t, "high", tasks[0].Tier)
	assert.Equal(t, "medium", tasks[1].Tier)
	assert.Equal(t, "low", tasks[2].Tier)
}

func TestUnscheduledTasksOtherDayStillListed(t *testing.T) {
	p, store := newTestPlanner()
	seedBrief(store, 20, "春季活动", domain.BriefStatusActive)
	seedTask(store, 10, 20, 1, "写文案", domain.TaskStatusTodo, 60, 500)

	// 昨天排过，但今天没排，今天的待排列表里仍然出现
	taskID, briefID := int64(10), int64(20)
	block := seedBlock(store, 1, "2025-03-11", 660, 720, 1)
	block.Type = domain.BlockTypeBriefTask
	block.TaskID = &taskID
	block.BriefID = &briefID

	tasks, err := p.UnscheduledTasks(memberActor(store), 1, testToday)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "写文案", tasks[0].Title)
}

func TestEmployeesWithSchedule(t *testing.T) {
	p, store := newTestPlanner()
	// 固定时钟是第 870 分钟：成员 1 正在忙，成员 2 的块已经结束
	seedBlock(store, 1, testToday, 840, 900, 1)
	seedBlock(store, 2, testToday, 660, 720, 2)

	statuses, err := p.EmployeesWithSchedule(managerActor(store), testToday)
	require.NoError(t, err)

	// 只有在职用户，离职的用户 5 不出现
	require.Len(t, statuses, 4)

	byID := map[int64]*domain.EmployeeStatus{}
	for _, s := range statuses {
		byID[s.User.ID] = s
	}
	require.NotContains(t, byID, int64(5))

	assert.True(t, byID[1].IsBusy)
	assert.False(t, byID[2].IsBusy)
	assert.Len(t, byID[1].Blocks, 1)
	assert.Empty(t, byID[3].Blocks)
}

func TestEmployeesWithScheduleNotToday(t *testing.T) {
	p, store := newTestPlanner()
	// 非今天的查询不计算忙碌状态，哪怕时间段盖住当前时刻
	seedBlock(store, 1, "2025-03-13", 840, 900, 1)

	statuses, err := p.EmployeesWithSchedule(managerActor(store), "2025-03-13")
	require.NoError(t, err)

	for _, s := range statuses {
		assert.False(t, s.IsBusy)
	}
}

func TestEmployeesWithScheduleAuthz(t *testing.T) {
	p, store := newTestPlanner()

	_, err := p.EmployeesWithSchedule(memberActor(store), testToday)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	_, err = p.EmployeesWithSchedule(adminActor(store), testToday)
	assert.NoError(t, err)
}
