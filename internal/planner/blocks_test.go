package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

func personalInput(userID int64, date string, start, end int32) *CreateBlockInput {
	return &CreateBlockInput{
		UserID:    userID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Type:      domain.BlockTypePersonal,
		Title:     "整理周报",
	}
}

func TestCreateBlock(t *testing.T) {
	p, store := newTestPlanner()

	block, err := p.CreateBlock(memberActor(store), personalInput(1, testToday, 660, 720))
	require.NoError(t, err)

	assert.NotZero(t, block.ID)
	assert.Equal(t, int64(1), block.UserID)
	assert.Equal(t, int64(1), block.CreatedBy)
	assert.Equal(t, testClock(), block.CreatedAt)

	saved, err := store.GetBlock(block.ID)
	require.NoError(t, err)
	assert.Equal(t, block.Title, saved.Title)
}

func TestCreateBlockNilActor(t *testing.T) {
	p, _ := newTestPlanner()

	_, err := p.CreateBlock(nil, personalInput(1, testToday, 660, 720))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreateBlockInvalidRange(t *testing.T) {
	p, store := newTestPlanner()

	tests := []struct {
		name       string
		start, end int32
	}{
		{"开始为负", -5, 60},
		{"结束超过 24:00", 1430, 1445},
		{"零长度", 660, 660},
		{"结束早于开始", 720, 660},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CreateBlock(memberActor(store), personalInput(1, testToday, tt.start, tt.end))
			validationErr := &domain.ValidationError{}
			require.ErrorAs(t, err, &validationErr)
		})
	}

	// 校验失败的块不会落库
	blocks, err := store.ListBlocksForDate(1, testToday)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestCreateBlockInvalidDate(t *testing.T) {
	p, store := newTestPlanner()

	_, err := p.CreateBlock(memberActor(store), personalInput(1, "2025/03/12", 660, 720))
	validationErr := &domain.ValidationError{}
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateBlockLinkRules(t *testing.T) {
	p, store := newTestPlanner()
	taskID, briefID := int64(10), int64(20)

	t.Run("任务块缺少关联", func(t *testing.T) {
		in := personalInput(1, testToday, 660, 720)
		in.Type = domain.BlockTypeBriefTask
		_, err := p.CreateBlock(memberActor(store), in)
		validationErr := &domain.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("个人块不能带关联", func(t *testing.T) {
		in := personalInput(1, testToday, 660, 720)
		in.TaskID = &taskID
		in.BriefID = &briefID
		_, err := p.CreateBlock(memberActor(store), in)
		validationErr := &domain.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("未知类型", func(t *testing.T) {
		in := personalInput(1, testToday, 660, 720)
		in.Type = domain.BlockType("mystery")
		_, err := p.CreateBlock(memberActor(store), in)
		validationErr := &domain.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestCreateBlockAuthz(t *testing.T) {
	p, store := newTestPlanner()

	t.Run("成员不能替他人排程", func(t *testing.T) {
		_, err := p.CreateBlock(memberActor(store), personalInput(2, testToday, 660, 720))
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("主管可以替他人排程", func(t *testing.T) {
		block, err := p.CreateBlock(managerActor(store), personalInput(1, testToday, 660, 720))
		require.NoError(t, err)
		assert.Equal(t, int64(1), block.UserID)
		assert.Equal(t, int64(3), block.CreatedBy)
	})
}

func TestCreateBlockSelfConflict(t *testing.T) {
	p, store := newTestPlanner()
	existing := seedBlock(store, 1, testToday, 660, 720, 1)

	// 自己和自己冲突是硬失败，错误信息里带上冲突块的标题和时间段
	_, err := p.CreateBlock(memberActor(store), personalInput(1, testToday, 700, 780))

	conflictErr := &domain.ConflictError{}
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, existing.Title, conflictErr.BlockTitle)
	assert.Equal(t, "11:00 AM - 12:00 PM", conflictErr.TimeRange)
	assert.Contains(t, err.Error(), existing.Title)

	blocks, _ := store.ListBlocksForDate(1, testToday)
	assert.Len(t, blocks, 1)
}

func TestCreateBlockBackToBackNoConflict(t *testing.T) {
	p, store := newTestPlanner()
	seedBlock(store, 1, testToday, 660, 720, 1)

	// 首尾相接不算冲突
	_, err := p.CreateBlock(memberActor(store), personalInput(1, testToday, 720, 780))
	assert.NoError(t, err)
}

func TestCreateBlockCrossConflict(t *testing.T) {
	p, store := newTestPlanner()
	// 主管替成员 1 排的日程
	other := seedBlock(store, 1, testToday, 660, 720, 3)

	_, err := p.CreateBlock(memberActor(store), personalInput(1, testToday, 700, 780))

	crossErr := &domain.CrossConflictError{}
	require.ErrorAs(t, err, &crossErr)
	require.Len(t, crossErr.Conflicts, 1)

	c := crossErr.Conflicts[0]
	assert.Equal(t, other.ID, c.ID)
	assert.Equal(t, int64(3), c.CreatorID)
	assert.Equal(t, "王子豪", c.CreatorName)
	assert.Equal(t, "11:00 AM - 12:00 PM", c.TimeRange)
}

func TestCreateBlockOnOthersCalendarConflict(t *testing.T) {
	p, store := newTestPlanner()
	// 成员 1 自己排的日程，主管替他新增时撞上了：
	// 虽然冲突块不是主管创建的，也走结构化冲突路径
	seedBlock(store, 1, testToday, 660, 720, 1)

	_, err := p.CreateBlock(managerActor(store), personalInput(1, testToday, 700, 780))

	crossErr := &domain.CrossConflictError{}
	require.ErrorAs(t, err, &crossErr)
	require.Len(t, crossErr.Conflicts, 1)
	assert.Equal(t, "陈靖轩", crossErr.Conflicts[0].CreatorName)
}

func TestCreateBlockForceBypassesConflict(t *testing.T) {
	p, store := newTestPlanner()
	seedBlock(store, 1, testToday, 660, 720, 3)

	in := personalInput(1, testToday, 700, 780)
	in.Force = true
	block, err := p.CreateBlock(memberActor(store), in)

	require.NoError(t, err)
	blocks, _ := store.ListBlocksForDate(1, testToday)
	assert.Len(t, blocks, 2)
	assert.NotZero(t, block.ID)
}

func TestUpdateBlockPartialPatch(t *testing.T) {
	p, store := newTestPlanner()
	block := seedBlock(store, 1, testToday, 660, 720, 1)

	newTitle := "改过的标题"
	completed := true
	updated, err := p.UpdateBlock(memberActor(store), block.ID, &UpdateBlockInput{
		Title:     &newTitle,
		Completed: &completed,
	})

	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.True(t, updated.Completed)
	// 未出现在请求中的字段保持原值
	assert.Equal(t, int32(660), updated.StartTime)
	assert.Equal(t, int32(720), updated.EndTime)
}

func TestUpdateBlockTitleOnlySkipsConflictCheck(t *testing.T) {
	p, store := newTestPlanner()
	// 两个强制提交后重叠的块，只改标题不应触发冲突检测
	block := seedBlock(store, 1, testToday, 660, 720, 1)
	seedBlock(store, 1, testToday, 700, 780, 1)

	newTitle := "只改标题"
	_, err := p.UpdateBlock(memberActor(store), block.ID, &UpdateBlockInput{Title: &newTitle})
	assert.NoError(t, err)
}

func TestUpdateBlockTimeChangeRechecksConflict(t *testing.T) {
	p, store := newTestPlanner()
	block := seedBlock(store, 1, testToday, 660, 720, 1)
	seedBlock(store, 1, testToday, 780, 840, 1)

	start, end := int32(800), int32(860)
	_, err := p.UpdateBlock(memberActor(store), block.ID, &UpdateBlockInput{
		StartTime: &start,
		EndTime:   &end,
	})

	conflictErr := &domain.ConflictError{}
	require.ErrorAs(t, err, &conflictErr)
}

func TestUpdateBlockExcludesSelfFromConflict(t *testing.T) {
	p, store := newTestPlanner()
	block := seedBlock(store, 1, testToday, 660, 720, 1)

	// 新时间段和旧时间段重叠，不能把自己算成冲突
	start, end := int32(690), int32(750)
	updated, err := p.UpdateBlock(memberActor(store), block.ID, &UpdateBlockInput{
		StartTime: &start,
		EndTime:   &end,
	})

	require.NoError(t, err)
	assert.Equal(t, int32(690), updated.StartTime)
	assert.Equal(t, int32(750), updated.EndTime)
}

func TestUpdateBlockInvalidRange(t *testing.T) {
	p, store := newTestPlanner()
	block := seedBlock(store, 1, testToday, 660, 720, 1)

	start, end := int32(800), int32(700)
	_, err := p.UpdateBlock(memberActor(store), block.ID, &UpdateBlockInput{
		StartTime: &start,
		EndTime:   &end,
	})

	validationErr := &domain.ValidationError{}
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdateBlockAuthz(t *testing.T) {
	p, store := newTestPlanner()
	block := seedBlock(store, 1, testToday, 660, 720, 1)
	newTitle := "别人改的"

	t.Run("其他成员不能更新", func(t *testing.T) {
		_, err := p.UpdateBlock(member2Actor(store), block.ID, &UpdateBlockInput{Title: &newTitle})
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("主管可以更新他人的日程", func(t *testing.T) {
		_, err := p.UpdateBlock(managerActor(store), block.ID, &UpdateBlockInput{Title: &newTitle})
		assert.NoError(t, err)
	})
}

func TestUpdateBlockNotFound(t *testing.T) {
	p, store := newTestPlanner()
	newTitle := "不存在"

	_, err := p.UpdateBlock(memberActor(store), 9999, &UpdateBlockInput{Title: &newTitle})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteBlock(t *testing.T) {
	p, store := newTestPlanner()

	t.Run("本人可以删除", func(t *testing.T) {
		block := seedBlock(store, 1, testToday, 660, 720, 1)
		require.NoError(t, p.DeleteBlock(memberActor(store), block.ID))

		_, err := store.GetBlock(block.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("主管能更新却不能删除他人的日程", func(t *testing.T) {
		block := seedBlock(store, 1, testToday, 780, 840, 1)
		err := p.DeleteBlock(managerActor(store), block.ID)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)

		_, err = store.GetBlock(block.ID)
		assert.NoError(t, err)
	})

	t.Run("管理员可以删除任何人的日程", func(t *testing.T) {
		block := seedBlock(store, 1, testToday, 900, 960, 1)
		assert.NoError(t, p.DeleteBlock(adminActor(store), block.ID))
	})

	t.Run("删除不存在的块", func(t *testing.T) {
		err := p.DeleteBlock(adminActor(store), 9999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCopyDay(t *testing.T) {
	p, store := newTestPlanner()
	seedBrief(store, 20, "春季活动", domain.BriefStatusActive)
	seedTask(store, 10, 20, 1, "写文案", domain.TaskStatusTodo, 120, 500)
	seedTask(store, 11, 20, 1, "已完成的任务", domain.TaskStatusDone, 60, 300)

	sourceDate, targetDate := "2025-03-10", "2025-03-11"
	taskID, doneTaskID, briefID := int64(10), int64(11), int64(20)

	// 源日期：一个普通个人块、一个关联未完成任务的块、一个关联已完成任务的块
	seedBlock(store, 1, sourceDate, 660, 720, 1)
	taskBlock := seedBlock(store, 1, sourceDate, 780, 840, 1)
	taskBlock.Type = domain.BlockTypeBriefTask
	taskBlock.TaskID = &taskID
	taskBlock.BriefID = &briefID
	doneBlock := seedBlock(store, 1, sourceDate, 900, 960, 1)
	doneBlock.Type = domain.BlockTypeBriefTask
	doneBlock.TaskID = &doneTaskID
	doneBlock.BriefID = &briefID

	// 目标日期已有一个块，和源日期的第一个块撞车
	seedBlock(store, 1, targetDate, 700, 760, 1)

	result, err := p.CopyDay(memberActor(store), 1, sourceDate, targetDate)
	require.NoError(t, err)

	// 个人块因冲突跳过，已完成任务的块跳过，只有任务块复制成功
	assert.Equal(t, 1, result.Copied)
	assert.Equal(t, 2, result.Skipped)

	blocks, _ := store.ListBlocksForDate(1, targetDate)
	require.Len(t, blocks, 2)
}

func TestCopyDayCloneKeepsCreator(t *testing.T) {
	p, store := newTestPlanner()
	sourceDate, targetDate := "2025-03-10", "2025-03-11"
	// 主管替成员排的块，复制后创建者依然是主管
	original := seedBlock(store, 1, sourceDate, 660, 720, 3)

	result, err := p.CopyDay(memberActor(store), 1, sourceDate, targetDate)
	require.NoError(t, err)
	require.Equal(t, 1, result.Copied)

	blocks, _ := store.ListBlocksForDate(1, targetDate)
	require.Len(t, blocks, 1)
	clone := blocks[0]
	assert.NotEqual(t, original.ID, clone.ID)
	assert.Equal(t, int64(3), clone.CreatedBy)
	assert.Equal(t, targetDate, clone.Date)
	assert.Equal(t, original.StartTime, clone.StartTime)
	assert.Equal(t, original.EndTime, clone.EndTime)
}

func TestCopyDayValidation(t *testing.T) {
	p, store := newTestPlanner()

	t.Run("源和目标相同", func(t *testing.T) {
		_, err := p.CopyDay(memberActor(store), 1, testToday, testToday)
		validationErr := &domain.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("非法日期", func(t *testing.T) {
		_, err := p.CopyDay(memberActor(store), 1, "昨天", testToday)
		validationErr := &domain.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("成员不能复制他人的日程", func(t *testing.T) {
		_, err := p.CopyDay(memberActor(store), 2, "2025-03-10", "2025-03-11")
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("空的源日期", func(t *testing.T) {
		result, err := p.CopyDay(memberActor(store), 1, "2025-03-10", "2025-03-11")
		require.NoError(t, err)
		assert.Equal(t, 0, result.Copied)
		assert.Equal(t, 0, result.Skipped)
	})
}

func TestQuickSchedule(t *testing.T) {
	p, store := newTestPlanner()
	seedBrief(store, 20, "春季活动", domain.BriefStatusActive)
	seedTask(store, 10, 20, 1, "写文案", domain.TaskStatusTodo, 120, 500)

	t.Run("未来日期从网格起点开始找", func(t *testing.T) {
		block, err := p.QuickSchedule(memberActor(store), 10, "2025-03-14")
		require.NoError(t, err)

		assert.Equal(t, int32(660), block.StartTime)
		assert.Equal(t, int32(780), block.EndTime)
		assert.Equal(t, domain.BlockTypeBriefTask, block.Type)
		require.NotNil(t, block.TaskID)
		assert.Equal(t, int64(10), *block.TaskID)
		require.NotNil(t, block.BriefID)
		assert.Equal(t, int64(20), *block.BriefID)
		assert.Equal(t, "写文案", block.Title)
	})

	t.Run("排今天从当前时刻向后找", func(t *testing.T) {
		// 固定时钟是 14:30，即第 870 分钟，刚好在刻度上
		block, err := p.QuickSchedule(memberActor(store), 10, testToday)
		require.NoError(t, err)
		assert.Equal(t, int32(870), block.StartTime)
	})

	t.Run("超长任务压到一个工作日", func(t *testing.T) {
		seedTask(store, 11, 20, 1, "马拉松任务", domain.TaskStatusTodo, 2000, 500)
		block, err := p.QuickSchedule(memberActor(store), 11, "2025-03-21")
		require.NoError(t, err)
		assert.Equal(t, int32(540), block.Duration())
	})

	t.Run("任务不存在", func(t *testing.T) {
		_, err := p.QuickSchedule(memberActor(store), 9999, "2025-03-14")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
