package planner

import (
	"errors"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/schedule"
)

type CreateBlockInput struct {
	UserID      int64
	Date        string
	StartTime   int32
	EndTime     int32
	Type        domain.BlockType
	TaskID      *int64
	BriefID     *int64
	Title       string
	Description *string
	Color       *string
	Force       bool
}

type UpdateBlockInput struct {
	StartTime   *int32
	EndTime     *int32
	Title       *string
	Description *string
	Color       *string
	Completed   *bool
	Force       bool
}

// errSkipConflict: 复制整天时冲突不上报，作为跳过信号在内部流转
var errSkipConflict = errors.New("conflict skipped")

// conflictDecider 实现冲突裁决协议：
//   - 无冲突或显式 force -> 直接提交
//   - 所有冲突块都是操作者自己创建、且是在自己的日历上排程 -> 硬失败，
//     报出第一个冲突块的标题和时间段，没有覆盖选项
//   - 否则（任一冲突块由他人创建，或是在他人日历上排程）-> 返回结构化的
//     冲突列表，由调用方决定联系对方、取消还是强制提交
func (p *Planner) conflictDecider(actor *domain.User, calendarOwner int64, force bool, excludeID int64, start, end int32) DecideFunc {
	return func(existing []*domain.ScheduleBlock) error {
		conflicts := schedule.FindConflicts(existing, start, end, excludeID)
		if len(conflicts) == 0 || force {
			return nil
		}

		selfOnly := calendarOwner == actor.ID
		for _, c := range conflicts {
			if c.CreatedBy != actor.ID {
				selfOnly = false
				break
			}
		}

		if selfOnly {
			first := conflicts[0]
			return &domain.ConflictError{
				BlockTitle: first.Title,
				TimeRange:  schedule.FormatRange(first.StartTime, first.EndTime),
			}
		}

		cross := &domain.CrossConflictError{}
		for _, c := range conflicts {
			cross.Conflicts = append(cross.Conflicts, domain.ConflictingBlock{
				ID:        c.ID,
				Title:     c.Title,
				StartTime: c.StartTime,
				EndTime:   c.EndTime,
				TimeRange: schedule.FormatRange(c.StartTime, c.EndTime),
				CreatorID: c.CreatedBy,
			})
		}
		return cross
	}
}

// skipDecider: 复制整天使用的静默跳过策略
func (p *Planner) skipDecider(start, end int32) DecideFunc {
	return func(existing []*domain.ScheduleBlock) error {
		if len(schedule.FindConflicts(existing, start, end, 0)) > 0 {
			return errSkipConflict
		}
		return nil
	}
}

// fillCreatorNames 给结构化冲突信息补上创建者姓名
func (p *Planner) fillCreatorNames(err error) error {
	var cross *domain.CrossConflictError
	if !errors.As(err, &cross) {
		return err
	}

	names := map[int64]string{}
	for i, c := range cross.Conflicts {
		name, ok := names[c.CreatorID]
		if !ok {
			if creator, err := p.store.GetUser(c.CreatorID); err == nil {
				name = creator.FullName
			}
			names[c.CreatorID] = name
		}
		cross.Conflicts[i].CreatorName = name
	}
	return cross
}

func validateBlockLinks(blockType domain.BlockType, taskID, briefID *int64) error {
	switch blockType {
	case domain.BlockTypeBriefTask:
		if taskID == nil || briefID == nil {
			return domain.NewValidationError("任务类型的日程块必须关联任务和简报")
		}
	case domain.BlockTypePersonal:
		if taskID != nil || briefID != nil {
			return domain.NewValidationError("个人类型的日程块不能关联任务或简报")
		}
	default:
		return domain.NewValidationError("未知的日程块类型 %q", blockType)
	}
	return nil
}

func (p *Planner) CreateBlock(actor *domain.User, in *CreateBlockInput) (*domain.ScheduleBlock, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !schedule.Allowed(schedule.OpCreateBlock, actor.Role, in.UserID == actor.ID) {
		return nil, domain.ErrNotAuthorized
	}

	// 时间不变量永远先于冲突检测校验
	if err := schedule.ValidateRange(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	if _, err := schedule.ParseDate(in.Date); err != nil {
		return nil, domain.NewValidationError("日期格式必须为 YYYY-MM-DD")
	}
	if err := validateBlockLinks(in.Type, in.TaskID, in.BriefID); err != nil {
		return nil, err
	}

	block := &domain.ScheduleBlock{
		UserID:      in.UserID,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Type:        in.Type,
		TaskID:      in.TaskID,
		BriefID:     in.BriefID,
		Title:       in.Title,
		Description: in.Description,
		Color:       in.Color,
		CreatedBy:   actor.ID,
		CreatedAt:   p.now(),
	}

	decide := p.conflictDecider(actor, in.UserID, in.Force, 0, in.StartTime, in.EndTime)
	if err := p.store.PlaceBlock(block, decide); err != nil {
		return nil, p.fillCreatorNames(err)
	}

	return block, nil
}

func (p *Planner) UpdateBlock(actor *domain.User, blockID int64, in *UpdateBlockInput) (*domain.ScheduleBlock, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	block, err := p.store.GetBlock(blockID)
	if err != nil {
		return nil, err
	}

	if !schedule.Allowed(schedule.OpUpdateBlock, actor.Role, block.UserID == actor.ID) {
		return nil, domain.ErrNotAuthorized
	}

	// 只覆盖请求中出现的字段，其余保持原值
	timeChanged := false
	if in.StartTime != nil && *in.StartTime != block.StartTime {
		block.StartTime = *in.StartTime
		timeChanged = true
	}
	if in.EndTime != nil && *in.EndTime != block.EndTime {
		block.EndTime = *in.EndTime
		timeChanged = true
	}
	if in.Title != nil {
		block.Title = *in.Title
	}
	if in.Description != nil {
		block.Description = in.Description
	}
	if in.Color != nil {
		block.Color = in.Color
	}
	if in.Completed != nil {
		block.Completed = *in.Completed
	}

	decide := DecideFunc(func([]*domain.ScheduleBlock) error { return nil })
	if timeChanged {
		if err := schedule.ValidateRange(block.StartTime, block.EndTime); err != nil {
			return nil, err
		}
		// 重新检测冲突时要把块自身排除掉
		decide = p.conflictDecider(actor, block.UserID, in.Force, block.ID, block.StartTime, block.EndTime)
	}

	if err := p.store.PlaceBlock(block, decide); err != nil {
		return nil, p.fillCreatorNames(err)
	}

	return block, nil
}

func (p *Planner) DeleteBlock(actor *domain.User, blockID int64) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}

	block, err := p.store.GetBlock(blockID)
	if err != nil {
		return err
	}

	// 删除比更新更严格：只有本人或管理员可以删
	if !schedule.Allowed(schedule.OpDeleteBlock, actor.Role, block.UserID == actor.ID) {
		return domain.ErrNotAuthorized
	}

	return p.store.DeleteBlock(blockID)
}

type CopyDayResult struct {
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
}

// CopyDay 把 sourceDate 的日程块逐个克隆到 targetDate：
// 关联任务已完成的块跳过，与目标日期现有日程冲突的块也静默跳过（计数，不报错）
// 每个块是一次独立的事务，不构成原子批量操作
func (p *Planner) CopyDay(actor *domain.User, userID int64, sourceDate, targetDate string) (*CopyDayResult, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !schedule.Allowed(schedule.OpCreateBlock, actor.Role, userID == actor.ID) {
		return nil, domain.ErrNotAuthorized
	}

	if _, err := schedule.ParseDate(sourceDate); err != nil {
		return nil, domain.NewValidationError("日期格式必须为 YYYY-MM-DD")
	}
	if _, err := schedule.ParseDate(targetDate); err != nil {
		return nil, domain.NewValidationError("日期格式必须为 YYYY-MM-DD")
	}
	if sourceDate == targetDate {
		return nil, domain.NewValidationError("源日期和目标日期不能相同")
	}

	source, err := p.store.ListBlocksForDate(userID, sourceDate)
	if err != nil {
		return nil, err
	}

	result := &CopyDayResult{}
	for _, b := range source {
		// 关联的任务已经完成的不再复制
		if b.TaskID != nil {
			task, err := p.store.GetTask(*b.TaskID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					result.Skipped++
					continue
				}
				return nil, err
			}
			if task.Status == domain.TaskStatusDone {
				result.Skipped++
				continue
			}
		}

		clone := *b
		clone.ID = 0
		clone.Date = targetDate
		clone.CreatedAt = p.now()

		if err := p.store.PlaceBlock(&clone, p.skipDecider(clone.StartTime, clone.EndTime)); err != nil {
			if errors.Is(err, errSkipConflict) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Copied++
	}

	return result, nil
}

// QuickSchedule 把一个待排任务放到 date 的第一个空位上
// 时长不超过一个名义工作日；排今天时从当前时刻（向上取整到一刻钟）开始向后找
func (p *Planner) QuickSchedule(actor *domain.User, taskID int64, date string) (*domain.ScheduleBlock, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	task, err := p.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	blocks, err := p.store.ListBlocksForDate(task.AssigneeID, date)
	if err != nil {
		return nil, err
	}

	duration := schedule.CapDuration(task.DurationMinutes)
	gridStart, gridEnd := schedule.GridRange(blocks)

	var searchFrom int32
	if date == p.today() {
		searchFrom = schedule.RoundUpToSlot(p.nowMinutes())
	}

	start := schedule.NextFreeSlot(blocks, duration, searchFrom, gridStart, gridEnd)
	end := start + duration
	if end > schedule.MinutesPerDay {
		end = schedule.MinutesPerDay
	}

	return p.CreateBlock(actor, &CreateBlockInput{
		UserID:    task.AssigneeID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Type:      domain.BlockTypeBriefTask,
		TaskID:    &task.ID,
		BriefID:   &task.BriefID,
		Title:     task.Title,
	})
}
