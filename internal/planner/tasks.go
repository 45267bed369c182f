package planner

import (
	"fmt"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/schedule"
)

// ReorderTaskPriority 调整任务的 sortOrder 并给任务负责人落一条站内通知
// 这是唯一带有实体之外可观测副作用的变更操作
func (p *Planner) ReorderTaskPriority(actor *domain.User, taskID int64, newSortOrder int32, reason string) (*domain.Task, *domain.User, error) {
	if actor == nil {
		return nil, nil, domain.ErrUnauthenticated
	}
	if !schedule.Allowed(schedule.OpReorderPriority, actor.Role, false) {
		return nil, nil, domain.ErrNotAuthorized
	}
	if newSortOrder < 0 {
		return nil, nil, domain.NewValidationError("sortOrder 不能为负数")
	}

	task, err := p.store.GetTask(taskID)
	if err != nil {
		return nil, nil, err
	}

	task.SortOrder = newSortOrder
	if err := p.store.UpdateTaskSortOrder(task); err != nil {
		return nil, nil, err
	}

	assignee, err := p.store.GetUser(task.AssigneeID)
	if err != nil {
		return nil, nil, err
	}

	content := fmt.Sprintf("%s 将任务「%s」的优先级调整为 %d（%s）", actor.FullName, task.Title, newSortOrder, schedule.PriorityTier(newSortOrder))
	if reason != "" {
		content += "，原因：" + reason
	}

	if err := p.store.InsertNotification(&domain.Notification{
		UserID:    task.AssigneeID,
		Title:     "任务优先级变更",
		Content:   content,
		CreatedAt: p.now(),
	}); err != nil {
		return nil, nil, err
	}

	return task, assignee, nil
}
