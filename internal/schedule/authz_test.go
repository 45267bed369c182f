package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		role domain.Role
		own  bool
		want bool
	}{
		{"成员创建自己的日程", OpCreateBlock, domain.RoleMember, true, true},
		{"成员不能替他人创建", OpCreateBlock, domain.RoleMember, false, false},
		{"主管替他人创建", OpCreateBlock, domain.RoleManager, false, true},

		{"成员更新自己的日程", OpUpdateBlock, domain.RoleMember, true, true},
		{"成员不能更新他人的日程", OpUpdateBlock, domain.RoleMember, false, false},
		{"主管更新他人的日程", OpUpdateBlock, domain.RoleManager, false, true},
		{"管理员更新他人的日程", OpUpdateBlock, domain.RoleAdmin, false, true},

		// 删除比更新更严格：主管不能删除他人的日程块
		{"成员删除自己的日程", OpDeleteBlock, domain.RoleMember, true, true},
		{"主管删除自己的日程", OpDeleteBlock, domain.RoleManager, true, true},
		{"主管不能删除他人的日程", OpDeleteBlock, domain.RoleManager, false, false},
		{"管理员删除他人的日程", OpDeleteBlock, domain.RoleAdmin, false, true},

		{"成员不能调整优先级", OpReorderPriority, domain.RoleMember, true, false},
		{"主管调整优先级", OpReorderPriority, domain.RoleManager, false, true},

		{"成员不能查看员工概况", OpViewEmployees, domain.RoleMember, false, false},
		{"主管查看员工概况", OpViewEmployees, domain.RoleManager, false, true},
		{"管理员查看员工概况", OpViewEmployees, domain.RoleAdmin, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.op, tt.role, tt.own))
		})
	}
}

func TestAllowedUnknown(t *testing.T) {
	assert.False(t, Allowed(Operation("unknown"), domain.RoleAdmin, true))
	assert.False(t, Allowed(OpCreateBlock, domain.Role("unknown"), true))
}

func TestPriorityTier(t *testing.T) {
	tests := []struct {
		sortOrder int32
		want      string
	}{
		{1, "high"},
		{1000, "high"},
		{1001, "medium"},
		{5000, "medium"},
		{5001, "low"},
		{99999, "low"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PriorityTier(tt.sortOrder))
	}
}
