package schedule

import (
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

// CapDuration 把时长压到一个名义工作日以内，防止跨多天的任务生成超长日程块
func CapDuration(minutes int32) int32 {
	if minutes > WorkdayMinutes {
		return WorkdayMinutes
	}
	if minutes <= 0 {
		return SlotStep
	}
	return minutes
}

// RoundUpToSlot 向上取整到 15 分钟刻度
func RoundUpToSlot(m int32) int32 {
	if m%SlotStep == 0 {
		return m
	}
	return (m/SlotStep + 1) * SlotStep
}

// NextFreeSlot 从 max(searchFrom, gridStart) 开始按 15 分钟步长线性向后探测，
// 返回第一个能容纳 duration 且与现有日程块不重叠的开始时间；
// 探测到网格末尾仍无空位时回退到网格起点
func NextFreeSlot(blocks []*domain.ScheduleBlock, duration, searchFrom, gridStart, gridEnd int32) int32 {
	start := gridStart
	if searchFrom > start {
		start = searchFrom
	}
	start = RoundUpToSlot(start)

	for s := start; s+duration <= gridEnd; s += SlotStep {
		if len(FindConflicts(blocks, s, s+duration, 0)) == 0 {
			return s
		}
	}

	return gridStart
}
