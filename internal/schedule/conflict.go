package schedule

import (
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

// Overlaps 判断两个时间段是否重叠，使用严格不等号：首尾相接不算重叠
func Overlaps(aStart, aEnd, bStart, bEnd int32) bool {
	return aStart < bEnd && bStart < aEnd
}

// FindConflicts 在 existing 中找出与 [start, end) 重叠的日程块，
// excludeID 用于更新场景下排除块自身（传 0 表示不排除）
func FindConflicts(existing []*domain.ScheduleBlock, start, end int32, excludeID int64) []*domain.ScheduleBlock {
	conflicts := []*domain.ScheduleBlock{}
	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if Overlaps(b.StartTime, b.EndTime, start, end) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// ValidateRange 校验时间范围的不变量，这一步永远先于冲突检测执行
func ValidateRange(start, end int32) error {
	if start < 0 {
		return domain.NewValidationError("开始时间不能早于 0:00")
	}
	if end > MinutesPerDay {
		return domain.NewValidationError("结束时间不能晚于 24:00")
	}
	if end <= start {
		return domain.NewValidationError("结束时间必须晚于开始时间")
	}
	return nil
}
