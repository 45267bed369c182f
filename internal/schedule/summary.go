package schedule

import (
	"math"
	"sort"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

// Summarize 从一天的日程块计算统计信息
// 利用率的分母固定是 9 小时名义工作日，和展示网格的动态范围无关
func Summarize(blocks []*domain.ScheduleBlock) *domain.DailySummary {
	summary := &domain.DailySummary{
		BlockCount: len(blocks),
	}
	if len(blocks) == 0 {
		return summary
	}

	sorted := make([]*domain.ScheduleBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	for _, b := range sorted {
		if b.Type == domain.BlockTypeBriefTask {
			summary.BriefMinutes += b.Duration()
		} else {
			summary.PersonalMinutes += b.Duration()
		}
	}
	summary.TotalMinutes = summary.BriefMinutes + summary.PersonalMinutes

	// 最长空档：相邻两块之间的正向间隔
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].StartTime - sorted[i-1].EndTime
		if gap > summary.LongestGapMinutes {
			summary.LongestGapMinutes = gap
		}
	}

	// 最长连续时段：从每个块向后延伸，只要后续块的开始时间不晚于当前链的结束时间
	for i := range sorted {
		stretchEnd := sorted[i].EndTime
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].StartTime > stretchEnd {
				break
			}
			if sorted[j].EndTime > stretchEnd {
				stretchEnd = sorted[j].EndTime
			}
		}
		if span := stretchEnd - sorted[i].StartTime; span > summary.LongestStretchMinutes {
			summary.LongestStretchMinutes = span
		}
	}

	summary.UtilizationPct = int(math.Round(float64(summary.TotalMinutes) / float64(WorkdayMinutes) * 100))
	summary.TotalHours = RoundHours(summary.TotalMinutes)

	return summary
}

// RoundHours 将分钟数转为保留一位小数的小时数，用于展示
func RoundHours(minutes int32) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}
