package schedule

import (
	"sort"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

// Slot: 某个日程块在渲染时占用的列信息，left = Column/TotalColumns，width = 1/TotalColumns
type Slot struct {
	Column       int `json:"column"`
	TotalColumns int `json:"totalColumns"`
}

// Layout 为一天内的日程块分配渲染列（区间划分问题的贪心解法）：
//  1. 按开始时间升序排序，开始时间相同的按时长降序，保证簇内最长的块占第 0 列
//  2. 将排序后的序列切分为互相传递重叠的极大簇：下一个块的开始时间
//     不早于当前簇的最大结束时间时，开启新簇
//  3. 簇内按序处理，每个块放入第一个尾块结束时间不晚于其开始时间的列（first-fit），
//     没有可用列则新开一列
//  4. 簇处理完后，簇内所有块的 TotalColumns 都等于该簇用掉的列数
//
// 首尾相接（end == start）不算重叠，不会被顶进新列
func Layout(blocks []*domain.ScheduleBlock) map[int64]Slot {
	result := make(map[int64]Slot, len(blocks))
	if len(blocks) == 0 {
		return result
	}

	sorted := make([]*domain.ScheduleBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartTime != sorted[j].StartTime {
			return sorted[i].StartTime < sorted[j].StartTime
		}
		return sorted[i].Duration() > sorted[j].Duration()
	})

	cluster := make([]*domain.ScheduleBlock, 0, len(sorted))
	clusterEnd := int32(0)

	flush := func() {
		if len(cluster) == 0 {
			return
		}

		// columnEnds[c] 是第 c 列当前链尾的结束时间
		columnEnds := []int32{}
		columns := make(map[int64]int, len(cluster))

		for _, b := range cluster {
			placed := false
			for c, end := range columnEnds {
				if end <= b.StartTime {
					columnEnds[c] = b.EndTime
					columns[b.ID] = c
					placed = true
					break
				}
			}
			if !placed {
				columnEnds = append(columnEnds, b.EndTime)
				columns[b.ID] = len(columnEnds) - 1
			}
		}

		for _, b := range cluster {
			result[b.ID] = Slot{
				Column:       columns[b.ID],
				TotalColumns: len(columnEnds),
			}
		}

		cluster = cluster[:0]
	}

	for _, b := range sorted {
		if len(cluster) > 0 && b.StartTime >= clusterEnd {
			flush()
		}
		cluster = append(cluster, b)
		if b.EndTime > clusterEnd {
			clusterEnd = b.EndTime
		}
	}
	flush()

	return result
}
