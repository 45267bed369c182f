package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

func TestCapDuration(t *testing.T) {
	tests := []struct {
		name    string
		minutes int32
		want    int32
	}{
		{"正常时长不变", 120, 120},
		{"刚好一个工作日", 540, 540},
		{"超长任务压到一个工作日", 960, 540},
		{"零时长回落到最小刻度", 0, SlotStep},
		{"负时长回落到最小刻度", -30, SlotStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapDuration(tt.minutes))
		})
	}
}

func TestRoundUpToSlot(t *testing.T) {
	tests := []struct {
		in   int32
		want int32
	}{
		{660, 660},
		{661, 675},
		{674, 675},
		{675, 675},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundUpToSlot(tt.in))
	}
}

func TestNextFreeSlot(t *testing.T) {
	block := func(start, end int32) *domain.ScheduleBlock {
		return &domain.ScheduleBlock{StartTime: start, EndTime: end}
	}

	t.Run("空表从网格起点开始", func(t *testing.T) {
		got := NextFreeSlot(nil, 60, 0, WorkdayStart, WorkdayEnd)
		assert.Equal(t, WorkdayStart, got)
	})

	t.Run("跳过已占用的时段", func(t *testing.T) {
		blocks := []*domain.ScheduleBlock{block(660, 780)}
		got := NextFreeSlot(blocks, 60, 0, WorkdayStart, WorkdayEnd)
		assert.Equal(t, int32(780), got)
	})

	t.Run("夹缝里的空位也能用", func(t *testing.T) {
		blocks := []*domain.ScheduleBlock{
			block(660, 720),
			block(780, 840),
		}
		got := NextFreeSlot(blocks, 60, 0, WorkdayStart, WorkdayEnd)
		assert.Equal(t, int32(720), got)
	})

	t.Run("夹缝太窄则继续向后", func(t *testing.T) {
		blocks := []*domain.ScheduleBlock{
			block(660, 720),
			block(750, 840),
		}
		got := NextFreeSlot(blocks, 60, 0, WorkdayStart, WorkdayEnd)
		assert.Equal(t, int32(840), got)
	})

	t.Run("searchFrom 之前的空位不考虑", func(t *testing.T) {
		got := NextFreeSlot(nil, 60, 900, WorkdayStart, WorkdayEnd)
		assert.Equal(t, int32(900), got)
	})

	t.Run("searchFrom 对齐到刻度", func(t *testing.T) {
		got := NextFreeSlot(nil, 60, 905, WorkdayStart, WorkdayEnd)
		assert.Equal(t, int32(915), got)
	})

	t.Run("全天排满时回退到网格起点", func(t *testing.T) {
		blocks := []*domain.ScheduleBlock{block(WorkdayStart, WorkdayEnd)}
		got := NextFreeSlot(blocks, 60, 0, WorkdayStart, WorkdayEnd)
		assert.Equal(t, WorkdayStart, got)
	})
}
