package schedule

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

const (
	MinutesPerDay = 1440

	// 名义工作时段为 11:00 - 20:00，共 9 小时
	WorkdayStart   int32 = 660
	WorkdayEnd     int32 = 1200
	WorkdayMinutes int32 = WorkdayEnd - WorkdayStart

	SlotStep int32 = 15

	DateLayout = "2006-01-02"
)

// FormatMinutes 将零点起的分钟数格式化为 12 小时制的 "H:MM AM/PM"
func FormatMinutes(m int32) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	hour := m / 60
	minute := m % 60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour12, minute, period)
}

// ParseClock 是 FormatMinutes 的逆操作
func ParseClock(s string) (int32, error) {
	var hour, minute int32
	var period string
	if _, err := fmt.Sscanf(s, "%d:%d %s", &hour, &minute, &period); err != nil {
		return 0, fmt.Errorf("无法解析时间 %q: %w", s, err)
	}

	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("无法解析时间 %q", s)
	}

	switch period {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, fmt.Errorf("无法解析时间 %q", s)
	}

	return hour*60 + minute, nil
}

func FormatRange(start, end int32) string {
	return fmt.Sprintf("%s - %s", FormatMinutes(start), FormatMinutes(end))
}

// ParseDate 在本地时区的零点解析 YYYY-MM-DD，避免 UTC 偏移导致日期漂移
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("无法解析日期 %q: %w", date, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func AddDays(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, days)), nil
}

// WeekStart 返回 date 所在周的周一
func WeekStart(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}

	offset := (int(t.Weekday()) + 6) % 7
	return FormatDate(t.AddDate(0, 0, -offset)), nil
}

// WeekDates 返回从 weekStart 开始的连续 7 天
func WeekDates(weekStart string) ([]string, error) {
	t, err := ParseDate(weekStart)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = FormatDate(t.AddDate(0, 0, i))
	}
	return dates, nil
}

// IsWeekend: 周末仅用于紧急/加班安排，前端做视觉标记，但不禁止排程
func IsWeekend(date string) bool {
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// GridRange 计算展示网格的分钟范围：默认是名义工作时段，
// 如果某些日程块落在时段之外（加班等），网格按整点向外扩张使其可见
func GridRange(blocks []*domain.ScheduleBlock) (int32, int32) {
	start, end := WorkdayStart, WorkdayEnd
	for _, b := range blocks {
		if s := b.StartTime / 60 * 60; s < start {
			start = s
		}
		if e := (b.EndTime + 59) / 60 * 60; e > end {
			end = e
		}
	}
	if end > MinutesPerDay {
		end = MinutesPerDay
	}
	return start, end
}
