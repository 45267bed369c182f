package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/repository"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/schedule"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/utils"
)

var briefSeeds = []struct {
	Title string
	Color string
}{
	{"品牌焕新项目", "#e11d48"},
	{"双十一营销企划", "#f59e0b"},
	{"小程序改版", "#10b981"},
	{"内容日历 Q4", "#3b82f6"},
	{"新品发布会", "#8b5cf6"},
}

var taskTitles = []string{
	"撰写文案初稿", "设计视觉稿", "整理竞品分析", "更新投放素材",
	"准备周会汇报", "校对落地页", "剪辑宣传视频", "回复客户反馈",
}

var durations = []struct {
	Label   string
	Minutes int32
}{
	{"30m", 30}, {"1h", 60}, {"2h", 120}, {"3h", 180}, {"1d", schedule.WorkdayMinutes},
}

// Seed 生成随机的用户、简报、任务和日程块，方便本地联调
func Seed(cfg *config.Config, repo *repository.Repository, userCount int) {
	// 简报
	briefs := make([]*domain.Brief, 0, len(briefSeeds))
	for _, bs := range briefSeeds {
		color := bs.Color
		brief := &domain.Brief{
			Title:     bs.Title,
			Status:    domain.BriefStatusActive,
			TeamColor: &color,
		}
		if rand.Intn(5) == 0 {
			brief.Status = domain.BriefStatusArchived
		}
		if err := repo.CreateBrief(brief); err != nil {
			slog.Error("创建简报失败", "error", err)
			return
		}
		briefs = append(briefs, brief)
	}

	today := time.Now().Format(schedule.DateLayout)

	for i := 0; i < userCount; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("生成随机用户失败", "error", err)
			return
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("创建用户失败", "username", user.Username, "error", err)
			continue
		}

		// 每个用户若干个任务
		taskNum := rand.Intn(4) + 2
		for j := 0; j < taskNum; j++ {
			brief := briefs[rand.Intn(len(briefs))]
			d := durations[rand.Intn(len(durations))]
			task := &domain.Task{
				BriefID:         brief.ID,
				AssigneeID:      user.ID,
				Title:           taskTitles[rand.Intn(len(taskTitles))],
				Status:          domain.TaskStatusTodo,
				Duration:        d.Label,
				DurationMinutes: d.Minutes,
				SortOrder:       int32(rand.Intn(8000)),
			}
			if rand.Intn(4) == 0 {
				task.Status = domain.TaskStatusDone
			}
			if err := repo.CreateTask(task); err != nil {
				slog.Error("创建任务失败", "error", err)
				continue
			}

			// 一部分任务直接排到今天的日历上
			if task.Status != domain.TaskStatusDone && rand.Intn(2) == 0 {
				start := schedule.WorkdayStart + int32(rand.Intn(6))*60
				end := start + schedule.CapDuration(task.DurationMinutes)
				if end > schedule.MinutesPerDay {
					end = schedule.MinutesPerDay
				}
				block := &domain.ScheduleBlock{
					UserID:    user.ID,
					Date:      today,
					StartTime: start,
					EndTime:   end,
					Type:      domain.BlockTypeBriefTask,
					TaskID:    &task.ID,
					BriefID:   &brief.ID,
					Title:     task.Title,
					Color:     brief.TeamColor,
					CreatedBy: user.ID,
					CreatedAt: time.Now(),
				}
				// 种子数据不需要冲突保护，直接落库
				if err := repo.PlaceBlock(block, func([]*domain.ScheduleBlock) error { return nil }); err != nil {
					slog.Error("创建日程块失败", "error", err)
				}
			}
		}

		slog.Info("已生成用户", "username", user.Username, "fullName", user.FullName, "role", user.Role)
	}
}
