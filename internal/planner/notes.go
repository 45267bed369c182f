package planner

import (
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/schedule"
)

// SaveDailyNote 按 (用户, 日期) 维护一条自由文本备注，存在则更新内容
func (p *Planner) SaveDailyNote(actor *domain.User, date, content string) (*domain.DailyNote, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, domain.NewValidationError("日期格式必须为 YYYY-MM-DD")
	}

	note := &domain.DailyNote{
		UserID:    actor.ID,
		Date:      date,
		Content:   content,
		UpdatedAt: p.now(),
	}

	if err := p.store.UpsertDailyNote(note); err != nil {
		return nil, err
	}

	return note, nil
}

func (p *Planner) DailyNote(actor *domain.User, date string) (*domain.DailyNote, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	return p.store.GetDailyNote(actor.ID, date)
}
