package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

// memStore 是测试用的内存版 Store，单测内没有并发，不需要加锁
type memStore struct {
	nextID        int64
	blocks        map[int64]*domain.ScheduleBlock
	tasks         map[int64]*domain.Task
	briefs        map[int64]*domain.Brief
	users         map[int64]*domain.User
	notes         map[string]*domain.DailyNote
	notifications []*domain.Notification
}

func newMemStore() *memStore {
	return &memStore{
		blocks: map[int64]*domain.ScheduleBlock{},
		tasks:  map[int64]*domain.Task{},
		briefs: map[int64]*domain.Brief{},
		users:  map[int64]*domain.User{},
		notes:  map[string]*domain.DailyNote{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) PlaceBlock(block *domain.ScheduleBlock, decide func(existing []*domain.ScheduleBlock) error) error {
	existing, err := s.ListBlocksForDate(block.UserID, block.Date)
	if err != nil {
		return err
	}
	if err := decide(existing); err != nil {
		return err
	}

	if block.ID == 0 {
		block.ID = s.id()
	} else if _, ok := s.blocks[block.ID]; !ok {
		return domain.ErrNotFound
	}

	copied := *block
	s.blocks[block.ID] = &copied
	return nil
}

func (s *memStore) GetBlock(id int64) (*domain.ScheduleBlock, error) {
	b, ok := s.blocks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *memStore) DeleteBlock(id int64) error {
	if _, ok := s.blocks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.blocks, id)
	return nil
}

func (s *memStore) ListBlocksForDate(userID int64, date string) ([]*domain.ScheduleBlock, error) {
	blocks := []*domain.ScheduleBlock{}
	for _, b := range s.blocks {
		if b.UserID == userID && b.Date == date {
			copied := *b
			blocks = append(blocks, &copied)
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })
	return blocks, nil
}

func (s *memStore) ListBlockViewsForDate(userID int64, date string) ([]*domain.ScheduleBlockView, error) {
	blocks, err := s.ListBlocksForDate(userID, date)
	if err != nil {
		return nil, err
	}
	views := make([]*domain.ScheduleBlockView, len(blocks))
	for i, b := range blocks {
		views[i] = &domain.ScheduleBlockView{ScheduleBlock: *b}
		if b.BriefID != nil {
			if brief, ok := s.briefs[*b.BriefID]; ok {
				views[i].BriefTitle = &brief.Title
				views[i].TeamColor = brief.TeamColor
			}
		}
	}
	return views, nil
}

func (s *memStore) ListBlocksForDateAllUsers(date string) ([]*domain.ScheduleBlock, error) {
	blocks := []*domain.ScheduleBlock{}
	for _, b := range s.blocks {
		if b.Date == date {
			copied := *b
			blocks = append(blocks, &copied)
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })
	return blocks, nil
}

func (s *memStore) GetTask(id int64) (*domain.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *memStore) UpdateTaskSortOrder(task *domain.Task) error {
	if _, ok := s.tasks[task.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *memStore) ListTasksByAssignee(userID int64) ([]*domain.TaskWithBrief, error) {
	tasks := []*domain.TaskWithBrief{}
	for _, t := range s.tasks {
		if t.AssigneeID != userID {
			continue
		}
		brief, ok := s.briefs[t.BriefID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		tasks = append(tasks, &domain.TaskWithBrief{
			Task:        *t,
			BriefTitle:  brief.Title,
			BriefStatus: brief.Status,
			TeamColor:   brief.TeamColor,
		})
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *memStore) GetUser(id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *memStore) ListActiveUsers() ([]*domain.User, error) {
	users := []*domain.User{}
	for _, u := range s.users {
		if u.IsActive {
			copied := *u
			users = append(users, &copied)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func noteKey(userID int64, date string) string {
	return fmt.Sprintf("%d|%s", userID, date)
}

func (s *memStore) UpsertDailyNote(note *domain.DailyNote) error {
	key := noteKey(note.UserID, note.Date)
	if existing, ok := s.notes[key]; ok {
		note.ID = existing.ID
	} else {
		note.ID = s.id()
	}
	copied := *note
	s.notes[key] = &copied
	return nil
}

func (s *memStore) GetDailyNote(userID int64, date string) (*domain.DailyNote, error) {
	n, ok := s.notes[noteKey(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *n
	return &copied, nil
}

func (s *memStore) InsertNotification(n *domain.Notification) error {
	n.ID = s.id()
	copied := *n
	s.notifications = append(s.notifications, &copied)
	return nil
}

// 固定时钟：2025-03-12（周三）14:30，即当天第 870 分钟
var testClock = func() time.Time {
	return time.Date(2025, 3, 12, 14, 30, 0, 0, time.Local)
}

const (
	testToday = "2025-03-12"
)

// newTestPlanner 构造一个带固定时钟和基础数据的排程服务：
// 用户 1/2 是成员，3 是主管，4 是管理员，5 已离职
func newTestPlanner() (*Planner, *memStore) {
	store := newMemStore()
	store.users = map[int64]*domain.User{
		1: {ID: 1, Username: "chenjingxuan", FullName: "陈靖轩", Role: domain.RoleMember, IsActive: true},
		2: {ID: 2, Username: "linyutong", FullName: "林雨桐", Role: domain.RoleMember, IsActive: true},
		3: {ID: 3, Username: "wangzihao", FullName: "王子豪", Role: domain.RoleManager, IsActive: true},
		4: {ID: 4, Username: "admin", FullName: "管理员", Role: domain.RoleAdmin, IsActive: true},
		5: {ID: 5, Username: "lihaoran", FullName: "李浩然", Role: domain.RoleMember, IsActive: false},
	}
	store.nextID = 100
	return New(store, testClock), store
}

func memberActor(store *memStore) *domain.User  { return store.users[1] }
func member2Actor(store *memStore) *domain.User { return store.users[2] }
func managerActor(store *memStore) *domain.User { return store.users[3] }
func adminActor(store *memStore) *domain.User   { return store.users[4] }

func seedBrief(store *memStore, id int64, title string, status domain.BriefStatus) {
	store.briefs[id] = &domain.Brief{ID: id, Title: title, Status: status}
}

func seedTask(store *memStore, id, briefID, assigneeID int64, title string, status domain.TaskStatus, durationMinutes, sortOrder int32) {
	store.tasks[id] = &domain.Task{
		ID:              id,
		BriefID:         briefID,
		AssigneeID:      assigneeID,
		Title:           title,
		Status:          status,
		DurationMinutes: durationMinutes,
		SortOrder:       sortOrder,
	}
}

func seedBlock(store *memStore, userID int64, date string, start, end int32, createdBy int64) *domain.ScheduleBlock {
	block := &domain.ScheduleBlock{
		ID:        store.id(),
		UserID:    userID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Type:      domain.BlockTypePersonal,
		Title:     fmt.Sprintf("日程 %d", store.nextID),
		CreatedBy: createdBy,
		CreatedAt: testClock(),
	}
	store.blocks[block.ID] = block
	return block
}
