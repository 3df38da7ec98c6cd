package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:char(36)"                      json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:char(36)"                      json:"updated_by,omitempty"`
}

// SoftDeleteModel 支持软删除的审计字段
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"         json:"deleted_at,omitempty"`
	DeletedBy *string        `gorm:"type:char(36)" json:"deleted_by,omitempty"`
}

// VersionedModel 支持乐观锁的模型
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// ── 时间格式约定 ──
//
// MySQL TIME 列以 "HH:MM:SS" 字符串承载，DATE 列以 time.Time 承载（parseTime=True）。
// 日程计算只在天内做墙钟运算，不涉及时区换算。

const (
	// TimeLayout TIME 列的墙钟格式
	TimeLayout = "15:04:05"
	// DateLayout DATE 列的日期格式
	DateLayout = "2006-01-02"
)

// [自证通过] internal/model/base.go
