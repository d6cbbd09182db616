package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	Username     string         `json:"username" gorm:"unique;not null"`
	Password     string         `json:"-" gorm:"not null"`
	Admin        bool           `json:"admin" gorm:"not null"`
	StorageQuota *int64         `json:"storage_quota"` // nil 表示使用全局默认配额
	StorageUsed  int64          `json:"storage_used" gorm:"not null;default:0"` // 已用存储空间 (Bytes)
	Images       []Image        `json:"-"`
}
