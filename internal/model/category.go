package model

import "time"

type Category struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	Name       string    `json:"name" gorm:"unique;not null"` // 名称唯一（不区分大小写，见 repo）
	ImageCount int64     `json:"image_count" gorm:"not null;default:0"` // 派生计数，随图片增删维护
}
