package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 房源类实体公共字段
type BaseModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// NullableString 空串视为 "无值"，落库为 NULL
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
