package models

import (
	"time"
)

type BaseModel struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"           json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"           json:"updatedAt"`
}
