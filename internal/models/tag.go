package models

import "time"

const DefaultTagHex = "#6b7280"

type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Hex       string    `gorm:"size:7;default:'#6b7280'" json:"hex"`
	CreatedAt time.Time `json:"created_at"`
}
