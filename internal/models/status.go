package models

import "time"

// OpenStatusName identifica o status aceito pelo formulário público.
const OpenStatusName = "open"

type Status struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
