package models

import "time"

// ContactInfo tem no máximo uma linha; atualizar = upsert da primeira.
type ContactInfo struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"size:100" json:"email"`
	Phone         string    `gorm:"size:30" json:"phone"`
	TelegramLink  string    `gorm:"size:255" json:"telegram_link"`
	InstagramLink string    `gorm:"size:255" json:"instagram_link"`
	FacebookLink  string    `gorm:"size:255" json:"facebook_link"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}
