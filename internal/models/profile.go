package models

import "time"

// Profile compartilha o id com a Account do provedor de identidade.
type Profile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"size:150" json:"full_name"`
	Username  string    `gorm:"size:50" json:"username"`
	Website   string    `gorm:"size:255" json:"website"`
	AvatarURL string    `gorm:"size:255" json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
