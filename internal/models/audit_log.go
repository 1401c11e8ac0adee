package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	Action    string    `gorm:"size:100;not null;index" json:"action"`

	// UserID nulo e ActorName vazio indicam uma ação pública (anônima).
	UserID  *string  `gorm:"type:uuid;index" json:"user_id"`
	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"profile,omitempty"`

	// ActorName guarda o nome do autor quando a conta dele é removida.
	ActorName string `gorm:"size:150" json:"actor_name"`

	EntityType string         `gorm:"size:50" json:"entity_type"`
	EntityID   string         `gorm:"size:64" json:"entity_id"`
	OldValues  datatypes.JSON `json:"old_values"`
	NewValues  datatypes.JSON `json:"new_values"`

	SubmitterName string `gorm:"size:150" json:"submitter_name"`
	IPAddress     string `gorm:"size:64" json:"ip_address"`
	UserAgent     string `gorm:"size:255" json:"user_agent"`
}
