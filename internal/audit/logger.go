package audit

import (
	"encoding/json"
	"unicode/utf8"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	entry := models.AuditLog{
		Action:        ev.Action,
		UserID:        ev.UserID,
		EntityType:    ev.EntityType,
		EntityID:      ev.EntityID,
		OldValues:     snapshot(ev.OldValues),
		NewValues:     snapshot(ev.NewValues),
		SubmitterName: ev.SubmitterName,
		IPAddress:     ev.IPAddress,
		UserAgent:     truncate(ev.UserAgent, 255),
	}

	return l.db.Create(&entry).Error
}

func snapshot(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// truncate corta em até max bytes sem partir um caractere UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
