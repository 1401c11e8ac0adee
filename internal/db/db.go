package db

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/autoimport-crm/internal/config"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "sqlite":
		db, err = OpenSQLite(cfg.DBUrl)
	default:
		db, err = gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
			PrepareStmt: true,
			Logger:      gormlogger.Default.LogMode(gormLogLevel(cfg)),
		})
	}
	if err != nil {
		log.Fatal("failed to connect database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	if err := Seed(db); err != nil {
		log.Fatal("failed to seed", zap.Error(err))
	}

	return db
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.IsDevelopment() {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.Status{},
		&models.Tag{},
		&models.Submission{},
		&models.SubmissionTag{},
		&models.AuditLog{},
		&models.ContactInfo{},
	)
}

// Seed garante os status padrão; "open" é obrigatório para o formulário público.
func Seed(db *gorm.DB) error {
	for _, name := range []string{models.OpenStatusName, "in progress", "closed"} {
		var count int64
		if err := db.Model(&models.Status{}).
			Where("LOWER(name) = ?", strings.ToLower(name)).
			Count(&count).Error; err != nil {
			return fmt.Errorf("count status %q: %w", name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.Status{Name: name}).Error; err != nil {
			return fmt.Errorf("create status %q: %w", name, err)
		}
	}
	return nil
}
