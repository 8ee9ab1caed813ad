package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/config"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

// Um horário só pode ter um agendamento ativo por barbeiro. Segunda
// barreira: a reserva já serializa pela trava na linha do barbeiro, mas
// este índice também pega escrita que não passa pelo caso de uso.
const activeSlotIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_barber_slot
ON appointments (barber_id, appointment_date, start_time)
WHERE status <> 'cancelled'`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.String("dialect", db.Dialector.Name()))
	return db, nil
}

// Migrate cria/atualiza as tabelas. O índice parcial só existe no postgres.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Barber{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(activeSlotIndex).Error; err != nil {
			return fmt.Errorf("migrate active slot index: %w", err)
		}
	}

	return nil
}
