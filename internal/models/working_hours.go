package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkingHours guarda o expediente de um dia da semana (domingo = 0).
// Horários em "HH:MM", relógio local do barbeiro.
type WorkingHours struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID uuid.UUID `gorm:"type:uuid;index;not null" json:"barber_id"`

	DayOfWeek int `gorm:"not null" json:"day_of_week"`

	StartTime  string `gorm:"size:8" json:"start_time"`
	EndTime    string `gorm:"size:8" json:"end_time"`
	BreakStart string `gorm:"size:8" json:"break_start"`
	BreakEnd   string `gorm:"size:8" json:"break_end"`
	IsActive   bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
