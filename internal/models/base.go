package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID gera o uuid no cliente quando ele ainda não veio preenchido,
// para funcionar igual em postgres e sqlite.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (b *Barber) BeforeCreate(_ *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

func (s *Service) BeforeCreate(_ *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

func (w *WorkingHours) BeforeCreate(_ *gorm.DB) error {
	assignID(&w.ID)
	return nil
}

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

func (l *AuditLog) BeforeCreate(_ *gorm.DB) error {
	assignID(&l.ID)
	return nil
}
