package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/availability"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type AvailabilityInput struct {
	BarberID  uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
}

// ToRules converte as linhas de working_hours para o formato do calculador.
func ToRules(rows []models.WorkingHours) []availability.WorkingHourRule {
	rules := make([]availability.WorkingHourRule, 0, len(rows))
	for _, wh := range rows {
		rules = append(rules, availability.WorkingHourRule{
			DayOfWeek:  wh.DayOfWeek,
			StartTime:  wh.StartTime,
			EndTime:    wh.EndTime,
			BreakStart: wh.BreakStart,
			BreakEnd:   wh.BreakEnd,
			IsActive:   wh.IsActive,
		})
	}
	return rules
}

// ToExisting resolve a duração de cada agendamento pelo serviço dele.
// Serviço ausente no mapa vira duração zero (não resolvido).
func ToExisting(
	aps []models.Appointment,
	durations map[uuid.UUID]int,
) []availability.ExistingAppointment {

	out := make([]availability.ExistingAppointment, 0, len(aps))
	for _, ap := range aps {
		if !Status(ap.Status).Blocks() {
			continue
		}
		out = append(out, availability.ExistingAppointment{
			ID:              ap.ID.String(),
			ServiceID:       ap.ServiceID.String(),
			StartTime:       ap.StartTime,
			ServiceDuration: durations[ap.ServiceID],
		})
	}
	return out
}

// ServiceIDs lista os serviços distintos referenciados pelos agendamentos.
func ServiceIDs(aps []models.Appointment) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(aps))
	ids := make([]uuid.UUID, 0, len(aps))
	for _, ap := range aps {
		if _, ok := seen[ap.ServiceID]; ok {
			continue
		}
		seen[ap.ServiceID] = struct{}{}
		ids = append(ids, ap.ServiceID)
	}
	return ids
}
