package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/availability"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/timezone"
)

// computeSlots busca expediente e durações e roda o calculador sobre os
// agendamentos já carregados (com ou sem lock, quem decide é o chamador).
func computeSlots(
	ctx context.Context,
	repo domain.Repository,
	log *zap.Logger,
	barberID uuid.UUID,
	date time.Time,
	duration int,
	existing []models.Appointment,
) ([]string, error) {

	hours, err := repo.ListWorkingHours(ctx, barberID)
	if err != nil {
		return nil, err
	}

	durations, err := repo.ServiceDurations(ctx, domain.ServiceIDs(existing))
	if err != nil {
		return nil, err
	}

	res := availability.Compute(availability.Input{
		Duration:     duration,
		Date:         date,
		WorkingHours: domain.ToRules(hours),
		Existing:     domain.ToExisting(existing, durations),
	})

	// TODO: decidir com produto se referência quebrada deve bloquear o dia
	// em vez de liberar o horário; por ora só registramos.
	for _, a := range res.Unresolved {
		log.Warn("appointment ignored in availability: service not resolved",
			zap.String("barber_id", barberID.String()),
			zap.String("date", date.Format(timezone.DateLayout)),
			zap.String("appointment_id", a.ID),
			zap.String("service_id", a.ServiceID),
			zap.String("start_time", a.StartTime),
		)
	}

	return res.Slots, nil
}
