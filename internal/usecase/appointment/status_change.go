package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/audit"
	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

// StatusChangeInput identifica o agendamento (sempre do barbeiro) e quem
// pediu a mudança; ActorID vai para a auditoria.
type StatusChangeInput struct {
	BarberID      uuid.UUID
	ActorID       uuid.UUID
	AppointmentID uuid.UUID
}

// changeStatus carrega o agendamento do barbeiro, aplica a transição,
// grava e audita.
func changeStatus(
	ctx context.Context,
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	in StatusChangeInput,
	action string,
	apply func(*models.Appointment) error,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointmentForBarber(ctx, in.AppointmentID, in.BarberID)
	if err != nil {
		return nil, notFound(err, "appointment_not_found")
	}

	from := ap.Status
	if err := apply(ap); err != nil {
		return nil, err
	}

	if err := repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	dispatcher.Dispatch(audit.Event{
		BarberID: in.BarberID,
		ActorID:  audit.Ptr(in.ActorID),
		Action:   action,
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]string{"from": from, "to": ap.Status},
	})

	return ap, nil
}

// notFound traduz registro inexistente para o código de negócio; qualquer
// outra falha do banco sobe como está e vira 500.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
