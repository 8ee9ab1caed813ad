package appointment

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/audit"
	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/availability"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID  uuid.UUID
	ClientID  uuid.UUID
	ServiceID uuid.UUID

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo       domain.Repository
	audit      *audit.Dispatcher
	log        *zap.Logger
	tz         string
	minAdvance int
	now        func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
	tz string,
	minAdvance int,
) *CreateAppointment {
	return &CreateAppointment{
		repo:       repo,
		audit:      audit,
		log:        log,
		tz:         tz,
		minAdvance: minAdvance,
		now:        time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Data / hora no fuso da barbearia
	// --------------------------------------------------
	date, err := timezone.ParseDate(in.Date, uc.tz)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	startMin, ok := availability.ParseClock(in.Time)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	hm := availability.FormatClock(startMin)

	// --------------------------------------------------
	// 2️⃣ Passado / antecedência mínima
	// --------------------------------------------------
	start := date.Add(time.Duration(startMin) * time.Minute)
	now := uc.now().In(date.Location())
	if start.Before(now.Add(time.Duration(uc.minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3️⃣ Barbeiro e serviço
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, notFound(err, "barber_not_found")
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFound(err, "service_not_found")
	}
	if !service.Active || service.BarberID != barber.ID {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// 4️⃣ Recalcula a agenda com o dia travado e grava
	// --------------------------------------------------
	ap := &models.Appointment{
		BarberID:        barber.ID,
		ClientID:        in.ClientID,
		ServiceID:       service.ID,
		AppointmentDate: in.Date,
		StartTime:       hm,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		existing, err := tx.LockBarberDay(ctx, barber.ID, in.Date)
		if err != nil {
			return err
		}

		slots, err := computeSlots(ctx, tx, uc.log, barber.ID, date, service.DurationMinutes, existing)
		if err != nil {
			return err
		}

		if !slices.Contains(slots, hm) {
			return httperr.ErrBusiness("slot_unavailable")
		}

		return tx.CreateAppointment(ctx, ap)
	})

	if err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") || httperr.IsConstraintConflict(err) {
			uc.audit.Dispatch(audit.Event{
				BarberID: barber.ID,
				ActorID:  audit.Ptr(in.ClientID),
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{
					"date":       in.Date,
					"time":       hm,
					"service_id": service.ID,
				},
			})
			return nil, httperr.ErrBusiness("slot_unavailable")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarberID: barber.ID,
		ActorID:  audit.Ptr(in.ClientID),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
	})

	ap.Service = service
	return ap, nil
}
