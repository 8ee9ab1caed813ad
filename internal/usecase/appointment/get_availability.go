package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/availability"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/timezone"
)

type GetAvailability struct {
	repo       domain.Repository
	log        *zap.Logger
	minAdvance int
	now        func() time.Time
}

// NewGetAvailability recebe a antecedência mínima em minutos; zero desliga.
func NewGetAvailability(
	repo domain.Repository,
	log *zap.Logger,
	minAdvance int,
) *GetAvailability {
	return &GetAvailability{
		repo:       repo,
		log:        log,
		minAdvance: minAdvance,
		now:        time.Now,
	}
}

// Execute devolve os horários livres (HH:MM) do barbeiro para o serviço
// na data informada. in.Date já deve estar no fuso da barbearia.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFound(err, "service_not_found")
	}
	if !service.Active || service.BarberID != in.BarberID {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	now := uc.now().In(in.Date.Location())
	if in.Date.Before(startOfDay(now)) {
		return []string{}, nil
	}

	existing, err := uc.repo.ListBlockingAppointments(
		ctx,
		in.BarberID,
		in.Date.Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	slots, err := computeSlots(
		ctx,
		uc.repo,
		uc.log,
		in.BarberID,
		in.Date,
		service.DurationMinutes,
		existing,
	)
	if err != nil {
		return nil, err
	}

	// hoje: nada no passado nem dentro da antecedência mínima
	if timezone.SameDay(in.Date, now) {
		slots = dropBefore(slots, timezone.MinutesOfDay(now)+uc.minAdvance)
	}

	return slots, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dropBefore(slots []string, cutoff int) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if m, ok := availability.ParseClock(s); ok && m >= cutoff {
			out = append(out, s)
		}
	}
	return out
}
