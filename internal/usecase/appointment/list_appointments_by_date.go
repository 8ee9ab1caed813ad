package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/availability"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/dto"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if _, err := timezone.ParseDate(date, ""); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	appointments, err := uc.repo.ListAppointmentsForDate(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments), nil
}

func toListDTO(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:        ap.ID,
			Date:      ap.AppointmentDate,
			StartTime: ap.StartTime,
			EndTime:   ap.StartTime,
			Status:    ap.Status,
			Notes:     ap.Notes,
		}

		if ap.Client != nil {
			item.ClientName = ap.Client.FullName
		}

		// serviço removido: mostra o agendamento sem duração
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
			item.Price = ap.Service.Price
			item.DurationMinutes = ap.Service.DurationMinutes
			if start, ok := availability.ParseClock(ap.StartTime); ok {
				item.EndTime = availability.FormatClock(start + ap.Service.DurationMinutes)
			}
		}

		out = append(out, item)
	}
	return out
}
