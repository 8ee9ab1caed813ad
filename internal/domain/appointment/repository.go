package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type Repository interface {
	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Barber, error)

	GetBarberByProfile(
		ctx context.Context,
		profileID uuid.UUID,
	) (*models.Barber, error)

	ListBarbers(
		ctx context.Context,
		activeOnly bool,
	) ([]models.Barber, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Service, error)

	ListServices(
		ctx context.Context,
		barberID uuid.UUID,
		activeOnly bool,
	) ([]models.Service, error)

	CreateService(
		ctx context.Context,
		s *models.Service,
	) error

	UpdateService(
		ctx context.Context,
		s *models.Service,
	) error

	// ServiceDurations devolve a duração (minutos) por serviço; ids que
	// não existem simplesmente não aparecem no mapa.
	ServiceDurations(
		ctx context.Context,
		ids []uuid.UUID,
	) (map[uuid.UUID]int, error)

	// -------- Working hours --------
	ListWorkingHours(
		ctx context.Context,
		barberID uuid.UUID,
	) ([]models.WorkingHours, error)

	ReplaceWorkingHours(
		ctx context.Context,
		barberID uuid.UUID,
		rows []models.WorkingHours,
	) error

	// -------- Availability --------
	// ListBlockingAppointments devolve os agendamentos não cancelados do dia.
	ListBlockingAppointments(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
	) ([]models.Appointment, error)

	// LockBarberDay trava a linha do barbeiro (FOR UPDATE) e devolve
	// ListBlockingAppointments. Serializa as reservas do barbeiro; só faz
	// sentido dentro de Transaction.
	LockBarberDay(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
	) ([]models.Appointment, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uuid.UUID,
		barberID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForDate(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
	) ([]models.Appointment, error)

	// ListAppointmentsBetween cobre o intervalo [from, to) em YYYY-MM-DD.
	ListAppointmentsBetween(
		ctx context.Context,
		barberID uuid.UUID,
		from string,
		to string,
	) ([]models.Appointment, error)

	// -------- Tx --------
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
