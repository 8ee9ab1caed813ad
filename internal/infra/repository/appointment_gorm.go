package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetBarberByProfile(
	ctx context.Context,
	profileID uuid.UUID,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) ListBarbers(
	ctx context.Context,
	activeOnly bool,
) ([]models.Barber, error) {

	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}
	return barbers, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	barberID uuid.UUID,
	activeOnly bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (r *AppointmentGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *AppointmentGormRepository) UpdateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *AppointmentGormRepository) ServiceDurations(
	ctx context.Context,
	ids []uuid.UUID,
) (map[uuid.UUID]int, error) {

	out := make(map[uuid.UUID]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.Service
	if err := r.db.WithContext(ctx).
		Select("id", "duration_minutes").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("service durations: %w", err)
	}

	for _, s := range rows {
		out[s.ID] = s.DurationMinutes
	}
	return out, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) ListWorkingHours(
	ctx context.Context,
	barberID uuid.UUID,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC").
		Find(&hours).Error; err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	return hours, nil
}

func (r *AppointmentGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	barberID uuid.UUID,
	rows []models.WorkingHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].BarberID = barberID
		}
		return tx.Create(&rows).Error
	})
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.Appointment, error) {

	return r.blocking(r.db.WithContext(ctx), barberID, date)
}

func (r *AppointmentGormRepository) LockBarberDay(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.Appointment, error) {

	// A trava é na linha do barbeiro: travar só os agendamentos não
	// protege dia vazio nem enxerga o que outra transação acabou de inserir.
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", barberID).
		First(&models.Barber{}).Error; err != nil {
		return nil, fmt.Errorf("lock barber: %w", err)
	}

	return r.blocking(r.db.WithContext(ctx), barberID, date)
}

func (r *AppointmentGormRepository) blocking(
	q *gorm.DB,
	barberID uuid.UUID,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := q.
		Select("id", "service_id", "start_time", "status").
		Where(
			"barber_id = ? AND appointment_date = ? AND status <> ?",
			barberID, date, string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list blocking appointments: %w", err)
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uuid.UUID,
	barberID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForDate(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("barber_id = ? AND appointment_date = ?", barberID, date).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsBetween(
	ctx context.Context,
	barberID uuid.UUID,
	from string,
	to string,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND appointment_date >= ? AND appointment_date < ?",
			barberID, from, to,
		).
		Order("appointment_date ASC, start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("list appointments between: %w", err)
	}

	return apps, nil
}

// --------------------------------------------------
// Tx
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
