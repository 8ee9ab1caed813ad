package appointment

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/audit"
	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

// fakeRepo guarda tudo em memória; Transaction apenas repassa o próprio repo.
type fakeRepo struct {
	barbers      map[uuid.UUID]*models.Barber
	services     map[uuid.UUID]*models.Service
	hours        map[uuid.UUID][]models.WorkingHours
	appointments []models.Appointment

	createErr error
	lookupErr error
	locks     int
	between   [2]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:  map[uuid.UUID]*models.Barber{},
		services: map[uuid.UUID]*models.Service{},
		hours:    map[uuid.UUID][]models.WorkingHours{},
	}
}

func (f *fakeRepo) GetBarber(_ context.Context, id uuid.UUID) (*models.Barber, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	b, ok := f.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) GetBarberByProfile(_ context.Context, profileID uuid.UUID) (*models.Barber, error) {
	for _, b := range f.barbers {
		if b.ProfileID == profileID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListBarbers(_ context.Context, activeOnly bool) ([]models.Barber, error) {
	var out []models.Barber
	for _, b := range f.barbers {
		if activeOnly && !b.Active {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeRepo) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	s, ok := f.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) ListServices(_ context.Context, barberID uuid.UUID, activeOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.BarberID != barberID || (activeOnly && !s.Active) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeRepo) CreateService(_ context.Context, s *models.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	f.services[s.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateService(_ context.Context, s *models.Service) error {
	cp := *s
	f.services[s.ID] = &cp
	return nil
}

func (f *fakeRepo) ServiceDurations(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	out := map[uuid.UUID]int{}
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out[id] = s.DurationMinutes
		}
	}
	return out, nil
}

func (f *fakeRepo) ListWorkingHours(_ context.Context, barberID uuid.UUID) ([]models.WorkingHours, error) {
	return f.hours[barberID], nil
}

func (f *fakeRepo) ReplaceWorkingHours(_ context.Context, barberID uuid.UUID, rows []models.WorkingHours) error {
	for i := range rows {
		rows[i].BarberID = barberID
	}
	f.hours[barberID] = rows
	return nil
}

func (f *fakeRepo) ListBlockingAppointments(_ context.Context, barberID uuid.UUID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && ap.AppointmentDate == date && ap.Status != string(domain.StatusCancelled) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) LockBarberDay(ctx context.Context, barberID uuid.UUID, date string) ([]models.Appointment, error) {
	f.locks++
	return f.ListBlockingAppointments(ctx, barberID, date)
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uuid.UUID) (*models.Appointment, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.BarberID == barberID {
			cp := ap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListAppointmentsForDate(_ context.Context, barberID uuid.UUID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && ap.AppointmentDate == date {
			out = append(out, f.preload(ap))
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsBetween(_ context.Context, barberID uuid.UUID, from, to string) ([]models.Appointment, error) {
	f.between = [2]string{from, to}
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && ap.AppointmentDate >= from && ap.AppointmentDate < to {
			out = append(out, f.preload(ap))
		}
	}
	return out, nil
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) preload(ap models.Appointment) models.Appointment {
	if s, ok := f.services[ap.ServiceID]; ok {
		cp := *s
		ap.Service = &cp
	}
	return ap
}

var _ domain.Repository = (*fakeRepo)(nil)

// memorySink coleta os eventos de auditoria.
type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *memorySink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *memorySink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}
