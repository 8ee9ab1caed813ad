package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/audit"
	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/availability"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/timezone"
)

const tz = "America/Sao_Paulo"

type scenario struct {
	repo    *fakeRepo
	barber  models.Barber
	haircut models.Service
	client  uuid.UUID
}

// newScenario monta um barbeiro que atende segunda das 09:00 às 12:00
// com um corte de 30 minutos já marcado às 09:30 de 2026-10-19.
func newScenario(t *testing.T) *scenario {
	t.Helper()

	s := &scenario{repo: newFakeRepo(), client: uuid.New()}

	s.barber = models.Barber{ID: uuid.New(), ProfileID: uuid.New(), Name: "Zé", Active: true}
	s.repo.barbers[s.barber.ID] = &s.barber

	s.haircut = models.Service{ID: uuid.New(), BarberID: s.barber.ID, Name: "Corte", DurationMinutes: 30, Price: 40, Active: true}
	s.repo.services[s.haircut.ID] = &s.haircut

	s.repo.hours[s.barber.ID] = []models.WorkingHours{
		{BarberID: s.barber.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
	}

	require.NoError(t, s.repo.CreateAppointment(context.Background(), &models.Appointment{
		BarberID:        s.barber.ID,
		ClientID:        s.client,
		ServiceID:       s.haircut.ID,
		AppointmentDate: "2026-10-19",
		StartTime:       "09:30",
		Status:          string(domain.StatusConfirmed),
	}))

	return s
}

// byBarber é a mudança de status pedida pelo próprio barbeiro.
func (s *scenario) byBarber(appointmentID uuid.UUID) StatusChangeInput {
	return StatusChangeInput{
		BarberID:      s.barber.ID,
		ActorID:       s.barber.ProfileID,
		AppointmentID: appointmentID,
	}
}

func at(t *testing.T, date string, hour, minute int) time.Time {
	t.Helper()
	d, err := timezone.ParseDate(date, tz)
	require.NoError(t, err)
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func availabilityInput(t *testing.T, s *scenario, date string) domain.AvailabilityInput {
	t.Helper()
	d, err := timezone.ParseDate(date, tz)
	require.NoError(t, err)
	return domain.AvailabilityInput{BarberID: s.barber.ID, ServiceID: s.haircut.ID, Date: d}
}

// --------------------------------------------------
// GetAvailability
// --------------------------------------------------

func TestGetAvailability_OneBookingInTheMorning(t *testing.T) {
	s := newScenario(t)
	uc := NewGetAvailability(s.repo, zap.NewNop(), 0)
	uc.now = func() time.Time { return at(t, "2026-10-16", 10, 0) }

	got, err := uc.Execute(context.Background(), availabilityInput(t, s, "2026-10-19"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "10:30", "11:00", "11:30"}, got)
}

func TestGetAvailability_CancelledDoesNotBlock(t *testing.T) {
	s := newScenario(t)
	s.repo.appointments[0].Status = string(domain.StatusCancelled)
	uc := NewGetAvailability(s.repo, zap.NewNop(), 0)
	uc.now = func() time.Time { return at(t, "2026-10-16", 10, 0) }

	got, err := uc.Execute(context.Background(), availabilityInput(t, s, "2026-10-19"))
	require.NoError(t, err)
	assert.Contains(t, got, "09:30")
	assert.Len(t, got, 6)
}

func TestGetAvailability_ServiceNotFound(t *testing.T) {
	s := newScenario(t)
	uc := NewGetAvailability(s.repo, zap.NewNop(), 0)

	other := models.Service{ID: uuid.New(), BarberID: uuid.New(), DurationMinutes: 30, Active: true}
	inactive := models.Service{ID: uuid.New(), BarberID: s.barber.ID, DurationMinutes: 30, Active: false}
	s.repo.services[other.ID] = &other
	s.repo.services[inactive.ID] = &inactive

	for name, id := range map[string]uuid.UUID{
		"missing":      uuid.New(),
		"other barber": other.ID,
		"inactive":     inactive.ID,
	} {
		t.Run(name, func(t *testing.T) {
			in := availabilityInput(t, s, "2026-10-19")
			in.ServiceID = id

			_, err := uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, "service_not_found"), "got %v", err)
		})
	}
}

func TestGetAvailability_PastDateIsEmpty(t *testing.T) {
	s := newScenario(t)
	uc := NewGetAvailability(s.repo, zap.NewNop(), 0)
	uc.now = func() time.Time { return at(t, "2026-10-20", 8, 0) }

	got, err := uc.Execute(context.Background(), availabilityInput(t, s, "2026-10-19"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetAvailability_TodayRespectsLeadTime(t *testing.T) {
	s := newScenario(t)
	uc := NewGetAvailability(s.repo, zap.NewNop(), 30)
	uc.now = func() time.Time { return at(t, "2026-10-19", 10, 10) }

	got, err := uc.Execute(context.Background(), availabilityInput(t, s, "2026-10-19"))
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00", "11:30"}, got)
}

func TestGetAvailability_LogsUnresolvedAppointments(t *testing.T) {
	s := newScenario(t)
	core, logs := observer.New(zapcore.WarnLevel)

	orphan := models.Appointment{
		ID:              uuid.New(),
		BarberID:        s.barber.ID,
		ClientID:        s.client,
		ServiceID:       uuid.New(),
		AppointmentDate: "2026-10-19",
		StartTime:       "11:00",
		Status:          string(domain.StatusPending),
	}
	s.repo.appointments = append(s.repo.appointments, orphan)

	uc := NewGetAvailability(s.repo, zap.New(core), 0)
	uc.now = func() time.Time { return at(t, "2026-10-16", 10, 0) }

	got, err := uc.Execute(context.Background(), availabilityInput(t, s, "2026-10-19"))
	require.NoError(t, err)

	// sem duração conhecida o horário continua livre
	assert.Contains(t, got, "11:00")

	entries := logs.FilterMessage("appointment ignored in availability: service not resolved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, orphan.ID.String(), entries[0].ContextMap()["appointment_id"])
	assert.Equal(t, orphan.ServiceID.String(), entries[0].ContextMap()["service_id"])
}

// --------------------------------------------------
// CreateAppointment
// --------------------------------------------------

func newCreate(t *testing.T, s *scenario, sink *memorySink) (*CreateAppointment, *audit.Dispatcher) {
	t.Helper()
	d := audit.NewDispatcher(sink, zap.NewNop())
	uc := NewCreateAppointment(s.repo, d, zap.NewNop(), tz, 0)
	uc.now = func() time.Time { return at(t, "2026-10-16", 10, 0) }
	return uc, d
}

func (s *scenario) input(date, hm string) CreateAppointmentInput {
	return CreateAppointmentInput{
		BarberID:  s.barber.ID,
		ClientID:  s.client,
		ServiceID: s.haircut.ID,
		Date:      date,
		Time:      hm,
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	s := newScenario(t)
	sink := &memorySink{}
	uc, d := newCreate(t, s, sink)

	ap, err := uc.Execute(context.Background(), s.input("2026-10-19", "10:00"))
	require.NoError(t, err)
	d.Close()

	assert.NotEqual(t, uuid.Nil, ap.ID)
	assert.Equal(t, "10:00", ap.StartTime)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	require.NotNil(t, ap.Service)
	assert.Equal(t, "Corte", ap.Service.Name)

	assert.Len(t, s.repo.appointments, 2)
	assert.Equal(t, 1, s.repo.locks)
	assert.Equal(t, []string{"appointment_created"}, sink.actions())
}

func TestCreateAppointment_NormalizesSeconds(t *testing.T) {
	s := newScenario(t)
	uc, d := newCreate(t, s, &memorySink{})
	defer d.Close()

	ap, err := uc.Execute(context.Background(), s.input("2026-10-19", "11:30:00"))
	require.NoError(t, err)
	assert.Equal(t, "11:30", ap.StartTime)
}

func TestCreateAppointment_Rejections(t *testing.T) {
	tests := []struct {
		name string
		date string
		hm   string
		code string
	}{
		{"taken", "2026-10-19", "09:30", "slot_unavailable"},
		{"overlaps the booking", "2026-10-19", "09:15", "slot_unavailable"},
		{"runs past closing", "2026-10-19", "11:45", "slot_unavailable"},
		{"closed day", "2026-10-20", "10:00", "slot_unavailable"},
		{"past", "2026-10-16", "09:00", "too_soon"},
		{"bad date", "19/10/2026", "10:00", "invalid_date_or_time"},
		{"bad time", "2026-10-19", "25:00", "invalid_date_or_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScenario(t)
			uc, d := newCreate(t, s, &memorySink{})
			defer d.Close()

			_, err := uc.Execute(context.Background(), s.input(tt.date, tt.hm))
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
			assert.Len(t, s.repo.appointments, 1)
		})
	}
}

func TestCreateAppointment_LeadTime(t *testing.T) {
	s := newScenario(t)
	uc := NewCreateAppointment(s.repo, nil, zap.NewNop(), tz, 60)
	uc.now = func() time.Time { return at(t, "2026-10-19", 10, 0) }

	_, err := uc.Execute(context.Background(), s.input("2026-10-19", "10:30"))
	assert.True(t, httperr.IsBusiness(err, "too_soon"), "got %v", err)

	_, err = uc.Execute(context.Background(), s.input("2026-10-19", "11:00"))
	assert.NoError(t, err)
}

func TestCreateAppointment_InactiveBarberOrForeignService(t *testing.T) {
	s := newScenario(t)
	uc, d := newCreate(t, s, &memorySink{})
	defer d.Close()

	in := s.input("2026-10-19", "10:00")
	in.ServiceID = uuid.New()
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	s.repo.barbers[s.barber.ID].Active = false
	_, err = uc.Execute(context.Background(), s.input("2026-10-19", "10:00"))
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}

func TestCreateAppointment_ConstraintRaceMapsToSlotUnavailable(t *testing.T) {
	s := newScenario(t)
	s.repo.createErr = &pgconn.PgError{Code: "23505"}
	sink := &memorySink{}
	uc, d := newCreate(t, s, sink)

	_, err := uc.Execute(context.Background(), s.input("2026-10-19", "10:00"))
	d.Close()

	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"), "got %v", err)
	assert.Equal(t, []string{"appointment_conflict"}, sink.actions())
}

// Depois de cada reserva, nenhum par de agendamentos ativos se sobrepõe.
func TestCreateAppointment_KeepsBookingsDisjoint(t *testing.T) {
	s := newScenario(t)
	long := models.Service{ID: uuid.New(), BarberID: s.barber.ID, Name: "Barba", DurationMinutes: 45, Active: true}
	s.repo.services[long.ID] = &long
	uc, d := newCreate(t, s, &memorySink{})
	defer d.Close()

	for _, hm := range []string{"09:00", "10:00", "10:30", "11:00", "11:30"} {
		in := s.input("2026-10-19", hm)
		in.ServiceID = long.ID
		_, _ = uc.Execute(context.Background(), in)
	}

	type span struct{ start, end int }
	var spans []span
	for _, ap := range s.repo.appointments {
		begin, ok := availability.ParseClock(ap.StartTime)
		require.True(t, ok)
		spans = append(spans, span{begin, begin + s.repo.services[ap.ServiceID].DurationMinutes})
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			assert.False(t, a.start < b.end && b.start < a.end, "%v overlaps %v", a, b)
		}
	}
}

// --------------------------------------------------
// Status transitions
// --------------------------------------------------

func TestStatusTransitions(t *testing.T) {
	s := newScenario(t)
	sink := &memorySink{}
	d := audit.NewDispatcher(sink, zap.NewNop())
	ctx := context.Background()
	id := s.repo.appointments[0].ID
	s.repo.appointments[0].Status = string(domain.StatusPending)

	confirmed, err := NewConfirmAppointment(s.repo, d).Execute(ctx, s.byBarber(id))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)

	_, err = NewConfirmAppointment(s.repo, d).Execute(ctx, s.byBarber(id))
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	cancelled, err := NewCancelAppointment(s.repo, d).Execute(ctx, s.byBarber(id))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, string(domain.StatusCancelled), s.repo.appointments[0].Status)

	_, err = NewCompleteAppointment(s.repo, d).Execute(ctx, s.byBarber(id))
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	d.Close()
	assert.Equal(t, []string{"appointment_confirmed", "appointment_cancelled"}, sink.actions())
	assert.Equal(t, map[string]string{"from": "pending", "to": "confirmed"}, sink.events[0].Metadata)
}

func TestCompleteAppointment(t *testing.T) {
	s := newScenario(t)
	id := s.repo.appointments[0].ID

	ap, err := NewCompleteAppointment(s.repo, nil).Execute(context.Background(), s.byBarber(id))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	assert.NotNil(t, ap.CompletedAt)
}

func TestStatusChange_OtherBarberGetsNotFound(t *testing.T) {
	s := newScenario(t)
	id := s.repo.appointments[0].ID

	in := s.byBarber(id)
	in.BarberID = uuid.New()

	_, err := NewCancelAppointment(s.repo, nil).Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestStatusChange_AuditNamesTheActingProfile(t *testing.T) {
	s := newScenario(t)
	sink := &memorySink{}
	d := audit.NewDispatcher(sink, zap.NewNop())

	_, err := NewCancelAppointment(s.repo, d).Execute(context.Background(), s.byBarber(s.repo.appointments[0].ID))
	require.NoError(t, err)
	d.Close()

	require.Len(t, sink.events, 1)
	require.NotNil(t, sink.events[0].ActorID)
	assert.Equal(t, s.barber.ProfileID, *sink.events[0].ActorID)
	assert.Equal(t, s.barber.ID, sink.events[0].BarberID)
}

// Falha do banco não pode virar 404.
func TestLookupFailuresAreNotReportedAsNotFound(t *testing.T) {
	down := errors.New("connection refused")

	t.Run("availability", func(t *testing.T) {
		s := newScenario(t)
		s.repo.lookupErr = down

		_, err := NewGetAvailability(s.repo, zap.NewNop(), 0).Execute(context.Background(), availabilityInput(t, s, "2026-10-19"))
		assert.ErrorIs(t, err, down)
		assert.False(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("create", func(t *testing.T) {
		s := newScenario(t)
		s.repo.lookupErr = down
		uc, d := newCreate(t, s, &memorySink{})
		defer d.Close()

		_, err := uc.Execute(context.Background(), s.input("2026-10-19", "10:00"))
		assert.ErrorIs(t, err, down)
		assert.False(t, httperr.IsBusiness(err, "barber_not_found"))
	})

	t.Run("status change", func(t *testing.T) {
		s := newScenario(t)
		s.repo.lookupErr = down

		_, err := NewConfirmAppointment(s.repo, nil).Execute(context.Background(), s.byBarber(uuid.New()))
		assert.ErrorIs(t, err, down)
		assert.False(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func TestListAppointmentsByDate(t *testing.T) {
	s := newScenario(t)
	uc := NewListAppointmentsByDate(s.repo)

	got, err := uc.Execute(context.Background(), s.barber.ID, "2026-10-19")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "09:30", got[0].StartTime)
	assert.Equal(t, "10:00", got[0].EndTime)
	assert.Equal(t, 30, got[0].DurationMinutes)
	assert.Equal(t, "Corte", got[0].ServiceName)

	empty, err := uc.Execute(context.Background(), s.barber.ID, "2026-10-20")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = uc.Execute(context.Background(), s.barber.ID, "2026-13-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestListAppointmentsByMonth(t *testing.T) {
	s := newScenario(t)
	uc := NewListAppointmentsByMonth(s.repo)

	got, err := uc.Execute(context.Background(), s.barber.ID, 2026, 12)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, [2]string{"2026-12-01", "2027-01-01"}, s.repo.between)

	got, err = uc.Execute(context.Background(), s.barber.ID, 2026, 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = uc.Execute(context.Background(), s.barber.ID, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}
