package appointment

import (
	"context"
	"time"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/audit"
	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute libera o horário: cancelado deixa de contar na disponibilidade.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in StatusChangeInput,
) (*models.Appointment, error) {

	return changeStatus(ctx, uc.repo, uc.audit, in,
		"appointment_cancelled",
		func(ap *models.Appointment) error {
			return domain.Cancel(ap, uc.now())
		},
	)
}
