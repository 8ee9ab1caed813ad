package appointment

import (
	"context"
	"time"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/audit"
	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in StatusChangeInput,
) (*models.Appointment, error) {

	return changeStatus(ctx, uc.repo, uc.audit, in,
		"appointment_completed",
		func(ap *models.Appointment) error {
			return domain.Complete(ap, uc.now())
		},
	)
}
