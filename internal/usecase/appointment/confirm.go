package appointment

import (
	"context"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/audit"
	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	in StatusChangeInput,
) (*models.Appointment, error) {

	return changeStatus(ctx, uc.repo, uc.audit, in,
		"appointment_confirmed",
		domain.Confirm,
	)
}
