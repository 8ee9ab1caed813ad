package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/appointment"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httperr"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/httpresp"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/middleware"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/models"
)

type ServiceHandler struct {
	repo domain.Repository
}

func NewServiceHandler(repo domain.Repository) *ServiceHandler {
	return &ServiceHandler{repo: repo}
}

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Description     string  `json:"description" binding:"max=255"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1,max=720"`
	Price           float64 `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name" binding:"omitempty,max=100"`
	Description     *string  `json:"description" binding:"omitempty,max=255"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=1,max=720"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	Active          *bool    `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)

	services, err := h.repo.ListServices(c.Request.Context(), barberID, false)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	service := models.Service{
		BarberID:        barberID,
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}

	if err := h.repo.CreateService(c.Request.Context(), &service); err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	service, err := h.repo.GetService(c.Request.Context(), id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(c, err)
		return
	}
	if err != nil || service.BarberID != barberID {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.repo.UpdateService(c.Request.Context(), service); err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, service)
}
