package dto

import "github.com/google/uuid"

type AppointmentListDTO struct {
	ID              uuid.UUID `json:"id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	ClientName      string    `json:"client_name"`
	ServiceName     string    `json:"service_name"`
	Price           float64   `json:"price"`
	Notes           string    `json:"notes"`
}
