package model

import (
	"time"

	"salon-suite/internal/domain"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment books a customer for a service, optionally with a staff member.
type Appointment struct {
	ID          string
	CustomerID  string
	ProductID   string // the booked service
	StaffID     string
	ScheduledAt time.Time
	Status      AppointmentStatus
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewAppointment(id, customerID, productID string, scheduledAt time.Time) (*Appointment, error) {
	if id == "" || customerID == "" || productID == "" || scheduledAt.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Appointment{
		ID:          id,
		CustomerID:  customerID,
		ProductID:   productID,
		ScheduledAt: scheduledAt,
		Status:      AppointmentStatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
