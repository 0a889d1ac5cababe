package repository

import (
	"context"

	"salon-suite/internal/domain/model"
)

// AppointmentRepository is the port for bookings.
type AppointmentRepository interface {
	Save(ctx context.Context, tx Tx, a *model.Appointment) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Appointment, error)
	ListByCustomer(ctx context.Context, tx Tx, customerID string) ([]*model.Appointment, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Appointment, error)
}
