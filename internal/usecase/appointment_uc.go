package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// AppointmentUseCase books salon visits. It is deliberately thin; there is
// no availability engine, a booking is a row.
type AppointmentUseCase struct {
	repo     repository.AppointmentRepository
	products repository.ProductRepository
}

func NewAppointmentUseCase(repo repository.AppointmentRepository, products repository.ProductRepository) *AppointmentUseCase {
	return &AppointmentUseCase{repo: repo, products: products}
}

func (uc *AppointmentUseCase) Book(ctx context.Context, customerID, productID, staffID string, at time.Time, notes string) (*model.Appointment, error) {
	if _, err := uc.products.FindByID(ctx, repository.NoTX, productID); err != nil {
		return nil, err
	}
	a, err := model.NewAppointment(uuid.NewString(), customerID, productID, at)
	if err != nil {
		return nil, err
	}
	a.StaffID = staffID
	a.Notes = notes
	if err := uc.repo.Save(ctx, repository.NoTX, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *AppointmentUseCase) SetStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error) {
	a, err := uc.repo.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, repository.NoTX, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *AppointmentUseCase) ListByCustomer(ctx context.Context, customerID string) ([]*model.Appointment, error) {
	return uc.repo.ListByCustomer(ctx, repository.NoTX, customerID)
}

func (uc *AppointmentUseCase) ListAll(ctx context.Context) ([]*model.Appointment, error) {
	return uc.repo.ListAll(ctx, repository.NoTX)
}
