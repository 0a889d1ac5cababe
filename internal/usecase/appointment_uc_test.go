//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
)

func TestAppointmentBook(t *testing.T) {
	t.Parallel()
	appts := newMemAppointmentRepo()
	products := newMemProductRepo()
	uc := NewAppointmentUseCase(appts, products)
	ctx := context.Background()

	svc, err := model.NewProduct("svc-1", "Haircut", 500, "Hair")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if err := products.Save(ctx, nil, svc); err != nil {
		t.Fatalf("save product: %v", err)
	}

	at := time.Now().Add(48 * time.Hour)
	a, err := uc.Book(ctx, "cust-1", "svc-1", "staff-1", at, "window seat")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if a.Status != model.AppointmentStatusScheduled {
		t.Errorf("status = %s, want Scheduled", a.Status)
	}
	if a.StaffID != "staff-1" || a.Notes != "window seat" {
		t.Errorf("booking details not carried: %+v", a)
	}

	t.Run("unknown service", func(t *testing.T) {
		if _, err := uc.Book(ctx, "cust-1", "ghost", "", at, ""); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set status", func(t *testing.T) {
		got, err := uc.SetStatus(ctx, a.ID, model.AppointmentStatusCompleted)
		if err != nil {
			t.Fatalf("set status: %v", err)
		}
		if got.Status != model.AppointmentStatusCompleted {
			t.Errorf("status = %s, want Completed", got.Status)
		}
		if _, err := uc.SetStatus(ctx, "ghost", model.AppointmentStatusCancelled); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
