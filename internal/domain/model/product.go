package model

import (
	"time"

	"salon-suite/internal/domain"
)

// Product is a sellable salon service or retail item. The same record backs
// both the service catalog and subscription add-on lines.
type Product struct {
	ID         string
	Name       string
	SalesPrice int64
	Category   string
	CreatedAt  time.Time
}

func (p *Product) IsZero() bool { return p == nil || p.ID == "" }

func NewProduct(id, name string, salesPrice int64, category string) (*Product, error) {
	if id == "" || name == "" || salesPrice < 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Product{
		ID:         id,
		Name:       name,
		SalesPrice: salesPrice,
		Category:   category,
		CreatedAt:  time.Now(),
	}, nil
}
