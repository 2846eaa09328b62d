package repositories

import (
	"context"

	"github.com/google/uuid"
	"piaas.backend/internal/domain/entities"
)

// VendorRepository interface (read-only; vendors and products are managed
// by an external service)
type VendorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
}
