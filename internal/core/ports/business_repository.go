package ports

import (
	"context"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/kernel"
)

// BusinessRepository defines the persistence contract for business tenants.
type BusinessRepository interface {
	// Add persists a new business.
	Add(ctx context.Context, aggregate *business.Business) error

	// Update persists changes to an existing business.
	Update(ctx context.Context, aggregate *business.Business) error

	// Get retrieves a business by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*business.Business, error)
}
