package ports

import (
	"context"

	"github.com/hydrai/telemetry-system/internal/core/domain"
)

// MeterRepository defines persistence operations for flow meters.
type MeterRepository interface {
	Create(ctx context.Context, m *domain.Meter) (*domain.Meter, error)
	// FindByID retrieves a meter regardless of owner; ownership is enforced
	// by the service layer so it can distinguish not-found from forbidden.
	FindByID(ctx context.Context, id string) (*domain.Meter, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Meter, error)
	// AppendMeasurement atomically pushes a reading onto the meter document.
	AppendMeasurement(ctx context.Context, meterID string, m domain.Measurement) error
}
