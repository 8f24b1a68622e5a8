package ports

import (
	"context"
	"time"

	"github.com/hydrai/telemetry-system/internal/core/domain"
)

// CreateMeterInput carries the data needed to register a new flow meter.
type CreateMeterInput struct {
	OwnerID string
	Name    string
	Type    string
	Status  string
}

// MeasurementInput is the DTO passed from the transport layer to the
// ingestion pipeline.
type MeasurementInput struct {
	MeterID          string
	OwnerID          string
	FlowRate         float64
	TotalConsumption float64
	Temperature      *float64
	LeakEvent        bool
	RecordedAt       time.Time
}

// MeterService defines use-case operations for flow meters. Every operation
// is scoped to the owner resolved by the auth middleware.
type MeterService interface {
	CreateMeter(ctx context.Context, input CreateMeterInput) (*domain.Meter, error)
	ListMeters(ctx context.Context, ownerID string) ([]*domain.Meter, error)
	// GetMeter returns domain.ErrMeterNotFound for an unknown id and
	// domain.ErrForbidden when the meter belongs to another user.
	GetMeter(ctx context.Context, meterID, ownerID string) (*domain.Meter, error)
	// Ingest persists a single measurement. Ownership must have been
	// verified before the input entered the pipeline.
	Ingest(ctx context.Context, input MeasurementInput) error
}
