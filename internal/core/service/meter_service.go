package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hydrai/telemetry-system/internal/core/domain"
	"github.com/hydrai/telemetry-system/internal/core/ports"
)

// MeterService implements owner-scoped flow-meter operations.
type MeterService struct {
	repo ports.MeterRepository
	log  zerolog.Logger
}

func NewMeterService(repo ports.MeterRepository, log zerolog.Logger) *MeterService {
	return &MeterService{repo: repo, log: log}
}

func (s *MeterService) CreateMeter(ctx context.Context, input ports.CreateMeterInput) (*domain.Meter, error) {
	status := domain.MeterStatus(input.Status)
	if status == "" {
		status = domain.MeterActive
	}

	meter := &domain.Meter{
		OwnerID:      input.OwnerID,
		Name:         input.Name,
		Type:         input.Type,
		Status:       status,
		Measurements: []domain.Measurement{},
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, meter)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("meter_id", created.ID).Str("owner_id", created.OwnerID).Msg("meter created")
	return created, nil
}

func (s *MeterService) ListMeters(ctx context.Context, ownerID string) ([]*domain.Meter, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetMeter loads a meter and enforces ownership. An existing meter owned by
// a different user yields ErrForbidden, not ErrMeterNotFound.
func (s *MeterService) GetMeter(ctx context.Context, meterID, ownerID string) (*domain.Meter, error) {
	meter, err := s.repo.FindByID(ctx, meterID)
	if err != nil {
		return nil, err
	}
	if meter.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return meter, nil
}

// Ingest persists one measurement. Ownership was verified before the input
// entered the pipeline, so a failed append here is an infrastructure error.
func (s *MeterService) Ingest(ctx context.Context, input ports.MeasurementInput) error {
	recordedAt := input.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	m := domain.Measurement{
		FlowRate:         input.FlowRate,
		TotalConsumption: input.TotalConsumption,
		Temperature:      input.Temperature,
		LeakEvent:        input.LeakEvent,
		RecordedAt:       recordedAt,
	}

	if err := s.repo.AppendMeasurement(ctx, input.MeterID, m); err != nil {
		return fmt.Errorf("ingest measurement: %w", err)
	}

	if input.LeakEvent {
		s.log.Warn().Str("meter_id", input.MeterID).Msg("leak event recorded")
	}
	return nil
}
