package domain

import (
	"errors"
	"time"
)

var ErrMeterNotFound = errors.New("meter not found")
var ErrForbidden = errors.New("access forbidden")
var ErrStoreUnavailable = errors.New("store unavailable")
var ErrGeneratorUnavailable = errors.New("text generation unavailable")

// MeterStatus represents the operational state reported by the device.
type MeterStatus string

const (
	MeterActive   MeterStatus = "active"
	MeterInactive MeterStatus = "inactive"
	MeterFaulty   MeterStatus = "faulty"
)

// Measurement is a single flow-meter reading.
type Measurement struct {
	FlowRate         float64   `json:"flow_rate" bson:"flow_rate"`
	TotalConsumption float64   `json:"total_consumption" bson:"total_consumption"`
	Temperature      *float64  `json:"temperature,omitempty" bson:"temperature,omitempty"`
	LeakEvent        bool      `json:"leak_event" bson:"leak_event"`
	RecordedAt       time.Time `json:"recorded_at" bson:"recorded_at"`
}

// Meter is a flow-meter device exclusively owned by one user. All access to a
// meter must be mediated by the owner's resolved identity.
type Meter struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	OwnerID      string        `json:"owner_id" bson:"owner_id"`
	Name         string        `json:"name" bson:"name"`
	Type         string        `json:"type" bson:"type"`
	Status       MeterStatus   `json:"status" bson:"status"`
	Measurements []Measurement `json:"measurements" bson:"measurements"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

// TotalConsumption sums consumption across all readings.
func (m *Meter) TotalConsumption() float64 {
	var total float64
	for _, r := range m.Measurements {
		total += r.TotalConsumption
	}
	return total
}

// HasLeak reports whether any reading flagged a leak event.
func (m *Meter) HasLeak() bool {
	for _, r := range m.Measurements {
		if r.LeakEvent {
			return true
		}
	}
	return false
}
