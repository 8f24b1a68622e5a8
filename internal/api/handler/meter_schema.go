package handler

import "time"

type createMeterRequest struct {
	Name   string `json:"name"   validate:"required"`
	Type   string `json:"type"   validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive faulty"`
}

type measurementRequest struct {
	FlowRate         float64   `json:"flow_rate"         validate:"gte=0"`
	TotalConsumption float64   `json:"total_consumption" validate:"gte=0"`
	Temperature      *float64  `json:"temperature,omitempty"`
	LeakEvent        bool      `json:"leak_event"`
	RecordedAt       time.Time `json:"recorded_at,omitempty"`
}

type measurementResponse struct {
	FlowRate         float64   `json:"flow_rate"`
	TotalConsumption float64   `json:"total_consumption"`
	Temperature      *float64  `json:"temperature,omitempty"`
	LeakEvent        bool      `json:"leak_event"`
	RecordedAt       time.Time `json:"recorded_at"`
}

type meterResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Type             string                `json:"type"`
	Status           string                `json:"status"`
	TotalConsumption float64               `json:"total_consumption"`
	LeakDetected     bool                  `json:"leak_detected"`
	Measurements     []measurementResponse `json:"measurements"`
	CreatedAt        time.Time             `json:"created_at"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

type analysisRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type analysisResponse struct {
	Analysis string `json:"analysis"`
}
