package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hydrai/telemetry-system/internal/core/domain"
	"github.com/hydrai/telemetry-system/internal/core/ports"
)

// MeasurementDispatcher is the interface the handler uses to enqueue
// measurements for asynchronous ingestion.
type MeasurementDispatcher interface {
	Enqueue(input ports.MeasurementInput)
}

// MeterHandler handles flow-meter operations. Every query is scoped to the
// identity resolved by the auth middleware.
type MeterHandler struct {
	service    ports.MeterService
	dispatcher MeasurementDispatcher
}

func NewMeterHandler(service ports.MeterService, dispatcher MeasurementDispatcher) *MeterHandler {
	return &MeterHandler{service: service, dispatcher: dispatcher}
}

// List handles GET /api/meters, returning the authenticated user's meters.
//
// @Summary      List the authenticated user's flow meters
// @Tags         meters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   meterResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/meters [get]
func (h *MeterHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	meters, err := h.service.ListMeters(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	out := make([]meterResponse, len(meters))
	for i, m := range meters {
		out[i] = toMeterResponse(m)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/meters, registering a meter owned by the caller.
//
// @Summary      Register a new flow meter
// @Tags         meters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMeterRequest  true  "Meter details"
// @Success      201   {object}  meterResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/meters [post]
func (h *MeterHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createMeterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	meter, err := h.service.CreateMeter(c.Request().Context(), ports.CreateMeterInput{
		OwnerID: user.ID,
		Name:    req.Name,
		Type:    req.Type,
		Status:  req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toMeterResponse(meter))
}

// Receive handles POST /api/meters/:id/measurements, enqueuing one reading.
// Ownership is verified synchronously before the measurement enters the
// pipeline, so the 202 means "accepted for a meter you own".
//
// @Summary      Ingest a flow-meter measurement
// @Tags         meters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Meter ID"
// @Param        body  body      measurementRequest  true  "Measurement"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/meters/{id}/measurements [post]
func (h *MeterHandler) Receive(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req measurementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	meterID := c.Param("id")
	if _, err := h.service.GetMeter(c.Request().Context(), meterID, user.ID); err != nil {
		return err
	}

	h.dispatcher.Enqueue(ports.MeasurementInput{
		MeterID:          meterID,
		OwnerID:          user.ID,
		FlowRate:         req.FlowRate,
		TotalConsumption: req.TotalConsumption,
		Temperature:      req.Temperature,
		LeakEvent:        req.LeakEvent,
		RecordedAt:       req.RecordedAt,
	})

	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "measurement accepted"})
}

func toMeterResponse(m *domain.Meter) meterResponse {
	measurements := make([]measurementResponse, len(m.Measurements))
	for i, r := range m.Measurements {
		measurements[i] = measurementResponse{
			FlowRate:         r.FlowRate,
			TotalConsumption: r.TotalConsumption,
			Temperature:      r.Temperature,
			LeakEvent:        r.LeakEvent,
			RecordedAt:       r.RecordedAt,
		}
	}
	return meterResponse{
		ID:               m.ID,
		Name:             m.Name,
		Type:             m.Type,
		Status:           string(m.Status),
		TotalConsumption: m.TotalConsumption(),
		LeakDetected:     m.HasLeak(),
		Measurements:     measurements,
		CreatedAt:        m.CreatedAt,
	}
}
