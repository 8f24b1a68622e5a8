package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hydrai/telemetry-system/internal/api/metrics"
	"github.com/hydrai/telemetry-system/internal/core/domain"
	"github.com/hydrai/telemetry-system/internal/core/ports"
)

// AnalysisHandler exposes the consumption-analysis endpoint.
type AnalysisHandler struct {
	service ports.AnalysisService
}

func NewAnalysisHandler(service ports.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Analyze handles POST /api/analysis.
//
// The body names a user_id; authentication alone is not enough here; the
// requested identity must match the resolved one, otherwise 403.
//
// @Summary      Generate a consumption analysis for the caller's meters
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      analysisRequest  true  "Analysis target"
// @Success      200   {object}  analysisResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/analysis [post]
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req analysisRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if req.UserID != user.ID {
		return domain.ErrForbidden
	}

	start := time.Now()
	text, err := h.service.Analyze(c.Request().Context(), user.ID)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.AnalysesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, analysisResponse{Analysis: text})
}
