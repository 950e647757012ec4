package handlers

import (
	"net/http"

	"manualdesk/internal/models"
	"manualdesk/internal/services"
	"manualdesk/internal/utils/helpers"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

type ingestResponse struct {
	Accepted int `json:"accepted"`
}

// Ingest godoc
// @Summary Принять события аналитики от клиента
// @Tags analytics
// @Accept json
// @Produce json
// @Param input body []models.AnalyticsEvent true "События"
// @Success 202 {object} ingestResponse
// @Failure 400 {object} helpers.Response
// @Router /api/analytics/events [post]
func (h *AnalyticsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var events []models.AnalyticsEvent
	if err := helpers.Decode(r, &events); err != nil {
		badJSON(w, r, "analytics", err)
		return
	}
	n, err := h.analytics.Ingest(r.Context(), events)
	if err != nil {
		writeError(w, r, "analytics", err)
		return
	}
	helpers.JSON(w, http.StatusAccepted, ingestResponse{Accepted: n})
}

// Summary godoc
// @Summary Сводка KPI
// @Tags admin-analytics
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.AnalyticsSummary
// @Router /api/admin/analytics/summary [get]
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	helpers.JSON(w, http.StatusOK, h.analytics.Summary())
}
