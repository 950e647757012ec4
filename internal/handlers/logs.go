package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"manualdesk/internal/logger"
	"manualdesk/internal/utils/helpers"
)

// AdminLogsHandler — просмотр JSON-логов сервера за последние Retention дней.
type AdminLogsHandler struct {
	reader    *logger.Reader
	Retention int
}

func NewAdminLogsHandler(reader *logger.Reader) *AdminLogsHandler {
	return &AdminLogsHandler{reader: reader, Retention: 14}
}

// ListDays
// @Summary      Доступные дни логов
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} map[string][]string "days"
// @Router       /api/admin/logs/days [get]
func (h *AdminLogsHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	helpers.JSON(w, http.StatusOK, map[string][]string{"days": h.reader.Days(h.Retention)})
}

// GetLogs
// @Summary      Логи за день
// @Description  Фильтры по уровню, request_id, session_id и подстроке; пагинация курсором по номеру строки.
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Param        day        query  string true  "Дата (YYYY-MM-DD)"
// @Param        level      query  string false "CSV уровней: debug,info,warn,error"
// @Param        request_id query  string false "ID запроса"
// @Param        session_id query  string false "ID сессии просмотрщика"
// @Param        q          query  string false "Поиск по подстроке"
// @Param        limit      query  int    false "Лимит (по умолч. 200, макс. 1000)"
// @Param        cursor     query  int    false "Номер строки для пагинации"
// @Success      200 {object} logger.Page
// @Failure      400 {object} helpers.Response
// @Failure      404 {object} helpers.Response
// @Router       /api/admin/logs [get]
func (h *AdminLogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	day := qs.Get("day")
	if !logger.ValidDay(day) {
		helpers.Error(w, http.StatusBadRequest, "bad day")
		return
	}
	var levels []string
	if raw := qs.Get("level"); raw != "" {
		levels = strings.Split(raw, ",")
	}

	page, err := h.reader.Read(logger.Query{
		Day:       day,
		Levels:    levels,
		RequestID: qs.Get("request_id"),
		SessionID: qs.Get("session_id"),
		Text:      qs.Get("q"),
		Cursor:    clampAtoi(qs.Get("cursor"), 0, 0, 10_000_000),
		Limit:     clampAtoi(qs.Get("limit"), 200, 1, 1000),
	})
	if errors.Is(err, logger.ErrNoLogs) {
		helpers.Error(w, http.StatusNotFound, "day not found")
		return
	}
	helpers.JSON(w, http.StatusOK, page)
}

// Stats
// @Summary      Статистика логов по часам
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Param        day query string true "Дата (YYYY-MM-DD)"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} helpers.Response
// @Failure      404 {object} helpers.Response
// @Router       /api/admin/logs/stats [get]
func (h *AdminLogsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if !logger.ValidDay(day) {
		helpers.Error(w, http.StatusBadRequest, "bad day")
		return
	}
	stats, err := h.reader.Stats(day)
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "day not found")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]any{"day": day, "stats": stats})
}

func clampAtoi(s string, def, lo, hi int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return min(max(v, lo), hi)
}
