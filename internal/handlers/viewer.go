package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
	"manualdesk/internal/navigation"
	"manualdesk/internal/services"
	"manualdesk/internal/utils/helpers"
)

type ViewerHandler struct {
	viewer    *services.ViewerService
	assistant *services.AssistantService
}

func NewViewerHandler(viewer *services.ViewerService, assistant *services.AssistantService) *ViewerHandler {
	return &ViewerHandler{viewer: viewer, assistant: assistant}
}

type selectManualRequest struct {
	ManualID string `json:"manualId"`
}

type selectNodeRequest struct {
	NodeID string `json:"nodeId"`
}

type navigateRequest struct {
	PageID string `json:"pageId"`
}

type sidebarRequest struct {
	Open bool `json:"open"`
}

type troubleshootRequest struct {
	Symptom string `json:"symptom"`
}

// respond отдаёт состояние сессии. При промахе навигации статус 404, а в data
// остаётся неизменённое состояние.
func (h *ViewerHandler) respond(w http.ResponseWriter, r *http.Request, st services.ViewerState, err error) {
	switch {
	case err == nil:
		helpers.JSON(w, http.StatusOK, st)
	case errors.Is(err, navigation.ErrTargetNotFound) && st.SessionID != "":
		logger.WithCtx(r.Context()).Warn("viewer: цель навигации не найдена", zap.String("session_id", st.SessionID))
		helpers.Respond(w, http.StatusNotFound, st, err.Error())
	default:
		writeError(w, r, "viewer", err)
	}
}

func sessionID(r *http.Request) string { return mux.Vars(r)["sid"] }

// Open godoc
// @Summary Открыть просмотрщик
// @Description Создаёт сессию просмотрщика; при пустом manualId открывается первое руководство машины.
// @Tags viewer
// @Accept json
// @Produce json
// @Param input body services.OpenViewerRequest true "Машина и руководство"
// @Success 201 {object} services.ViewerState
// @Failure 404 {object} helpers.Response
// @Router /api/viewer/sessions [post]
func (h *ViewerHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req services.OpenViewerRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "viewer", err)
		return
	}
	req.Browser = r.UserAgent()
	st, err := h.viewer.Open(r.Context(), req)
	if err != nil {
		writeError(w, r, "viewer", err)
		return
	}
	helpers.JSON(w, http.StatusCreated, st)
}

// Get godoc
// @Summary Состояние просмотрщика
// @Tags viewer
// @Produce json
// @Param sid path string true "ID сессии"
// @Success 200 {object} services.ViewerState
// @Failure 404 {object} helpers.Response
// @Router /api/viewer/sessions/{sid} [get]
func (h *ViewerHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.viewer.State(sessionID(r))
	h.respond(w, r, st, err)
}

// Close godoc
// @Summary Закрыть просмотрщик
// @Tags viewer
// @Param sid path string true "ID сессии"
// @Success 204
// @Failure 404 {object} helpers.Response
// @Router /api/viewer/sessions/{sid} [delete]
func (h *ViewerHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.viewer.Close(sessionID(r)); err != nil {
		writeError(w, r, "viewer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectManual godoc
// @Summary Переключить руководство
// @Tags viewer
// @Accept json
// @Produce json
// @Param sid path string true "ID сессии"
// @Param input body selectManualRequest true "Руководство"
// @Success 200 {object} services.ViewerState
// @Failure 404 {object} helpers.Response
// @Router /api/viewer/sessions/{sid}/manual [post]
func (h *ViewerHandler) SelectManual(w http.ResponseWriter, r *http.Request) {
	var req selectManualRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "viewer", err)
		return
	}
	st, err := h.viewer.Apply(sessionID(r), func(c *navigation.Controller) error { return c.SelectManual(req.ManualID) })
	h.respond(w, r, st, err)
}

// SelectTocNode godoc
// @Summary Выбрать узел оглавления
// @Tags viewer
// @Accept json
// @Produce json
// @Param sid path string true "ID сессии"
// @Param input body selectNodeRequest true "Узел"
// @Success 200 {object} services.ViewerState
// @Failure 404 {object} helpers.Response
// @Router /api/viewer/sessions/{sid}/toc [post]
func (h *ViewerHandler) SelectTocNode(w http.ResponseWriter, r *http.Request) {
	var req selectNodeRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "viewer", err)
		return
	}
	st, err := h.viewer.Apply(sessionID(r), func(c *navigation.Controller) error { return c.SelectTocNode(req.NodeID) })
	h.respond(w, r, st, err)
}

// Navigate godoc
// @Summary Перейти на страницу текущего руководства
// @Description Ссылки внутри страниц и ответы ассистента ведут сюда.
// @Tags viewer
// @Accept json
// @Produce json
// @Param sid path string true "ID сессии"
// @Param input body navigateRequest true "Страница"
// @Success 200 {object} services.ViewerState
// @Failure 404 {object} helpers.Response
// @Router /api/viewer/sessions/{sid}/navigate [post]
func (h *ViewerHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "viewer", err)
		return
	}
	st, err := h.viewer.Apply(sessionID(r), func(c *navigation.Controller) error { return c.NavigateToPage(req.PageID) })
	h.respond(w, r, st, err)
}

// Search godoc
// @Summary Поисковый запрос в просмотрщике
// @Tags viewer
// @Accept json
// @Produce json
// @Param sid path string true "ID сессии"
// @Param input body services.SearchRequest true "Запрос, охват, все руководства"
// @Success 200 {object} services.ViewerState
// @Failure 400 {object} helpers.Response
// @Router /api/viewer/sessions/{sid}/search [post]
func (h *ViewerHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req services.SearchRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "viewer", err)
		return
	}
	st, err := h.viewer.Search(sessionID(r), req)
	h.respond(w, r, st, err)
}

// ClearSearch godoc
// @Summary Очистить запрос
// @Tags viewer
// @Produce json
// @Param sid path string true "ID сессии"
// @Success 200 {object} services.ViewerState
// @Router /api/viewer/sessions/{sid}/search [delete]
func (h *ViewerHandler) ClearSearch(w http.ResponseWriter, r *http.Request) {
	st, err := h.viewer.Apply(sessionID(r), func(c *navigation.Controller) error {
		c.ClearQuery()
		return nil
	})
	h.respond(w, r, st, err)
}

// OpenResult godoc
// @Summary Открыть результат поиска
// @Tags viewer
// @Accept json
// @Produce json
// @Param sid path string true "ID сессии"
// @Param input body models.SearchResult true "Результат"
// @Success 200 {object} services.ViewerState
// @Failure 404 {object} helpers.Response
// @Router /api/viewer/sessions/{sid}/results [post]
func (h *ViewerHandler) OpenResult(w http.ResponseWriter, r *http.Request) {
	var res models.SearchResult
	if err := helpers.Decode(r, &res); err != nil {
		badJSON(w, r, "viewer", err)
		return
	}
	st, err := h.viewer.Apply(sessionID(r), func(c *navigation.Controller) error { return c.NavigateToSearchResult(res) })
	h.respond(w, r, st, err)
}

// Sidebar godoc
// @Summary Показать или скрыть боковую панель
// @Tags viewer
// @Accept json
// @Produce json
// @Param sid path string true "ID сессии"
// @Param input body sidebarRequest true "Состояние"
// @Success 200 {object} services.ViewerState
// @Router /api/viewer/sessions/{sid}/sidebar [post]
func (h *ViewerHandler) Sidebar(w http.ResponseWriter, r *http.Request) {
	var req sidebarRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "viewer", err)
		return
	}
	st, err := h.viewer.Apply(sessionID(r), func(c *navigation.Controller) error {
		c.SetSidebarOpen(req.Open)
		return nil
	})
	h.respond(w, r, st, err)
}

// Troubleshoot godoc
// @Summary Спросить AI-ассистента
// @Description Ответ размечен на HTML-фрагменты и ссылки на страницы текущего руководства. При сбое AI статус 502 и сообщение в data.error.
// @Tags viewer
// @Accept json
// @Produce json
// @Param sid path string true "ID сессии"
// @Param input body troubleshootRequest true "Симптом"
// @Success 200 {object} models.AssistantReply
// @Failure 502 {object} helpers.Response
// @Router /api/viewer/sessions/{sid}/assistant [post]
func (h *ViewerHandler) Troubleshoot(w http.ResponseWriter, r *http.Request) {
	var req troubleshootRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "assistant", err)
		return
	}
	reply, err := h.assistant.Troubleshoot(r.Context(), sessionID(r), req.Symptom)
	if err != nil {
		if reply.Error != "" {
			logger.WithCtx(r.Context()).Warn("assistant: ответ не получен", zap.Error(err))
			helpers.Respond(w, statusFor(err), reply, reply.Error)
			return
		}
		writeError(w, r, "assistant", err)
		return
	}
	helpers.JSON(w, http.StatusOK, reply)
}

// Procedure godoc
// @Summary Пошаговая процедура для текущей страницы
// @Tags viewer
// @Produce json
// @Param sid path string true "ID сессии"
// @Success 200 {object} models.ProcedureDetails
// @Failure 400 {object} helpers.Response
// @Failure 502 {object} helpers.Response
// @Router /api/viewer/sessions/{sid}/procedure [post]
func (h *ViewerHandler) Procedure(w http.ResponseWriter, r *http.Request) {
	details, err := h.assistant.ExtractProcedure(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, "assistant", err)
		return
	}
	helpers.JSON(w, http.StatusOK, details)
}
