package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
	"manualdesk/internal/services"
	"manualdesk/internal/utils/helpers"
)

type CatalogHandler struct {
	catalog *services.CatalogService
	search  *services.SearchService
}

func NewCatalogHandler(catalog *services.CatalogService, search *services.SearchService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, search: search}
}

// ListMachines godoc
// @Summary Список машин с руководствами
// @Tags catalog
// @Produce json
// @Param q query string false "Фильтр по названию, коду, производителю, категории, тегам"
// @Success 200 {array} models.ModelWithManuals
// @Router /api/machines [get]
func (h *CatalogHandler) ListMachines(w http.ResponseWriter, r *http.Request) {
	helpers.JSON(w, http.StatusOK, h.catalog.Machines(r.Context(), r.URL.Query().Get("q")))
}

// GetMachine godoc
// @Summary Машина по id
// @Tags catalog
// @Produce json
// @Param id path string true "ID машины"
// @Success 200 {object} models.ModelWithManuals
// @Failure 404 {object} helpers.Response
// @Router /api/machines/{id} [get]
func (h *CatalogHandler) GetMachine(w http.ResponseWriter, r *http.Request) {
	m, err := h.catalog.Machine(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "catalog", err)
		return
	}
	helpers.JSON(w, http.StatusOK, m)
}

// ListMachineManuals godoc
// @Summary Руководства машины
// @Tags catalog
// @Produce json
// @Param id path string true "ID машины"
// @Success 200 {array} models.Manual
// @Failure 404 {object} helpers.Response
// @Router /api/machines/{id}/manuals [get]
func (h *CatalogHandler) ListMachineManuals(w http.ResponseWriter, r *http.Request) {
	m, err := h.catalog.Machine(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "catalog", err)
		return
	}
	helpers.JSON(w, http.StatusOK, m.Manuals)
}

// GetManual godoc
// @Summary Руководство по id
// @Tags catalog
// @Produce json
// @Param id path string true "ID руководства"
// @Success 200 {object} models.Manual
// @Failure 404 {object} helpers.Response
// @Router /api/manuals/{id} [get]
func (h *CatalogHandler) GetManual(w http.ResponseWriter, r *http.Request) {
	m, err := h.catalog.Manual(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "catalog", err)
		return
	}
	helpers.JSON(w, http.StatusOK, m)
}

// GetManualTOC godoc
// @Summary Оглавление руководства
// @Description Пустой q возвращает оглавление целиком; иначе узлы, совпавшие сами или через потомков.
// @Tags catalog
// @Produce json
// @Param id path string true "ID руководства"
// @Param q query string false "Фильтр"
// @Success 200 {array} models.TocNode
// @Failure 404 {object} helpers.Response
// @Router /api/manuals/{id}/toc [get]
func (h *CatalogHandler) GetManualTOC(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.catalog.ManualTOC(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, "catalog", err)
		return
	}
	helpers.JSON(w, http.StatusOK, nodes)
}

// GetPage godoc
// @Summary Страница руководства
// @Tags catalog
// @Produce json
// @Param id path string true "ID страницы"
// @Success 200 {object} navigation.ResolvedPage
// @Failure 404 {object} helpers.Response
// @Router /api/pages/{id} [get]
func (h *CatalogHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Page(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "catalog", err)
		return
	}
	helpers.JSON(w, http.StatusOK, p)
}

// Search godoc
// @Summary Поиск по руководствам машины
// @Tags search
// @Produce json
// @Param machine query string true "ID машины"
// @Param q query string true "Запрос"
// @Param manual query string false "Ограничить одним руководством"
// @Success 200 {array} models.SearchResult
// @Failure 404 {object} helpers.Response
// @Router /api/search [get]
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := h.search.Search(r.Context(), q.Get("machine"), q.Get("manual"), q.Get("q"))
	if err != nil {
		writeError(w, r, "search", err)
		return
	}
	logger.WithCtx(r.Context()).Debug("search: выполнен", zap.String("query", q.Get("q")), zap.Int("results", len(results)))
	helpers.JSON(w, http.StatusOK, results)
}

// CreateMachine godoc
// @Summary Добавить машину
// @Tags admin-catalog
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateModelRequest true "Машина"
// @Success 201 {object} models.ModelWithManuals
// @Failure 400 {object} helpers.Response
// @Failure 409 {object} helpers.Response
// @Router /api/admin/machines [post]
func (h *CatalogHandler) CreateMachine(w http.ResponseWriter, r *http.Request) {
	var req models.CreateModelRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "catalog", err)
		return
	}
	m, _, err := h.catalog.AddModel(r.Context(), req)
	if err != nil {
		writeError(w, r, "catalog", err)
		return
	}
	helpers.JSON(w, http.StatusCreated, m)
}

// UpdateMachine godoc
// @Summary Изменить машину
// @Tags admin-catalog
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID машины"
// @Param input body models.CreateModelRequest true "Поля машины"
// @Success 200 {object} models.ModelWithManuals
// @Failure 400 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/admin/machines/{id} [put]
func (h *CatalogHandler) UpdateMachine(w http.ResponseWriter, r *http.Request) {
	var req models.CreateModelRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "catalog", err)
		return
	}
	m, _, err := h.catalog.UpdateModel(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, r, "catalog", err)
		return
	}
	helpers.JSON(w, http.StatusOK, m)
}

// CreateManual godoc
// @Summary Зарегистрировать руководство
// @Tags admin-catalog
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateManualRequest true "Руководство"
// @Success 201 {object} models.Manual
// @Failure 400 {object} helpers.Response
// @Router /api/admin/manuals [post]
func (h *CatalogHandler) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req models.CreateManualRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "catalog", err)
		return
	}
	m, _, err := h.catalog.AddManual(r.Context(), req)
	if err != nil {
		writeError(w, r, "catalog", err)
		return
	}
	helpers.JSON(w, http.StatusCreated, m)
}
