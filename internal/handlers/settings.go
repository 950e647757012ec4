package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"manualdesk/internal/models"
	"manualdesk/internal/services"
	"manualdesk/internal/utils/helpers"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// ListUsers godoc
// @Summary Пользователи
// @Tags admin-users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.User
// @Router /api/admin/users [get]
func (h *SettingsHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.settings.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, "settings", err)
		return
	}
	helpers.JSON(w, http.StatusOK, users)
}

// InviteUser godoc
// @Summary Пригласить пользователя
// @Tags admin-users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.InviteUserRequest true "Имя, email, роль"
// @Success 201 {object} models.User
// @Failure 400 {object} helpers.Response
// @Failure 409 {object} helpers.Response
// @Router /api/admin/users [post]
func (h *SettingsHandler) InviteUser(w http.ResponseWriter, r *http.Request) {
	var req models.InviteUserRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "settings", err)
		return
	}
	u, err := h.settings.InviteUser(r.Context(), req)
	if err != nil {
		writeError(w, r, "settings", err)
		return
	}
	helpers.JSON(w, http.StatusCreated, u)
}

// UpdateUser godoc
// @Summary Изменить роль или статус пользователя
// @Tags admin-users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param input body models.UpdateUserRequest true "Изменяемые поля"
// @Success 200 {object} models.User
// @Failure 400 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/admin/users/{id} [patch]
func (h *SettingsHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "settings", err)
		return
	}
	u, err := h.settings.UpdateUser(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, r, "settings", err)
		return
	}
	helpers.JSON(w, http.StatusOK, u)
}

// ListPlans godoc
// @Summary Тарифные планы
// @Tags admin-billing
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.SubscriptionPlan
// @Router /api/admin/billing/plans [get]
func (h *SettingsHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.settings.ListPlans(r.Context())
	if err != nil {
		writeError(w, r, "settings", err)
		return
	}
	helpers.JSON(w, http.StatusOK, plans)
}

// ListInvoices godoc
// @Summary Счета
// @Tags admin-billing
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.Invoice
// @Router /api/admin/billing/invoices [get]
func (h *SettingsHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.settings.ListInvoices(r.Context())
	if err != nil {
		writeError(w, r, "settings", err)
		return
	}
	helpers.JSON(w, http.StatusOK, invoices)
}

// ListAudit godoc
// @Summary Журнал аудита
// @Tags admin-audit
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Сколько последних записей (0: все)"
// @Success 200 {array} models.AuditLogEntry
// @Router /api/admin/audit [get]
func (h *SettingsHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			helpers.Error(w, http.StatusBadRequest, "Некорректный limit")
			return
		}
		limit = n
	}
	entries, err := h.settings.ListAudit(r.Context(), limit)
	if err != nil {
		writeError(w, r, "settings", err)
		return
	}
	helpers.JSON(w, http.StatusOK, entries)
}

// GetBranding godoc
// @Summary Брендинг
// @Tags admin-branding
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.BrandingConfig
// @Router /api/admin/branding [get]
func (h *SettingsHandler) GetBranding(w http.ResponseWriter, r *http.Request) {
	b, err := h.settings.GetBranding(r.Context())
	if err != nil {
		writeError(w, r, "settings", err)
		return
	}
	helpers.JSON(w, http.StatusOK, b)
}

// UpdateBranding godoc
// @Summary Сохранить брендинг
// @Tags admin-branding
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.BrandingConfig true "Брендинг"
// @Success 200 {object} models.BrandingConfig
// @Failure 400 {object} helpers.Response
// @Router /api/admin/branding [put]
func (h *SettingsHandler) UpdateBranding(w http.ResponseWriter, r *http.Request) {
	var req models.BrandingConfig
	if err := helpers.Decode(r, &req); err != nil {
		badJSON(w, r, "settings", err)
		return
	}
	b, err := h.settings.UpdateBranding(r.Context(), req)
	if err != nil {
		writeError(w, r, "settings", err)
		return
	}
	helpers.JSON(w, http.StatusOK, b)
}
