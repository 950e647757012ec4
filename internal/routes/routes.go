package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"manualdesk/internal/handlers"
	"manualdesk/internal/middleware"
	"manualdesk/internal/models"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Catalog   *handlers.CatalogHandler
	Viewer    *handlers.ViewerHandler
	Settings  *handlers.SettingsHandler
	Analytics *handlers.AnalyticsHandler
	Logs      *handlers.AdminLogsHandler
	// MCP — streamable HTTP транспорт MCP, монтируется на MCPEndpoint.
	MCP         http.Handler
	MCPEndpoint string
}

func InitRoutes(router *mux.Router, jwtSecret string, h Handlers) {
	router.Use(middleware.RequestID, middleware.Recoverer, middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)

	api.HandleFunc("/machines", h.Catalog.ListMachines).Methods(http.MethodGet)
	api.HandleFunc("/machines/{id}", h.Catalog.GetMachine).Methods(http.MethodGet)
	api.HandleFunc("/machines/{id}/manuals", h.Catalog.ListMachineManuals).Methods(http.MethodGet)
	api.HandleFunc("/manuals/{id}", h.Catalog.GetManual).Methods(http.MethodGet)
	api.HandleFunc("/manuals/{id}/toc", h.Catalog.GetManualTOC).Methods(http.MethodGet)
	api.HandleFunc("/pages/{id}", h.Catalog.GetPage).Methods(http.MethodGet)
	api.HandleFunc("/search", h.Catalog.Search).Methods(http.MethodGet)

	api.HandleFunc("/analytics/events", h.Analytics.Ingest).Methods(http.MethodPost)

	// --- Просмотрщик ---
	viewer := api.PathPrefix("/viewer/sessions").Subrouter()
	viewer.HandleFunc("", h.Viewer.Open).Methods(http.MethodPost)
	viewer.HandleFunc("/{sid}", h.Viewer.Get).Methods(http.MethodGet)
	viewer.HandleFunc("/{sid}", h.Viewer.Close).Methods(http.MethodDelete)
	viewer.HandleFunc("/{sid}/manual", h.Viewer.SelectManual).Methods(http.MethodPost)
	viewer.HandleFunc("/{sid}/toc", h.Viewer.SelectTocNode).Methods(http.MethodPost)
	viewer.HandleFunc("/{sid}/navigate", h.Viewer.Navigate).Methods(http.MethodPost)
	viewer.HandleFunc("/{sid}/search", h.Viewer.Search).Methods(http.MethodPost)
	viewer.HandleFunc("/{sid}/search", h.Viewer.ClearSearch).Methods(http.MethodDelete)
	viewer.HandleFunc("/{sid}/results", h.Viewer.OpenResult).Methods(http.MethodPost)
	viewer.HandleFunc("/{sid}/sidebar", h.Viewer.Sidebar).Methods(http.MethodPost)
	viewer.HandleFunc("/{sid}/assistant", h.Viewer.Troubleshoot).Methods(http.MethodPost)
	viewer.HandleFunc("/{sid}/procedure", h.Viewer.Procedure).Methods(http.MethodPost)

	// --- Админка, защищена JWT ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.JWTAuth(jwtSecret), middleware.AdminFastLane)

	catalog := admin.PathPrefix("").Subrouter()
	catalog.Use(middleware.AnyRole(models.RoleTechnician))
	catalog.HandleFunc("/machines", h.Catalog.CreateMachine).Methods(http.MethodPost)
	catalog.HandleFunc("/machines/{id}", h.Catalog.UpdateMachine).Methods(http.MethodPut)
	catalog.HandleFunc("/manuals", h.Catalog.CreateManual).Methods(http.MethodPost)

	billing := admin.PathPrefix("/billing").Subrouter()
	billing.Use(middleware.AnyRole(models.RoleBillingAdmin))
	billing.HandleFunc("/plans", h.Settings.ListPlans).Methods(http.MethodGet)
	billing.HandleFunc("/invoices", h.Settings.ListInvoices).Methods(http.MethodGet)

	// Super Admin проходит через AdminFastLane; остальным сюда нельзя.
	super := admin.PathPrefix("").Subrouter()
	super.Use(middleware.AnyRole())
	super.HandleFunc("/users", h.Settings.ListUsers).Methods(http.MethodGet)
	super.HandleFunc("/users", h.Settings.InviteUser).Methods(http.MethodPost)
	super.HandleFunc("/users/{id}", h.Settings.UpdateUser).Methods(http.MethodPatch)
	super.HandleFunc("/audit", h.Settings.ListAudit).Methods(http.MethodGet)
	super.HandleFunc("/branding", h.Settings.GetBranding).Methods(http.MethodGet)
	super.HandleFunc("/branding", h.Settings.UpdateBranding).Methods(http.MethodPut)
	super.HandleFunc("/analytics/summary", h.Analytics.Summary).Methods(http.MethodGet)
	super.HandleFunc("/logs", h.Logs.GetLogs).Methods(http.MethodGet)
	super.HandleFunc("/logs/days", h.Logs.ListDays).Methods(http.MethodGet)
	super.HandleFunc("/logs/stats", h.Logs.Stats).Methods(http.MethodGet)

	if h.MCP != nil && h.MCPEndpoint != "" {
		router.PathPrefix(h.MCPEndpoint).Handler(h.MCP)
	}
}
