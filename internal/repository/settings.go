package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"manualdesk/internal/models"
)

// SettingsRepo — пользователи, тарифы, счета, журнал аудита и брендинг.
// Демо-данные живут в памяти процесса.
type SettingsRepo interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	UpdateUser(ctx context.Context, u models.User) (*models.User, error)

	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)

	ListAudit(ctx context.Context, limit int) ([]models.AuditLogEntry, error)
	AppendAudit(ctx context.Context, e models.AuditLogEntry) error

	GetBranding(ctx context.Context) (models.BrandingConfig, error)
	SaveBranding(ctx context.Context, b models.BrandingConfig) error
}

type settingsRepo struct {
	mu       sync.RWMutex
	users    []models.User
	plans    []models.SubscriptionPlan
	invoices []models.Invoice
	audit    []models.AuditLogEntry // новые записи в начале
	branding models.BrandingConfig
}

type SettingsSeed struct {
	Users    []models.User
	Plans    []models.SubscriptionPlan
	Invoices []models.Invoice
	Audit    []models.AuditLogEntry
	Branding models.BrandingConfig
}

func NewSettingsRepo(seed SettingsSeed) SettingsRepo {
	return &settingsRepo{
		users:    append([]models.User(nil), seed.Users...),
		plans:    append([]models.SubscriptionPlan(nil), seed.Plans...),
		invoices: append([]models.Invoice(nil), seed.Invoices...),
		audit:    append([]models.AuditLogEntry(nil), seed.Audit...),
		branding: seed.Branding,
	}
}

func (r *settingsRepo) ListUsers(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.User(nil), r.users...), nil
}

func (r *settingsRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("пользователь %s: %w", id, ErrNotFound)
}

func (r *settingsRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("пользователь %s: %w", email, ErrNotFound)
}

func (r *settingsRepo) CreateUser(_ context.Context, u models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.ID == u.ID || strings.EqualFold(existing.Email, u.Email) {
			return nil, fmt.Errorf("пользователь %s: %w", u.Email, ErrConflict)
		}
	}
	r.users = append(r.users, u)
	out := u
	return &out, nil
}

func (r *settingsRepo) UpdateUser(_ context.Context, u models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i] = u
			out := u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("пользователь %s: %w", u.ID, ErrNotFound)
}

func (r *settingsRepo) ListPlans(_ context.Context) ([]models.SubscriptionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.SubscriptionPlan(nil), r.plans...), nil
}

func (r *settingsRepo) ListInvoices(_ context.Context) ([]models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Invoice(nil), r.invoices...), nil
}

// ListAudit — журнал от новых к старым; limit <= 0 означает все записи.
func (r *settingsRepo) ListAudit(_ context.Context, limit int) ([]models.AuditLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.audit)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]models.AuditLogEntry(nil), r.audit[:n]...), nil
}

func (r *settingsRepo) AppendAudit(_ context.Context, e models.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audit = append([]models.AuditLogEntry{e}, r.audit...)
	return nil
}

func (r *settingsRepo) GetBranding(_ context.Context) (models.BrandingConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.branding, nil
}

func (r *settingsRepo) SaveBranding(_ context.Context, b models.BrandingConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.branding = b
	return nil
}
