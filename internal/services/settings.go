package services

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
	"manualdesk/internal/repository"
	"manualdesk/internal/reqctx"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// SettingsService — администрирование: пользователи, биллинг, аудит, брендинг.
type SettingsService struct {
	repo repository.SettingsRepo
	now  func() time.Time
}

func NewSettingsService(repo repository.SettingsRepo) *SettingsService {
	return &SettingsService{repo: repo, now: time.Now}
}

func (s *SettingsService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

// InviteUser создаёт пользователя в статусе Invited.
func (s *SettingsService) InviteUser(ctx context.Context, req models.InviteUserRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return nil, fmt.Errorf("%w: имя обязательно", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: некорректный email %q", ErrValidation, email)
	}
	if req.Role == "" {
		req.Role = models.RoleReadOnly
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: неизвестная роль %q", ErrValidation, req.Role)
	}

	u, err := s.repo.CreateUser(ctx, models.User{
		ID:     "u-" + uuid.NewString()[:8],
		Name:   name,
		Email:  email,
		Role:   req.Role,
		Status: models.StatusInvited,
	})
	s.Record(ctx, "Invite User", email, err == nil)
	if err != nil {
		return nil, err
	}
	logger.WithCtx(ctx).Info("settings: пользователь приглашён", zap.String("target_user", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// UpdateUser меняет имя, роль и статус; незаданные поля остаются прежними.
func (s *SettingsService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: имя обязательно", ErrValidation)
		}
		u.Name = name
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, fmt.Errorf("%w: неизвестная роль %q", ErrValidation, *req.Role)
		}
		u.Role = *req.Role
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: неизвестный статус %q", ErrValidation, *req.Status)
		}
		u.Status = *req.Status
	}

	updated, err := s.repo.UpdateUser(ctx, *u)
	s.Record(ctx, "Update User", u.Email, err == nil)
	return updated, err
}

func (s *SettingsService) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	return s.repo.ListPlans(ctx)
}

func (s *SettingsService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *SettingsService) ListAudit(ctx context.Context, limit int) ([]models.AuditLogEntry, error) {
	return s.repo.ListAudit(ctx, limit)
}

func (s *SettingsService) GetBranding(ctx context.Context) (models.BrandingConfig, error) {
	return s.repo.GetBranding(ctx)
}

// UpdateBranding сохраняет брендинг целиком. Цвета только в формате #RRGGBB.
func (s *SettingsService) UpdateBranding(ctx context.Context, b models.BrandingConfig) (models.BrandingConfig, error) {
	b.ProductName = strings.TrimSpace(b.ProductName)
	if b.ProductName == "" {
		return models.BrandingConfig{}, fmt.Errorf("%w: productName обязателен", ErrValidation)
	}
	for field, c := range map[string]string{"primaryColor": b.PrimaryColor, "accentColor": b.AccentColor} {
		if !hexColorRe.MatchString(c) {
			return models.BrandingConfig{}, fmt.Errorf("%w: %s должен быть в формате #RRGGBB", ErrValidation, field)
		}
	}
	err := s.repo.SaveBranding(ctx, b)
	s.Record(ctx, "Update Branding", b.ProductName, err == nil)
	if err != nil {
		return models.BrandingConfig{}, err
	}
	return b, nil
}

// Record пишет действие текущего пользователя (из контекста запроса) в журнал.
func (s *SettingsService) Record(ctx context.Context, action, target string, success bool) {
	name, role := "Unknown", "-"
	if id, ok := reqctx.GetUserID(ctx); ok && id != "" {
		if u, err := s.repo.GetUserByID(ctx, id); err == nil {
			name, role = u.Name, string(u.Role)
		}
	}
	s.recordAs(ctx, name, role, action, target, success)
}

func (s *SettingsService) recordAs(ctx context.Context, name, role, action, target string, success bool) {
	status := "Success"
	if !success {
		status = "Failed"
	}
	ip, _ := reqctx.GetClientIP(ctx)
	entry := models.AuditLogEntry{
		ID:        "log_" + uuid.NewString()[:8],
		Action:    action,
		User:      name,
		UserRole:  role,
		Target:    target,
		Timestamp: s.now().UTC(),
		IPAddress: ip,
		Status:    status,
	}
	if err := s.repo.AppendAudit(ctx, entry); err != nil {
		logger.WithCtx(ctx).Error("settings: запись аудита не сохранена", zap.String("action", action), zap.Error(err))
	}
}

// RecordLogin пишет в журнал результат входа. user == nil означает неизвестного пользователя.
func (s *SettingsService) RecordLogin(ctx context.Context, user *models.User, success bool) {
	if user == nil {
		s.recordAs(ctx, "Unknown", "-", "Failed Login", "System", false)
		return
	}
	action := "User Login"
	if !success {
		action = "Failed Login"
	}
	s.recordAs(ctx, user.Name, string(user.Role), action, "System", success)
}
