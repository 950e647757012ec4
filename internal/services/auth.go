package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
	"manualdesk/internal/repository"
	"manualdesk/internal/utils"
)

// LoginAuditor — запись попыток входа в журнал аудита.
type LoginAuditor interface {
	RecordLogin(ctx context.Context, user *models.User, success bool)
}

type AuthService struct {
	repo      repository.SettingsRepo
	audit     LoginAuditor
	jwtSecret string
	accessTTL time.Duration
	now       func() time.Time
}

func NewAuthService(repo repository.SettingsRepo, audit LoginAuditor, jwtSecret string, accessTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, audit: audit, jwtSecret: jwtSecret, accessTTL: accessTTL, now: time.Now}
}

// Login проверяет email и пароль и выдаёт access-токен. Войти может только
// активный пользователь.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	log := logger.WithCtx(ctx).With(zap.String("email", email))
	log.Info("auth: попытка входа")

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("auth: пользователь не найден")
			s.audit.RecordLogin(ctx, nil, false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPassword(user.PasswordHash, req.Password) {
		log.Warn("auth: неверный пароль")
		s.audit.RecordLogin(ctx, user, false)
		return nil, ErrInvalidCredentials
	}
	if user.Status != models.StatusActive {
		log.Warn("auth: пользователь не активен", zap.String("status", string(user.Status)))
		s.audit.RecordLogin(ctx, user, false)
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, string(user.Role), s.accessTTL)
	if err != nil {
		log.Error("auth: ошибка генерации токена", zap.Error(err))
		return nil, err
	}

	user.LastLogin = s.now().UTC().Format(time.RFC3339)
	if updated, err := s.repo.UpdateUser(ctx, *user); err != nil {
		log.Warn("auth: не удалось обновить lastLogin", zap.Error(err))
	} else {
		user = updated
	}

	s.audit.RecordLogin(ctx, user, true)
	log.Info("auth: вход выполнен", zap.String("user_id", user.ID))
	return &models.LoginResponse{AccessToken: token, User: *user, Role: user.Role}, nil
}

// SeedPasswords задаёт общий пароль всем пользователям без хеша.
func SeedPasswords(users []models.User, password string) ([]models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, len(users))
	for i, u := range users {
		if u.PasswordHash == "" {
			u.PasswordHash = hash
		}
		out[i] = u
	}
	return out, nil
}
