package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/navigation"
	"manualdesk/internal/repository"
	"manualdesk/internal/services"
	"manualdesk/internal/utils/helpers"
)

// statusFor переводит доменную ошибку в HTTP-статус.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, navigation.ErrTargetNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrAIUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError пишет ошибку в конверте; текст 500-х наружу не отдаётся.
func writeError(w http.ResponseWriter, r *http.Request, area string, err error) {
	status := statusFor(err)
	log := logger.WithCtx(r.Context())
	if status == http.StatusInternalServerError {
		log.Error(area+": внутренняя ошибка", zap.Error(err))
		helpers.Error(w, status, "Внутренняя ошибка сервера")
		return
	}
	log.Warn(area+": запрос отклонён", zap.Int("status", status), zap.Error(err))
	helpers.Error(w, status, err.Error())
}

func badJSON(w http.ResponseWriter, r *http.Request, area string, err error) {
	logger.WithCtx(r.Context()).Warn(area+": невалидный JSON", zap.Error(err))
	helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
}
