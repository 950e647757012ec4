package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"manualdesk/internal/logger"
	"manualdesk/internal/reqctx"
	"manualdesk/internal/utils"
	"manualdesk/internal/utils/helpers"
)

func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				helpers.Error(w, http.StatusUnauthorized, "Отсутствует access token")
				return
			}

			claims, err := utils.ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный токен")
				return
			}

			ctx := reqctx.WithUserID(r.Context(), claims.UserID)
			ctx = reqctx.WithRole(ctx, claims.Role)

			logger.WithCtx(ctx).Debug("JWTAuth: токен валиден", zap.String("role", claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
