package middleware

import (
	"net/http"

	"manualdesk/internal/models"
	"manualdesk/internal/reqctx"
	"manualdesk/internal/utils/helpers"
)

func AnyRole(allowedRoles ...models.UserRole) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		roleSet[string(r)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SkipGuards(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			userRole, ok := reqctx.GetRole(r.Context())
			if !ok {
				helpers.Error(w, http.StatusForbidden, "Не удалось определить роль")
				return
			}
			if _, found := roleSet[userRole]; !found {
				helpers.Error(w, http.StatusForbidden, "Доступ запрещён")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
