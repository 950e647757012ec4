package middleware

import (
	"net/http"

	"manualdesk/internal/models"
	"manualdesk/internal/reqctx"
)

// ДОЛЖЕН стоять ПОСЛЕ JWTAuth, чтобы роль уже была в контексте.
func AdminFastLane(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if role, _ := reqctx.GetRole(r.Context()); role == string(models.RoleSuperAdmin) {
			r = r.WithContext(WithSkipGuards(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}
