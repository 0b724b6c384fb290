package middleware

import (
	"net/http"

	"medimeet-api/internal/domain/entity"
	"medimeet-api/pkg/response"
)

// RequireRole admits callers whose token role is one of roles. It must run
// after Authenticate.
func RequireRole(roles ...entity.RoleName) func(http.Handler) http.Handler {
	allowed := make(map[entity.RoleName]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			if _, ok := allowed[actor.Role]; !ok {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var (
	RequireAdmin         = RequireRole(entity.RoleAdmin)
	RequireAdminOrDoctor = RequireRole(entity.RoleAdmin, entity.RoleDoctor)
)
