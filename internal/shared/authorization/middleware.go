package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/shared/constants"
)

// forbiddenResponse mirrors the utils.APIResponse error envelope; utils
// imports this package, so it cannot be used here.
type forbiddenResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// RequireAdmin aborts with 403 unless the authenticated user has the global
// admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(constants.ContextKeyUserRole) != string(RoleAdmin) {
			var resp forbiddenResponse
			resp.Error.Type = "error"
			resp.Error.Message = "admin access required"
			c.JSON(http.StatusForbidden, resp)
			c.Abort()
			return
		}
		c.Next()
	}
}
