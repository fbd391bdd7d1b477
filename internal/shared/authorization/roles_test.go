package authorization

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/trackr-io/trackr/internal/shared/constants"
)

func TestParseUserRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseUserRole("admin"))
	assert.Equal(t, RoleDeveloper, ParseUserRole("developer"))
	assert.Equal(t, RoleUser, ParseUserRole("superuser"))
	assert.Equal(t, RoleUser, ParseUserRole(""))
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin passes", "admin", http.StatusOK},
		{"developer blocked", "developer", http.StatusForbidden},
		{"anonymous blocked", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) {
				c.Set(constants.ContextKeyUserRole, tt.role)
				c.Next()
			}, RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
