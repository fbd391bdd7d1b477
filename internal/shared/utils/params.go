package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/errors"
)

// ParseIDParam reads a positive numeric path parameter.
func ParseIDParam(c *gin.Context, name, entity string) (uint, error) {
	id, ok := ParseUintParam(c, name)
	if !ok {
		return 0, errors.NewValidationError("invalid " + entity + " ID")
	}
	return id, nil
}

// ParseOptionalUintQuery returns nil when the query key is absent.
func ParseOptionalUintQuery(c *gin.Context, key string) (*uint, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, errors.NewValidationError("invalid " + key)
	}
	id := uint(v)
	return &id, nil
}

// CurrentUser returns the identity set by the auth middleware.
func CurrentUser(c *gin.Context) (uint, authorization.UserRole, error) {
	raw, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return 0, "", errors.NewUnauthorizedError("user not authenticated")
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		return 0, "", errors.NewUnauthorizedError("user not authenticated")
	}
	role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
	return userID, role, nil
}
