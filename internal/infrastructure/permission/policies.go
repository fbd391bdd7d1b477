package permission

import (
	"fmt"

	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/shared/authorization"
)

// DefaultPolicies grants project creation to admins and developers and user
// management to admins.
func DefaultPolicies() [][]string {
	return [][]string{
		{authorization.RoleAdmin.String(), ports.ResourceProject, ports.ActionCreate},
		{authorization.RoleDeveloper.String(), ports.ResourceProject, ports.ActionCreate},
		{authorization.RoleAdmin.String(), ports.ResourceUser, ports.ActionManage},
	}
}

// EnsureDefaultPolicies adds any default policy missing from storage.
func (e *Enforcer) EnsureDefaultPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, p := range DefaultPolicies() {
		has, err := e.enforcer.HasPolicy(p[0], p[1], p[2])
		if err != nil {
			return fmt.Errorf("failed to check policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
		if has {
			continue
		}
		if _, err := e.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			e.logger.Errorw("failed to add default policy", "error", err, "role", p[0], "resource", p[1], "action", p[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
		added++
	}

	e.logger.Infow("default permissions ensured", "added", added)
	return nil
}
