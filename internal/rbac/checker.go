package rbac

import (
	"context"
	"strings"
)

// Checker answers whether a role holds a permission. Grants are either
// exact ("quiz:export"), a prefix wildcard ("quiz:*") or "*".
type Checker struct {
	policy map[string][]string
}

// NewChecker uses policy, or RolePermissions when policy is nil.
func NewChecker(policy map[string][]string) *Checker {
	if policy == nil {
		policy = RolePermissions
	}
	return &Checker{policy: policy}
}

func (c *Checker) Has(role, perm string) bool {
	for _, grant := range c.policy[role] {
		if grants(grant, perm) {
			return true
		}
	}
	return false
}

// Any reports whether role holds at least one of perms.
func (c *Checker) Any(role string, perms ...string) bool {
	for _, p := range perms {
		if c.Has(role, p) {
			return true
		}
	}
	return false
}

func grants(grant, perm string) bool {
	if prefix, ok := strings.CutSuffix(grant, "*"); ok {
		return strings.HasPrefix(perm, prefix)
	}
	return grant == perm
}

type roleKey struct{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext returns the caller's role, or "" when none was attached.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}
