package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Approval decisions
	PermissionApprovalDecide = "approval:decide"

	// Profile permissions
	PermissionProfileRead  = "profile:read"
	PermissionProfileWrite = "profile:write"
)

// UserClaims is the bearer token payload issued by the identity service.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Role        RoleType `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the token belongs to an admin.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role RoleType) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionApprovalDecide,
			PermissionProfileRead,
			PermissionProfileWrite,
		}
	case RoleMerchant, RoleBank:
		return []string{
			PermissionProfileRead,
			PermissionProfileWrite,
		}
	case RoleUser:
		return []string{
			PermissionProfileRead,
		}
	default:
		return []string{}
	}
}
