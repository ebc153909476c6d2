package models

import "strings"

// ApprovalStatus is the lifecycle state shared by accounts, businesses and contacts.
type ApprovalStatus string

const (
	StatusPending   ApprovalStatus = "PENDING"
	StatusApproved  ApprovalStatus = "APPROVED"
	StatusRejected  ApprovalStatus = "REJECTED"
	StatusBlocked   ApprovalStatus = "BLOCKED"
	StatusUnblocked ApprovalStatus = "UNBLOCKED"
)

// ApprovalStatuses lists every status in declaration order.
var ApprovalStatuses = []ApprovalStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusBlocked,
	StatusUnblocked,
}

// IsActive reports whether an account in this status may operate publicly.
func (s ApprovalStatus) IsActive() bool {
	return s == StatusApproved || s == StatusUnblocked
}

// ApprovalAction is an admin decision applied to an approval status.
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "APPROVE"
	ActionReject  ApprovalAction = "REJECT"
	ActionBlock   ApprovalAction = "BLOCK"
	ActionUnblock ApprovalAction = "UNBLOCK"
)

// ApprovalActions lists every action in declaration order.
var ApprovalActions = []ApprovalAction{
	ActionApprove,
	ActionReject,
	ActionBlock,
	ActionUnblock,
}

type RoleType string

const (
	RoleUser     RoleType = "USER"
	RoleMerchant RoleType = "MERCHANT"
	RoleBank     RoleType = "BANK"
	RoleAdmin    RoleType = "ADMIN"
)

// IsBusinessRole reports whether the role owns business and contact profiles.
func (r RoleType) IsBusinessRole() bool {
	return r == RoleMerchant || r == RoleBank
}

// ParseRoleType accepts the route form of a role, e.g. "MERCHANT" or "merchant".
func ParseRoleType(value string) (RoleType, bool) {
	switch RoleType(strings.ToUpper(value)) {
	case RoleUser:
		return RoleUser, true
	case RoleMerchant:
		return RoleMerchant, true
	case RoleBank:
		return RoleBank, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// InfoType tags which profile a rejection refers to.
type InfoType string

const (
	InfoBusiness InfoType = "BUSINESS"
	InfoContact  InfoType = "CONTACT"
)
