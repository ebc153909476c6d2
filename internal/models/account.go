package models

import "time"

// Account is a registered user. Merchant and bank accounts own business and
// contact profiles and go through the approval workflow themselves.
type Account struct {
	ID             string         `gorm:"primaryKey;size:64" json:"id"`
	FullName       string         `gorm:"size:255;not null" json:"fullName"`
	Email          string         `gorm:"size:255" json:"email,omitempty"`
	MobileNo       string         `gorm:"size:32;index" json:"mobileNo"`
	ImageURL       string         `gorm:"size:512" json:"imageUrl,omitempty"`
	Role           RoleType       `gorm:"size:16;index;not null" json:"role"`
	ApprovalStatus ApprovalStatus `gorm:"size:16;index;not null" json:"approvalStatus"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (Account) TableName() string { return "accounts" }

// HasEmail reports whether the account can receive email notifications.
func (a *Account) HasEmail() bool {
	return a.Email != ""
}
