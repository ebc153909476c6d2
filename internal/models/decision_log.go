package models

import "time"

// RejectedProfileUpdate records a REJECT decision on a business or contact.
type RejectedProfileUpdate struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	ReferenceID string    `gorm:"size:64;index;not null" json:"referenceId"`
	RoleType    RoleType  `gorm:"size:16;not null" json:"roleType"`
	InfoType    InfoType  `gorm:"size:16;not null" json:"infoType"`
	Comment     string    `gorm:"type:text" json:"comment"`
	ReviewerID  string    `gorm:"size:64" json:"reviewerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (RejectedProfileUpdate) TableName() string { return "rejected_profile_updates" }

// BlockedMerchantComment records the reason given when an account is blocked.
type BlockedMerchantComment struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	AccountID  string    `gorm:"size:64;index;not null" json:"accountId"`
	Comment    string    `gorm:"type:text" json:"comment"`
	ReviewerID string    `gorm:"size:64" json:"reviewerId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (BlockedMerchantComment) TableName() string { return "blocked_merchant_comments" }
