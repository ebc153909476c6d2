package models

import "time"

// SearchIndexEntry is the listing projection of a merchant or bank account
// joined with its latest business submission.
type SearchIndexEntry struct {
	UserID                 string         `gorm:"primaryKey;size:64" json:"userId"`
	FullName               string         `gorm:"size:255;index" json:"fullName"`
	MerchantApprovalStatus ApprovalStatus `gorm:"size:16" json:"merchantApprovalStatus"`
	JoinedOn               time.Time      `json:"joinedOn"`
	ImageURL               string         `gorm:"size:512" json:"imageUrl,omitempty"`
	UserRole               RoleType       `gorm:"size:16;index" json:"userRole"`
	BusinessID             string         `gorm:"size:64" json:"businessId,omitempty"`
	BusinessName           string         `gorm:"size:255;index" json:"businessName,omitempty"`
	BusinessApprovalStatus ApprovalStatus `gorm:"size:16" json:"businessApprovalStatus,omitempty"`
	BusinessImageURL       string         `gorm:"size:512" json:"businessImageUrl,omitempty"`
}

func (SearchIndexEntry) TableName() string { return "merchant_bank_search_index" }
