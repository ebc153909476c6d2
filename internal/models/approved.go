package models

import "time"

// ApprovedBusiness mirrors the most recently approved business of an owner.
// There is at most one row per owner; re-approval replaces it.
type ApprovedBusiness struct {
	OwnerID       string    `gorm:"primaryKey;size:64" json:"ownerId"`
	BusinessID    string    `gorm:"size:64;index;not null" json:"businessId"`
	BusinessName  string    `gorm:"size:255;not null" json:"businessName"`
	OwnerName     string    `gorm:"size:255" json:"ownerName"`
	MobileNo      string    `gorm:"size:32" json:"mobileNo"`
	Telephone     string    `gorm:"size:32" json:"telephone"`
	Email         string    `gorm:"size:255" json:"email"`
	BusinessRegNo string    `gorm:"size:64" json:"businessRegNo"`
	Address       string    `gorm:"size:512" json:"address"`
	ImageURL      string    `gorm:"size:512" json:"imageUrl"`
	WebSite       string    `gorm:"size:255" json:"webSite"`
	Facebook      string    `gorm:"size:255" json:"facebook"`
	Instagram     string    `gorm:"size:255" json:"instagram"`
	SubmittedAt   time.Time `json:"submittedAt"`
	ApprovedAt    time.Time `json:"approvedAt"`
}

func (ApprovedBusiness) TableName() string { return "approved_businesses" }

type ApprovedBankBusiness struct {
	ApprovedBusiness
}

func (ApprovedBankBusiness) TableName() string { return "approved_bank_businesses" }

// NewApprovedBusiness snapshots an approved business row.
func NewApprovedBusiness(b *Business, approvedAt time.Time) *ApprovedBusiness {
	d := b.Details()
	return &ApprovedBusiness{
		OwnerID:       b.OwnerID,
		BusinessID:    b.ID,
		BusinessName:  d.BusinessName,
		OwnerName:     d.OwnerName,
		MobileNo:      d.MobileNo,
		Telephone:     d.Telephone,
		Email:         d.Email,
		BusinessRegNo: d.BusinessRegNo,
		Address:       d.Address,
		ImageURL:      d.ImageURL,
		WebSite:       d.WebSite,
		Facebook:      d.Facebook,
		Instagram:     d.Instagram,
		SubmittedAt:   b.CreatedAt,
		ApprovedAt:    approvedAt,
	}
}

// ToBusiness rebuilds the approved business row from the snapshot.
func (a *ApprovedBusiness) ToBusiness() *Business {
	b := &Business{
		ID:             a.BusinessID,
		OwnerID:        a.OwnerID,
		ApprovalStatus: StatusApproved,
		CreatedAt:      a.SubmittedAt,
		UpdatedAt:      a.ApprovedAt,
	}
	b.Apply(BusinessDetails{
		BusinessName:  a.BusinessName,
		OwnerName:     a.OwnerName,
		MobileNo:      a.MobileNo,
		Telephone:     a.Telephone,
		Email:         a.Email,
		BusinessRegNo: a.BusinessRegNo,
		Address:       a.Address,
		ImageURL:      a.ImageURL,
		WebSite:       a.WebSite,
		Facebook:      a.Facebook,
		Instagram:     a.Instagram,
	})
	return b
}
