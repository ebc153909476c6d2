package models

import "time"

// Business is a merchant business profile submission. A row is either the
// owner's single PENDING submission or a decided (APPROVED/REJECTED) one.
type Business struct {
	ID             string         `gorm:"primaryKey;size:64" json:"id"`
	OwnerID        string         `gorm:"size:64;index;not null" json:"ownerId"`
	BusinessName   string         `gorm:"size:255;not null" json:"businessName"`
	OwnerName      string         `gorm:"size:255" json:"ownerName"`
	MobileNo       string         `gorm:"size:32" json:"mobileNo"`
	Telephone      string         `gorm:"size:32" json:"telephone"`
	Email          string         `gorm:"size:255" json:"email"`
	BusinessRegNo  string         `gorm:"size:64" json:"businessRegNo"`
	Address        string         `gorm:"size:512" json:"address"`
	ImageURL       string         `gorm:"size:512" json:"imageUrl"`
	WebSite        string         `gorm:"size:255" json:"webSite"`
	Facebook       string         `gorm:"size:255" json:"facebook"`
	Instagram      string         `gorm:"size:255" json:"instagram"`
	ApprovalStatus ApprovalStatus `gorm:"size:16;index;not null" json:"approvalStatus"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"index" json:"updatedAt"`
}

func (Business) TableName() string { return "businesses" }

// BankBusiness has the same shape as Business but is stored for bank owners.
type BankBusiness struct {
	Business
}

func (BankBusiness) TableName() string { return "bank_businesses" }

// BusinessDetails holds the owner-editable fields of a business profile.
type BusinessDetails struct {
	BusinessName  string
	OwnerName     string
	MobileNo      string
	Telephone     string
	Email         string
	BusinessRegNo string
	Address       string
	ImageURL      string
	WebSite       string
	Facebook      string
	Instagram     string
}

// Apply overwrites the editable fields.
func (b *Business) Apply(d BusinessDetails) {
	b.BusinessName = d.BusinessName
	b.OwnerName = d.OwnerName
	b.MobileNo = d.MobileNo
	b.Telephone = d.Telephone
	b.Email = d.Email
	b.BusinessRegNo = d.BusinessRegNo
	b.Address = d.Address
	b.ImageURL = d.ImageURL
	b.WebSite = d.WebSite
	b.Facebook = d.Facebook
	b.Instagram = d.Instagram
}

// Details returns the editable fields.
func (b *Business) Details() BusinessDetails {
	return BusinessDetails{
		BusinessName:  b.BusinessName,
		OwnerName:     b.OwnerName,
		MobileNo:      b.MobileNo,
		Telephone:     b.Telephone,
		Email:         b.Email,
		BusinessRegNo: b.BusinessRegNo,
		Address:       b.Address,
		ImageURL:      b.ImageURL,
		WebSite:       b.WebSite,
		Facebook:      b.Facebook,
		Instagram:     b.Instagram,
	}
}
