package models

import "time"

// Contact is a contact-person profile. Merchant and bank contacts share one
// table and are told apart by RoleType.
type Contact struct {
	ID             string         `gorm:"primaryKey;size:64" json:"id"`
	OwnerID        string         `gorm:"size:64;index;not null" json:"ownerId"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Designation    string         `gorm:"size:255" json:"designation"`
	Telephone      string         `gorm:"size:32" json:"telephone"`
	Email          string         `gorm:"size:255" json:"email"`
	RoleType       RoleType       `gorm:"size:16;index;not null" json:"roleType"`
	ApprovalStatus ApprovalStatus `gorm:"size:16;index;not null" json:"approvalStatus"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"index" json:"updatedAt"`
}

func (Contact) TableName() string { return "contacts" }

type ContactDetails struct {
	Name        string
	Designation string
	Telephone   string
	Email       string
}

func (c *Contact) Apply(d ContactDetails) {
	c.Name = d.Name
	c.Designation = d.Designation
	c.Telephone = d.Telephone
	c.Email = d.Email
}
