package merchant

import "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

// BusinessInput carries the owner-editable business fields.
type BusinessInput struct {
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

func (in BusinessInput) details() models.BusinessDetails {
	return models.BusinessDetails{
		BusinessName:  in.BusinessName,
		OwnerName:     in.OwnerName,
		MobileNo:      in.MobileNo,
		Telephone:     in.Telephone,
		Email:         in.Email,
		BusinessRegNo: in.BusinessRegNo,
		Address:       in.Address,
		ImageURL:      in.ImageURL,
		WebSite:       in.WebSite,
		Facebook:      in.Facebook,
		Instagram:     in.Instagram,
	}
}

type ContactInput struct {
	Name        string
	Designation string
	Telephone   string
	Email       string
}

func (in ContactInput) details() models.ContactDetails {
	return models.ContactDetails{
		Name:        in.Name,
		Designation: in.Designation,
		Telephone:   in.Telephone,
		Email:       in.Email,
	}
}

// AccountInput registers a new account.
type AccountInput struct {
	FullName string
	Email    string
	MobileNo string
	ImageURL string
	Role     models.RoleType
}

// Decision is an admin decision on a business or contact profile. Action is
// the raw wire token. Role is ignored for contacts.
type Decision struct {
	ReferenceID string
	Role        models.RoleType
	Action      string
	Comment     string
	ReviewerID  string
	TimeZone    string
}

// AccountDecision is an admin decision on an owner account.
type AccountDecision struct {
	AccountID  string
	Action     string
	Comment    string
	ReviewerID string
	TimeZone   string
}

// LoginProfile tells a client at login whether the owner has a business
// profile and where it stands.
type LoginProfile struct {
	Updated        bool                  `json:"updated"`
	ApprovalStatus models.ApprovalStatus `json:"approvalStatus,omitempty"`
}

// PendingContact pairs a pending contact with its owner's latest business.
type PendingContact struct {
	Contact  models.Contact   `json:"contact"`
	Business *models.Business `json:"business"`
}

// OwnerSummary is an owner account with its latest business. Active is set
// when the business is approved and the account is APPROVED or UNBLOCKED.
type OwnerSummary struct {
	Account  *models.Account  `json:"account"`
	Business *models.Business `json:"business,omitempty"`
	Active   bool             `json:"active"`
}
