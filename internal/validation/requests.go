package validation

// RegisterRequest is the body of POST /users/:roleType/register.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,max=255"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	MobileNo string `json:"mobileNo" validate:"required,e164"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url,max=512"`
}

// BusinessRequest creates or edits the owner's pending business profile.
type BusinessRequest struct {
	OwnerID       string `json:"ownerId" validate:"required,max=64"`
	BusinessName  string `json:"businessName" validate:"required,max=255"`
	OwnerName     string `json:"ownerName" validate:"required,max=255"`
	MobileNo      string `json:"mobileNo" validate:"required,e164"`
	Telephone     string `json:"telephone" validate:"omitempty,max=32"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	BusinessRegNo string `json:"businessRegNo" validate:"required,max=64"`
	Address       string `json:"address" validate:"required,max=512"`
	ImageURL      string `json:"imageUrl" validate:"omitempty,url,max=512"`
	WebSite       string `json:"webSite" validate:"omitempty,url,max=255"`
	Facebook      string `json:"facebook" validate:"omitempty,max=255"`
	Instagram     string `json:"instagram" validate:"omitempty,max=255"`
}

type ContactRequest struct {
	OwnerID     string `json:"ownerId" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=255"`
	Designation string `json:"designation" validate:"omitempty,max=255"`
	Telephone   string `json:"telephone" validate:"required,max=32"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
}

// ProfileDecisionRequest approves or rejects a business or contact profile.
// Action is checked by the approval rules, not here.
type ProfileDecisionRequest struct {
	ReferenceID string `json:"referenceId" validate:"required,max=64"`
	Action      string `json:"action" validate:"required"`
	Comment     string `json:"comment" validate:"max=1000"`
}

type AccountDecisionRequest struct {
	Action  string `json:"action" validate:"required"`
	Comment string `json:"comment" validate:"max=1000"`
}

type BulkRequest struct {
	OwnerIDs []string `json:"ownerIds" validate:"required,min=1,max=250,dive,required"`
}
