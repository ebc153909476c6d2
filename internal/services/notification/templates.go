package notification

import (
	"fmt"
	"strings"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
)

// NamePlaceholder is replaced by the recipient's full name in email bodies.
const NamePlaceholder = "<MERCHANT-NAME>"

// Template is the SMS and email copy sent for one approval outcome.
type Template struct {
	SMS          string
	EmailSubject string
	EmailBody    string
}

var templates = map[models.ApprovalStatus]Template{
	models.StatusApproved: {
		SMS:          "Your QPON merchant profile has been approved. You can now publish deals.",
		EmailSubject: "Your QPON profile is approved",
		EmailBody:    "Hi " + NamePlaceholder + ",\n\nYour profile has been reviewed and approved. You can now log in and publish deals.\n\nThe QPON Team",
	},
	models.StatusRejected: {
		SMS:          "Your QPON merchant profile update was not approved. Please review the details and resubmit.",
		EmailSubject: "Your QPON profile update needs changes",
		EmailBody:    "Hi " + NamePlaceholder + ",\n\nWe could not approve your latest profile update. Please review your details and submit again.\n\nThe QPON Team",
	},
	models.StatusBlocked: {
		SMS:          "Your QPON merchant account has been blocked. Please contact support.",
		EmailSubject: "Your QPON account has been blocked",
		EmailBody:    "Hi " + NamePlaceholder + ",\n\nYour account has been blocked and your deals are no longer visible. Please contact support for details.\n\nThe QPON Team",
	},
	models.StatusUnblocked: {
		SMS:          "Your QPON merchant account has been unblocked.",
		EmailSubject: "Your QPON account is active again",
		EmailBody:    "Hi " + NamePlaceholder + ",\n\nYour account has been unblocked and is active again.\n\nThe QPON Team",
	},
}

// Message is a rendered notification. Email fields are empty when the
// recipient has no email address.
type Message struct {
	MobileNo     string
	SMS          string
	Email        string
	EmailSubject string
	EmailBody    string
}

func (m Message) HasEmail() bool { return m.Email != "" }

// Render builds the message for outcome addressed to r.
func Render(outcome models.ApprovalStatus, r Recipient) (Message, error) {
	tpl, ok := templates[outcome]
	if !ok {
		return Message{}, fmt.Errorf("no notification template for outcome %q", outcome)
	}

	msg := Message{
		MobileNo: r.MobileNo,
		SMS:      tpl.SMS,
	}
	if r.Email != "" {
		msg.Email = r.Email
		msg.EmailSubject = tpl.EmailSubject
		msg.EmailBody = strings.ReplaceAll(tpl.EmailBody, NamePlaceholder, r.FullName)
	}
	return msg, nil
}
