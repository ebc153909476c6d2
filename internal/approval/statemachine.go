// Package approval holds the approval transition table shared by accounts,
// business profiles and contact profiles.
package approval

import (
	apperr "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/errors"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
)

// Subject is the kind of entity a decision is taken on.
type Subject int

const (
	SubjectAccount Subject = iota
	SubjectBusiness
	SubjectContact
)

func (s Subject) String() string {
	switch s {
	case SubjectAccount:
		return "account"
	case SubjectBusiness:
		return "business"
	case SubjectContact:
		return "contact"
	default:
		return "unknown"
	}
}

// transitions is closed-world: a key missing here is an illegal move.
var transitions = map[string]models.ApprovalStatus{
	key(models.StatusPending, models.ActionApprove): models.StatusApproved,
	key(models.StatusPending, models.ActionReject):  models.StatusRejected,
	key(models.StatusApproved, models.ActionBlock):  models.StatusBlocked,
	key(models.StatusUnblocked, models.ActionBlock): models.StatusBlocked,
	key(models.StatusBlocked, models.ActionUnblock): models.StatusUnblocked,
}

// profileActions are the only actions a business or contact can receive.
var profileActions = map[models.ApprovalAction]bool{
	models.ActionApprove: true,
	models.ActionReject:  true,
}

func key(status models.ApprovalStatus, action models.ApprovalAction) string {
	return string(status) + "_" + string(action)
}

// ParseAction converts a wire token into an action. Tokens are case-sensitive.
func ParseAction(token string) (models.ApprovalAction, error) {
	switch a := models.ApprovalAction(token); a {
	case models.ActionApprove, models.ActionReject, models.ActionBlock, models.ActionUnblock:
		return a, nil
	}
	return "", apperr.ErrMalformedAction.Withf("unknown approval action %q", token)
}

// Transition returns the status reached by applying action to existing.
func Transition(existing models.ApprovalStatus, action models.ApprovalAction) (models.ApprovalStatus, error) {
	next, ok := transitions[key(existing, action)]
	if !ok {
		return "", apperr.ErrInvalidAction.Withf("cannot %s from %s", action, existing)
	}
	return next, nil
}

// Decide applies Transition after checking the action is allowed for subject.
// Profiles only move through APPROVE and REJECT.
func Decide(subject Subject, existing models.ApprovalStatus, action models.ApprovalAction) (models.ApprovalStatus, error) {
	if subject != SubjectAccount && !profileActions[action] {
		return "", apperr.ErrInvalidAction.Withf("cannot %s a %s profile", action, subject)
	}
	return Transition(existing, action)
}
