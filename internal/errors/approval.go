package errors

import stderrors "errors"

var (
	ErrInvalidUser = &DomainError{
		Code:    "INVALID_USER_ID",
		Message: "invalid user id",
		Kind:    KindNotFound,
	}
	ErrInvalidAction = &DomainError{
		Code:    "INVALID_ACTION",
		Message: "action cannot be applied to the current approval status",
		Kind:    KindState,
	}
	ErrMalformedAction = &DomainError{
		Code:    "INVALID_ACTION",
		Message: "unknown approval action",
		Kind:    KindValidation,
	}
	ErrBusinessProfileNotFound = &DomainError{
		Code:    "BUSINESS_PROFILE_NOT_FOUND",
		Message: "business profile not found",
		Kind:    KindNotFound,
	}
	ErrContactProfileNotFound = &DomainError{
		Code:    "CONTACT_PROFILE_NOT_FOUND",
		Message: "contact profile not found",
		Kind:    KindNotFound,
	}
	ErrValidation = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "invalid request",
		Kind:    KindValidation,
	}
	ErrPersistenceFailure = &DomainError{
		Code:    "PERSISTENCE_FAILURE",
		Message: "storage operation failed",
		Kind:    KindPersistence,
	}
)

// Is and As re-export the standard helpers so callers need one import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }
