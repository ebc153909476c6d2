package merchant

import (
	"errors"
	"log"

	apperr "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/errors"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
)

// notFoundAs maps a store miss to the given domain error and leaves any
// other error untouched.
func notFoundAs(err error, notFound *apperr.DomainError, op string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound.With(op, nil)
	}
	return err
}

// persistence wraps err unless it already is a domain error.
func persistence(op string, err error, ids ...string) error {
	if err == nil {
		return nil
	}
	var de *apperr.DomainError
	if apperr.As(err, &de) {
		return err
	}
	log.Printf("Persistence failure in %s %v: %v", op, ids, err)
	return apperr.Persistence(op, err, ids...)
}
