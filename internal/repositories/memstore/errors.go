package memstore

import "fmt"

type duplicateError struct {
	what string
	key  string
}

func (e *duplicateError) Error() string {
	return fmt.Sprintf("duplicate %s %s", e.what, e.key)
}

func errDuplicate(what, key string) error {
	return &duplicateError{what: what, key: key}
}
