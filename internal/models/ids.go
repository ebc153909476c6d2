package models

import "github.com/google/uuid"

// Identifier prefixes, one per stored entity.
const (
	PrefixAccount        = "uid-"
	PrefixBusiness       = "bisid-"
	PrefixContact        = "conid-"
	PrefixRejectedUpdate = "rpuid-"
	PrefixBlockedComment = "bmcid-"
)

// NewID returns a prefixed random identifier.
func NewID(prefix string) string {
	return prefix + uuid.NewString()
}
