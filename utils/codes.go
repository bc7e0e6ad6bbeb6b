package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReferenceCode builds a short human-quotable booking reference,
// e.g. "RES-9F2C41A8". Uniqueness is enforced by the database index.
func GenerateReferenceCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RES-" + id[:8]
}

// GenerateTransactionID is used when a payment arrives without an
// external transaction reference.
func GenerateTransactionID() string {
	return uuid.NewString()
}
