package utils

import (
	"strings"

	"github.com/google/uuid"
)

func newPrefixedID(prefix string, n int) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "_" + hex[:n]
}

// NewIntentID generates a public payment intent identifier (pi_<12 hex chars>)
func NewIntentID() string {
	return newPrefixedID("pi", 12)
}

// NewSubscriptionID generates a public subscription identifier (sub_<12 hex chars>)
func NewSubscriptionID() string {
	return newPrefixedID("sub", 12)
}
