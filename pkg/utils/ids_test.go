package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIntentID_Format(t *testing.T) {
	id := NewIntentID()
	assert.Regexp(t, regexp.MustCompile(`^pi_[0-9a-f]{12}$`), id)
}

func TestNewSubscriptionID_Format(t *testing.T) {
	id := NewSubscriptionID()
	assert.Regexp(t, regexp.MustCompile(`^sub_[0-9a-f]{12}$`), id)
}

func TestNewIntentID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewIntentID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
