package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+14155552671", "+44 20 7946 0958", "415-555-2671", "(415) 555 2671"}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), phone)
	}

	invalid := []string{"", "abc", "+0123456", "1"}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), phone)
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.True(t, ValidateTimezone("America/New_York"))
	assert.True(t, ValidateTimezone("UTC"))
	assert.False(t, ValidateTimezone(""))
	assert.False(t, ValidateTimezone("not a zone"))
}
