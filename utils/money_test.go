package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$12.50", FormatCents(1250))
	assert.Equal(t, "$0.05", FormatCents(5))
	assert.Equal(t, "$0.00", FormatCents(0))
	assert.Equal(t, "-$3.99", FormatCents(-399))
	assert.Equal(t, "$1000.00", FormatCents(100000))
}

func TestPercentOfCents(t *testing.T) {
	assert.Equal(t, int64(825), PercentOfCents(10000, 8.25))
	assert.Equal(t, int64(0), PercentOfCents(10000, 0))
	// rounds half up
	assert.Equal(t, int64(1), PercentOfCents(10, 5))
}
