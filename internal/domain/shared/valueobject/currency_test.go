package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency_IsValid(t *testing.T) {
	t.Run("accepts supported codes", func(t *testing.T) {
		for _, c := range []Currency{USD, EUR, COP, GTQ, MXN} {
			assert.True(t, c.IsValid(), "expected %s to be valid", c)
		}
	})

	t.Run("rejects unknown codes", func(t *testing.T) {
		assert.False(t, Currency("XXX").IsValid())
		assert.False(t, Currency("").IsValid())
		assert.False(t, Currency("usd").IsValid())
	})
}

func TestCurrency_String(t *testing.T) {
	assert.Equal(t, "USD", USD.String())
	assert.Equal(t, "USD", DefaultCurrency.String())
}
