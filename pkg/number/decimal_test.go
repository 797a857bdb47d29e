package number

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestMin(t *testing.T) {
	assert.Equal(t, "1", Min(Decimal("1"), Decimal("2")).String())
	assert.Equal(t, "1", Min(Decimal("2"), Decimal("1")).String())
}
