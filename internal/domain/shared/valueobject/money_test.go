package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("accepts two decimals", func(t *testing.T) {
		d, err := ParseAmount("123.45")
		require.NoError(t, err)
		assert.True(t, d.Equal(decimal.RequireFromString("123.45")))
	})

	t.Run("accepts trailing zeros beyond scale", func(t *testing.T) {
		d, err := ParseAmount("10.500")
		require.NoError(t, err)
		assert.Equal(t, "10.50", d.StringFixed(2))
	})

	t.Run("rejects sub-cent precision", func(t *testing.T) {
		_, err := ParseAmount("10.005")
		assert.ErrorIs(t, err, ErrTooManyDecimals)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseAmount("  ")
		assert.ErrorIs(t, err, ErrEmptyAmount)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseAmount("ten pesos")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoney(decimal.RequireFromString("0.10"))
	sum := Zero()
	for i := 0; i < 10; i++ {
		sum = sum.Add(a)
	}
	assert.True(t, sum.Equals(NewMoney(decimal.NewFromInt(1))))
	assert.Equal(t, "0.90", sum.Sub(a).String())
	assert.Equal(t, MXN, sum.Currency())
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoney(decimal.NewFromInt(800))
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"800.00"`, string(data))

	var fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`250.5`), &fromNumber))
	assert.Equal(t, "250.50", fromNumber.String())

	var fromString Money
	require.NoError(t, json.Unmarshal([]byte(`"99.99"`), &fromString))
	assert.True(t, fromString.IsPositive())
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("1000.00"))
	assert.Equal(t, "1000.00", m.String())

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "1000.00", v)
}
