package copia

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCompactBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  string
	}{
		{"Zero", 0, "0"},
		{"BelowThousand", 999, "999"},
		{"ExactThousand", 1000, "1K"},
		{"ThousandAndHalf", 1500, "1.5K"},
		{"RoundsIntoNextUnit", 999_999, "1M"},
		{"ExactMillion", 1_000_000, "1M"},
		{"ExactBillion", 1_000_000_000, "1B"},
		{"NegativeThousandAndHalf", -1500, "-1.5K"},
		{"NegativeBelowThousand", -999, "-999"},
		{"TwoFractionDigits", 1230, "1.23K"},
		{"OneFractionDigitAboveTen", 15_500, "15.5K"},
		{"TrailingZerosStripped", 1200, "1.2K"},
		{"RoundsIntoBillion", 999_999_999, "1B"},
		{"MidMillions", 2_345_000, "2.35M"},
		{"HundredsOfMillions", 345_600_000, "345.6M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromInt64(tt.value).Compact())
		})
	}
}

func TestCompactBeyondInt64(t *testing.T) {
	v, ok := new(big.Int).SetString("1500000000000", 10)
	require.True(t, ok)
	assert.Equal(t, "1500B", FromBigInt(v).Compact())

	neg, ok := new(big.Int).SetString("-2750000000000", 10)
	require.True(t, ok)
	assert.Equal(t, "-2750B", FromBigInt(neg).Compact())
}

func TestGrouped(t *testing.T) {
	assert.Equal(t, "1,234,567", FromInt64(1_234_567).Grouped(language.English))
	assert.Equal(t, "0", Zero().Grouped(language.English))
	assert.Equal(t, "-9,876", FromInt64(-9876).Grouped(language.English))
}

func TestGroupedBeyondInt64(t *testing.T) {
	v, ok := new(big.Int).SetString("12345678901234567890123", 10)
	require.True(t, ok)
	assert.Equal(t, "12,345,678,901,234,567,890,123", FromBigInt(v).Grouped(language.English))
}

func TestParseAndString(t *testing.T) {
	v, err := Parse("-12345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, "-12345678901234567890", v.String())

	_, err = Parse("not a number")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestArithmeticDoesNotMutate(t *testing.T) {
	a := FromInt64(10)
	b := FromInt64(3)

	sum := a.Add(b)
	diff := a.Sub(b)

	assert.Equal(t, "13", sum.String())
	assert.Equal(t, "7", diff.String())
	assert.Equal(t, "10", a.String())
	assert.Equal(t, "3", b.String())
	assert.Equal(t, "-10", a.Neg().String())
	assert.Equal(t, "10", a.String())
}

func TestJSONRoundTrip(t *testing.T) {
	v := FromInt64(42)
	data, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"42"`, string(data))

	var back Copia
	require.NoError(t, back.UnmarshalJSON([]byte(`"-100"`)))
	assert.Equal(t, "-100", back.String())

	// Bare numbers are accepted for upstream APIs that emit them raw.
	require.NoError(t, back.UnmarshalJSON([]byte(`7500`)))
	assert.Equal(t, "7500", back.String())
}
