// Package copia provides the ledger's unit of value: a signed
// arbitrary-precision integer with compact and locale-aware display
// formatting. Copia values are immutable; arithmetic helpers always
// allocate and never mutate their operands.
package copia

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Copia is an amount of ledger value. The zero value is 0.
type Copia struct {
	i *big.Int
}

// ErrInvalidAmount is returned when a string cannot be parsed as an amount.
var ErrInvalidAmount = errors.New("invalid copia amount")

// Zero returns the zero amount.
func Zero() Copia {
	return Copia{}
}

// FromInt64 builds an amount from an int64.
func FromInt64(v int64) Copia {
	return Copia{i: big.NewInt(v)}
}

// FromBigInt builds an amount from a big integer, copying it so later
// mutations of v cannot leak into the amount.
func FromBigInt(v *big.Int) Copia {
	if v == nil {
		return Copia{}
	}
	return Copia{i: new(big.Int).Set(v)}
}

// Parse reads a base-10 amount, optionally signed.
func Parse(s string) (Copia, error) {
	i, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return Copia{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Copia{i: i}, nil
}

// value returns the backing integer, substituting a shared zero for the
// zero value. Callers must not mutate the result.
func (c Copia) value() *big.Int {
	if c.i == nil {
		return bigZero
	}
	return c.i
}

var bigZero = new(big.Int)

// BigInt returns a copy of the amount as a big integer.
func (c Copia) BigInt() *big.Int {
	return new(big.Int).Set(c.value())
}

// Add returns c + o.
func (c Copia) Add(o Copia) Copia {
	return Copia{i: new(big.Int).Add(c.value(), o.value())}
}

// Sub returns c - o.
func (c Copia) Sub(o Copia) Copia {
	return Copia{i: new(big.Int).Sub(c.value(), o.value())}
}

// Neg returns -c.
func (c Copia) Neg() Copia {
	return Copia{i: new(big.Int).Neg(c.value())}
}

// Cmp compares c and o, returning -1, 0, or +1.
func (c Copia) Cmp(o Copia) int {
	return c.value().Cmp(o.value())
}

// Sign reports the sign of the amount: -1, 0, or +1.
func (c Copia) Sign() int {
	return c.value().Sign()
}

// IsZero reports whether the amount is exactly zero.
func (c Copia) IsZero() bool {
	return c.value().Sign() == 0
}

// String renders the exact integer without grouping.
func (c Copia) String() string {
	return c.value().String()
}

// MarshalJSON encodes the amount as a decimal string so arbitrary precision
// survives JSON round trips.
func (c Copia) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare JSON number.
func (c *Copia) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*c = Copia{}
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
