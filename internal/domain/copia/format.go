package copia

import (
	"math/big"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// compactUnit is one K/M/B scaling step, largest first.
type compactUnit struct {
	div    *big.Int
	suffix string
}

var compactUnits = []compactUnit{
	{big.NewInt(1_000_000_000), "B"},
	{big.NewInt(1_000_000), "M"},
	{big.NewInt(1_000), "K"},
}

var bigTen = big.NewInt(10)

// Compact renders the amount in K/M/B notation. Magnitudes below 1000 render
// as the exact integer. Scaled magnitudes of 10 and above keep one fractional
// digit, smaller ones keep two; trailing zeros and a dangling point are
// stripped. Rounding that reaches 1000 of a unit carries into the next unit,
// so 999999 renders as "1M", never "1000K". The sign appears only as a
// leading minus.
func (c Copia) Compact() string {
	v := c.value()
	abs := new(big.Int).Abs(v)
	if abs.Cmp(compactUnits[2].div) < 0 {
		return v.String()
	}

	idx := 2
	for i, u := range compactUnits {
		if abs.Cmp(u.div) >= 0 {
			idx = i
			break
		}
	}

	var body string
	for {
		s, overflow := scaleCompact(abs, compactUnits[idx].div)
		if overflow && idx > 0 {
			// Rounded into the next unit's range: reformat there.
			idx--
			continue
		}
		body = s + compactUnits[idx].suffix
		break
	}

	if v.Sign() < 0 {
		return "-" + body
	}
	return body
}

// scaleCompact renders abs/div with the precision rule applied, reporting
// whether rounding pushed the value to 1000 or beyond of this unit.
func scaleCompact(abs, div *big.Int) (string, bool) {
	digits := 2
	pow := big.NewInt(100)
	tenDiv := new(big.Int).Mul(bigTen, div)
	if abs.Cmp(tenDiv) >= 0 {
		digits = 1
		pow = big.NewInt(10)
	}

	// Round half away from zero: floor((abs*pow + div/2) / div).
	num := new(big.Int).Mul(abs, pow)
	num.Add(num, new(big.Int).Rsh(div, 1))
	q := num.Div(num, div)

	limit := new(big.Int).Mul(big.NewInt(1000), pow)
	overflow := q.Cmp(limit) >= 0

	intPart, frac := new(big.Int).DivMod(q, pow, new(big.Int))
	s := intPart.String()
	fracDigits := strings.TrimRight(padLeft(frac.String(), digits), "0")
	if fracDigits != "" {
		s += "." + fracDigits
	}
	return s, overflow
}

func padLeft(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// Grouped renders the exact integer with locale-aware digit grouping. Values
// within int64 range use the locale's full grouping rules; larger values fall
// back to three-digit groups joined with the locale's separator.
func (c Copia) Grouped(tag language.Tag) string {
	v := c.value()
	p := message.NewPrinter(tag)
	if v.IsInt64() {
		return p.Sprintf("%d", v.Int64())
	}

	sep := groupSeparator(p)
	digits := new(big.Int).Abs(v).String()

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	s := strings.Join(groups, sep)
	if v.Sign() < 0 {
		return "-" + s
	}
	return s
}

// groupSeparator probes the printer with a known value to recover the
// locale's thousands separator.
func groupSeparator(p *message.Printer) string {
	probe := p.Sprintf("%d", int64(1000))
	sep := strings.TrimSuffix(strings.TrimPrefix(probe, "1"), "000")
	if sep == "" {
		sep = ","
	}
	return sep
}
