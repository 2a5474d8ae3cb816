package roman

import (
	"math"
	"strconv"
	"strings"
)

// Value is an integer known to lie in [MinValue, MaxValue].
type Value int

func (v Value) Valid() bool {
	return v >= MinValue && v <= MaxValue
}

func (v Value) Int() int {
	return int(v)
}

// Numeral is an upper-case Roman numeral that passed Validate or came out of Encode.
type Numeral string

func (n Numeral) String() string {
	return string(n)
}

// Converter encodes and decodes numerals against one SymbolTable.
type Converter struct {
	table *SymbolTable
}

// NewConverter returns a Converter over the Standard table.
func NewConverter() *Converter {
	return &Converter{table: standard}
}

var defaultConverter = NewConverter()

func Encode(n int) (Numeral, error) {
	return defaultConverter.Encode(n)
}

func EncodeFloat(f float64) (Numeral, error) {
	return defaultConverter.EncodeFloat(f)
}

func Decode(s string) (Value, error) {
	return defaultConverter.Decode(s)
}

func Validate(s string) (Numeral, error) {
	return defaultConverter.Validate(s)
}

// Encode returns the canonical numeral for n.
func (c *Converter) Encode(n int) (Numeral, error) {
	if n < MinValue || n > MaxValue {
		return "", newError(KindOutOfRange, strconv.Itoa(n), -1,
			"must be between %d and %d", MinValue, MaxValue)
	}
	var b strings.Builder
	b.Grow(MaxNumeralLen)
	for _, f := range c.table.fragments {
		for n >= f.Weight {
			b.WriteString(f.Text)
			n -= f.Weight
		}
	}
	return Numeral(b.String()), nil
}

// EncodeFloat is Encode for callers holding a parsed decimal. Fractional and
// NaN input is rejected with KindNotAnInteger rather than truncated.
func (c *Converter) EncodeFloat(f float64) (Numeral, error) {
	input := strconv.FormatFloat(f, 'g', -1, 64)
	switch {
	case math.IsNaN(f):
		return "", newError(KindNotAnInteger, input, -1, "not a number")
	case math.IsInf(f, 0):
		return "", newError(KindOutOfRange, input, -1,
			"must be between %d and %d", MinValue, MaxValue)
	case f != math.Trunc(f):
		return "", newError(KindNotAnInteger, input, -1, "has a fractional part")
	case f < MinValue || f > MaxValue:
		return "", newError(KindOutOfRange, input, -1,
			"must be between %d and %d", MinValue, MaxValue)
	}
	return c.Encode(int(f))
}

// Decode validates s and returns its value. s is trimmed and matched
// case-insensitively.
func (c *Converter) Decode(s string) (Value, error) {
	n, err := c.Validate(s)
	if err != nil {
		return 0, err
	}
	v := c.sum(string(n))
	if !v.Valid() {
		return 0, newError(KindOutOfRange, string(n), -1,
			"value %d not between %d and %d", int(v), MinValue, MaxValue)
	}
	return v, nil
}

// Validate normalizes s (trimmed, upper-case) and checks it against the
// canonical grammar. Validating the returned Numeral again always succeeds.
func (c *Converter) Validate(s string) (Numeral, error) {
	norm, err := c.normalize(s)
	if err != nil {
		return "", err
	}
	if norm == "" {
		return "", newError(KindOutOfRange, "", -1, "empty numeral")
	}
	if err := c.checkGrammar(norm); err != nil {
		return "", err
	}
	return Numeral(norm), nil
}

// normalize trims s and folds ASCII lower case. Any rune outside the seven
// letters is rejected here, before unicode case folding could map it onto one.
func (c *Converter) normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	buf := make([]byte, 0, len(s))
	for i, r := range s {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r >= 128 || c.table.weight(byte(r)) == 0 {
			return "", newError(KindInvalidCharacter, s, i, "%q is not a numeral letter", r)
		}
		buf = append(buf, byte(r))
	}
	return string(buf), nil
}

// sum adds s left to right; a letter smaller than its successor forms a pair
// worth the difference.
func (c *Converter) sum(s string) Value {
	total := 0
	for i := 0; i < len(s); i++ {
		cur := c.table.weight(s[i])
		if i+1 < len(s) {
			if next := c.table.weight(s[i+1]); cur < next {
				total += next - cur
				i++
				continue
			}
		}
		total += cur
	}
	return Value(total)
}
