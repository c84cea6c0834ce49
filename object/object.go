package object

import (
	"strconv"
)

// Number is the only value type of the language. Comparisons produce 0 or 1.
type Number float64

var (
	TRUE  = Number(1)
	FALSE = Number(0)
)

func NativeBoolean(val bool) Number {
	if val {
		return TRUE
	}
	return FALSE
}

func (n Number) Truthy() bool { return n != 0 }

// Inspect renders the number the way Go prints a float64 with %v.
func (n Number) Inspect() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

func (n Number) String() string { return n.Inspect() }

// ParseNumber reads an all-digit literal.
func ParseNumber(literal string) (Number, error) {
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, err
	}
	return Number(v), nil
}
