package numfmt

import "strconv"

// Condition is a bracketed comparison such as [>=100].
type Condition struct {
	Op    string
	Value float64
}

// Match reports whether x satisfies the condition.
func (c Condition) Match(x float64) bool {
	switch c.Op {
	case "<":
		return x < c.Value
	case "<=":
		return x <= c.Value
	case ">":
		return x > c.Value
	case ">=":
		return x >= c.Value
	case "=":
		return x == c.Value
	case "<>":
		return x != c.Value
	}
	return false
}

// negativeOnly reports whether every value matching c is negative, in
// which case the section is expected to carry its own sign.
func (c Condition) negativeOnly() bool {
	switch c.Op {
	case "<":
		return c.Value <= 0
	case "<=", "=":
		return c.Value < 0
	}
	return false
}

func (c Condition) String() string {
	return c.Op + strconv.FormatFloat(c.Value, 'g', -1, 64)
}
