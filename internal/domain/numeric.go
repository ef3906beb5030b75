package domain

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericPattern accepts decimal numbers with optional sign, fraction and
// exponent, surrounded by optional whitespace. Hex, binary, underscores,
// "inf" and "nan" are not numeric.
var numericPattern = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?[ \t\n\r\v\f]*$`)

const numericSpace = " \t\n\r\v\f"

// NumericField is a request field that must hold a number. JSON numbers and
// strings holding a decimal number both count.
type NumericField struct {
	Present bool
	Numeric bool
	Value   float64

	literal string
}

// parseNumeric classifies one raw JSON value. A JSON null is absent.
func parseNumeric(raw []byte) NumericField {
	switch kindOf(raw) {
	case KindAbsent, KindNull:
		return NumericField{}
	case KindNumber:
		return numericFromText(string(raw))
	case KindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || !numericPattern.MatchString(s) {
			return NumericField{Present: true}
		}
		return numericFromText(s)
	default:
		return NumericField{Present: true}
	}
}

func numericFromText(text string) NumericField {
	literal := strings.Trim(text, numericSpace)
	// Overflow yields ±Inf, which is still a number.
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil && !isRangeErr(err) {
		return NumericField{Present: true}
	}
	return NumericField{Present: true, Numeric: true, Value: v, literal: literal}
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// Valid reports whether the field is present and numeric.
func (f NumericField) Valid() bool {
	return f.Present && f.Numeric
}

// ptr returns the value for rule checks, nil when the field is unusable.
func (f NumericField) ptr() *float64 {
	if !f.Valid() {
		return nil
	}
	v := f.Value
	return &v
}

// Int truncates the value toward zero. Integer literals are converted
// exactly; values beyond the int64 range saturate.
func (f NumericField) Int() int64 {
	if i, err := strconv.ParseInt(f.literal, 10, 64); err == nil {
		return i
	}
	v := f.Value
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}
