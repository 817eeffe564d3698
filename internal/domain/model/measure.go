package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Measure is a KPI value that may be undefined, e.g. a mean over zero rows.
// An undefined Measure is never equal to a defined zero.
type Measure struct {
	value   float64
	defined bool
}

// Defined returns a Measure holding v.
func Defined(v float64) Measure { return Measure{value: v, defined: true} }

// Undefined returns the "no data" Measure.
func Undefined() Measure { return Measure{} }

// Mean returns sum/count, or Undefined when count is zero.
func Mean(sum, count int) Measure {
	if count == 0 {
		return Undefined()
	}
	return Defined(float64(sum) / float64(count))
}

// Value returns the number and whether it is defined.
func (m Measure) Value() (float64, bool) { return m.value, m.defined }

// IsDefined reports whether the measure carries a value.
func (m Measure) IsDefined() bool { return m.defined }

// Float64 returns the value, or NaN when undefined.
func (m Measure) Float64() float64 {
	if !m.defined {
		return math.NaN()
	}
	return m.value
}

// String formats the value with two decimals, or "n/a".
func (m Measure) String() string {
	if !m.defined {
		return "n/a"
	}
	return strconv.FormatFloat(m.value, 'f', 2, 64)
}

// MarshalJSON encodes an undefined measure as null.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON accepts a number or null.
func (m *Measure) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*m = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Defined(v)
	return nil
}
