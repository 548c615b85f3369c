package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in paise.  It is stored as an integer column and
// rendered as a decimal rupee amount on the wire, which is what the
// dashboard sends and displays.
type Money int64

// MoneyFromFloat rounds a rupee amount to the nearest paisa.
func MoneyFromFloat(v float64) Money { return Money(math.Round(v * 100)) }

// Float returns the amount in rupees.
func (m Money) Float() float64 { return float64(m) / 100 }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float(), 'f', -1, 64)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*m = MoneyFromFloat(v)
	return nil
}
