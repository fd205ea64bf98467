package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Money is an amount in centavos. It travels as a decimal number of reais
// ("359.90") in JSON and YAML.
type Money int64

// Reais builds a Money value from a decimal amount, rounding to the centavo.
func Reais(v float64) Money {
	return Money(math.Round(v * 100))
}

func (m Money) Reais() float64 {
	return float64(m) / 100
}

// String returns the amount with two decimal places and a dot separator.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) MarshalYAML() (interface{}, error) {
	return m.Reais(), nil
}

func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseMoney(value.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMoney accepts "359.90", "359,90" or "359".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Reais(v), nil
}
