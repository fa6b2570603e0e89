package utils

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestMoneyCreation(t *testing.T) {
	t.Run("NewMoney", func(t *testing.T) {
		m := NewMoney(10, 50)
		if m.ToCents() != 1050 {
			t.Errorf("Expected 1050 cents, got %d", m.ToCents())
		}
	})

	t.Run("Cents", func(t *testing.T) {
		m := Cents(1234)
		if m.ToCents() != 1234 {
			t.Errorf("Expected 1234 cents, got %d", m.ToCents())
		}
	})

	t.Run("Dollars", func(t *testing.T) {
		m := Dollars(100)
		if m.ToCents() != 10000 {
			t.Errorf("Expected 10000 cents, got %d", m.ToCents())
		}
	})

	t.Run("FromFloat", func(t *testing.T) {
		m := FromFloat(19.99)
		if m.ToCents() != 1999 {
			t.Errorf("Expected 1999 cents, got %d", m.ToCents())
		}

		m = FromFloat(-5.75)
		if m.ToCents() != -575 {
			t.Errorf("Expected -575 cents, got %d", m.ToCents())
		}

		m = FromFloat(0.1 + 0.2)
		if m.ToCents() != 30 {
			t.Errorf("Expected 30 cents, got %d", m.ToCents())
		}
	})
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"2500", 250000, false},
		{"2500.00", 250000, false},
		{"18200.5", 1820050, false},
		{" 150.00 ", 15000, false},
		{"-12.34", -1234, false},
		{"0.005", 0, true},
		{"100.005", 0, true},
		{"100.010", 10001, false},
		{"92233720368547758.07", 9223372036854775807, false},
		{"-92233720368547758.08", -9223372036854775808, false},
		{"92233720368547758.08", 0, true},
		{"1e20", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMoney(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %d", tt.input, m.ToCents())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if m.ToCents() != tt.expected {
				t.Errorf("Expected %d cents, got %d", tt.expected, m.ToCents())
			}
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	t.Run("Marshal", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Balance Money `json:"balance"`
		}{Balance: NewMoney(2700, 0)})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(data) != `{"balance":2700.00}` {
			t.Errorf("Unexpected JSON: %s", data)
		}
	})

	t.Run("Unmarshal number and string", func(t *testing.T) {
		var v struct {
			A Money `json:"a"`
			B Money `json:"b"`
			C Money `json:"c"`
		}
		if err := json.Unmarshal([]byte(`{"a": 100.5, "b": "99.99", "c": null}`), &v); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if v.A != Cents(10050) || v.B != Cents(9999) || v.C != 0 {
			t.Errorf("Unexpected values: %d %d %d", v.A, v.B, v.C)
		}
	})

	t.Run("Unmarshal rejects garbage", func(t *testing.T) {
		var m Money
		if err := json.Unmarshal([]byte(`"ten"`), &m); err == nil {
			t.Error("Expected error for non-numeric amount")
		}
	})
}

func TestMoneyParts(t *testing.T) {
	m := NewMoney(123, 45)

	if m.DollarsPart() != 123 {
		t.Errorf("Expected 123 dollars, got %d", m.DollarsPart())
	}

	if m.CentsPart() != 45 {
		t.Errorf("Expected 45 cents, got %d", m.CentsPart())
	}
}

func TestMoneyArithmetic(t *testing.T) {
	m1 := NewMoney(10, 50)
	m2 := NewMoney(5, 25)

	t.Run("Add", func(t *testing.T) {
		result := m1.Add(m2)
		if result.ToCents() != 1575 {
			t.Errorf("Expected 1575 cents, got %d", result.ToCents())
		}
	})

	t.Run("Sub", func(t *testing.T) {
		result := m1.Sub(m2)
		if result.ToCents() != 525 {
			t.Errorf("Expected 525 cents, got %d", result.ToCents())
		}
	})

	t.Run("Mul", func(t *testing.T) {
		result := m2.Mul(3)
		if result.ToCents() != 1575 {
			t.Errorf("Expected 1575 cents, got %d", result.ToCents())
		}
	})

}

func TestParseMoneyErrors(t *testing.T) {
	if _, err := ParseMoney("1e20"); !errors.Is(err, ErrAmountOutOfRange) {
		t.Errorf("Expected ErrAmountOutOfRange, got %v", err)
	}
	if _, err := ParseMoney("0.004"); !errors.Is(err, ErrAmountPrecision) {
		t.Errorf("Expected ErrAmountPrecision, got %v", err)
	}

	var m Money
	if err := json.Unmarshal([]byte("1e20"), &m); !errors.Is(err, ErrAmountOutOfRange) {
		t.Errorf("Expected ErrAmountOutOfRange from JSON, got %v", err)
	}
	if m != 0 {
		t.Errorf("Expected a rejected amount to leave the value untouched, got %d", m)
	}
}

func TestMoneyCheckedAdd(t *testing.T) {
	tests := []struct {
		a, b   Money
		want   Money
		wantOK bool
	}{
		{Dollars(10), Dollars(5), Dollars(15), true},
		{MaxMoney - 1, 1, MaxMoney, true},
		{MaxMoney, 1, 0, false},
		{Money(math.MinInt64), -1, 0, false},
		{MaxMoney, -1, MaxMoney - 1, true},
	}
	for _, tt := range tests {
		got, ok := tt.a.CheckedAdd(tt.b)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CheckedAdd(%d, %d) = %d, %v; want %d, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMoneyFormatSimple(t *testing.T) {
	if got := NewMoney(200, 0).FormatSimple("$"); got != "$200.00" {
		t.Errorf("Expected '$200.00', got '%s'", got)
	}
	if got := Cents(-5).FormatSimple("$"); got != "-$0.05" {
		t.Errorf("Expected '-$0.05', got '%s'", got)
	}
}

func TestMoneyString(t *testing.T) {
	m := NewMoney(1234, 56)
	str := m.String()
	if str != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", str)
	}

	// Negative money: use Cents directly for negative values
	m = Cents(-5075)
	str = m.String()
	if str != "-50.75" {
		t.Errorf("Expected '-50.75', got '%s'", str)
	}
}

func TestMoneyFormat(t *testing.T) {
	m := NewMoney(1234567, 89)
	tests := []struct {
		code string
		in   Money
		want string
	}{
		{"TRY", m, "₺1.234.567,89"},
		{"USD", m, "$1,234,567.89"},
		{"EUR", m, "€1.234.567,89"},
		{"TRY", m.Neg(), "-₺1.234.567,89"},
		{"TRY", Cents(5), "₺0,05"},
		{"XXX", Dollars(1500), "$1,500.00"},
	}
	for _, tt := range tests {
		if got := tt.in.Format(tt.code); got != tt.want {
			t.Errorf("%s Format(%d) = %q, want %q", tt.code, tt.in, got, tt.want)
		}
	}
}

func TestRandomAmount(t *testing.T) {
	rng := NewRandom(42)

	min := Dollars(10)
	max := Dollars(100)

	for i := 0; i < 1000; i++ {
		m := RandomAmount(rng, min, max)
		if m < min || m > max {
			t.Errorf("RandomAmount returned %d, expected between %d and %d", m.ToCents(), min.ToCents(), max.ToCents())
		}
	}
}

func TestMoneyRoundToNearest(t *testing.T) {
	t.Run("Round to $5", func(t *testing.T) {
		m := NewMoney(123, 0)
		result := m.RoundToNearest(Dollars(5))
		if result.ToCents() != 12500 {
			t.Errorf("Expected 12500 cents ($125), got %d", result.ToCents())
		}
	})

	t.Run("Round to $10", func(t *testing.T) {
		m := NewMoney(127, 0)
		result := m.RoundToNearest(Dollars(10))
		if result.ToCents() != 13000 {
			t.Errorf("Expected 13000 cents ($130), got %d", result.ToCents())
		}
	})
}
