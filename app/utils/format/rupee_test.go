package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRupees(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rs. 0"},
		{350, "Rs. 350"},
		{54000, "Rs. 54,000"},
		{1250000, "Rs. 1,250,000"},
	}
	for _, tt := range tests {
		if got := Rupees(decimal.NewFromInt(tt.amount)); got != tt.want {
			t.Errorf("Rupees(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
