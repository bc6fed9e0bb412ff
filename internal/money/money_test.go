package money

import "testing"

func TestToMinorRounds(t *testing.T) {
	tests := []struct {
		major float64
		want  int64
	}{
		{0, 0},
		{12500, 1250000},
		{19.99, 1999},
		{0.005, 1},
		{10.004, 1000},
	}
	for _, tt := range tests {
		if got := ToMinor(tt.major); got != tt.want {
			t.Errorf("ToMinor(%v) = %d, want %d", tt.major, got, tt.want)
		}
	}
}

func TestToMajorRoundTrip(t *testing.T) {
	if got := ToMajor(1250000); got != 12500 {
		t.Fatalf("ToMajor(1250000) = %v, want 12500", got)
	}
	if got := ToMinor(ToMajor(1999)); got != 1999 {
		t.Fatalf("round trip lost precision: got %d", got)
	}
}

func TestFormatMajor(t *testing.T) {
	if got := FormatMajor(1999); got != "19.99" {
		t.Fatalf("FormatMajor(1999) = %q, want %q", got, "19.99")
	}
	if got := FormatMajor(1250000); got != "12500.00" {
		t.Fatalf("FormatMajor(1250000) = %q", got)
	}
}
