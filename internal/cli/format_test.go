package cli

import "testing"

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1,000"},
		{12500, "12,500"},
		{1234567, "1,234,567"},
		{-5000, "-5,000"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(300); got != "+300" {
		t.Errorf("FormatSigned(300) = %q", got)
	}
	if got := FormatSigned(-1200); got != "-1,200" {
		t.Errorf("FormatSigned(-1200) = %q", got)
	}
	if got := FormatSigned(0); got != "+0" {
		t.Errorf("FormatSigned(0) = %q", got)
	}
}

func TestFormatLimit(t *testing.T) {
	if got := FormatLimit(nil); got != "∞" {
		t.Errorf("FormatLimit(nil) = %q", got)
	}
	three := 3
	if got := FormatLimit(&three); got != "3" {
		t.Errorf("FormatLimit(&3) = %q", got)
	}
}
