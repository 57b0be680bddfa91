package database

import "testing"

func TestFormatOrderID(t *testing.T) {
	cases := []struct {
		year   int
		serial int64
		want   string
	}{
		{2026, 1, "ORD2026-0001"},
		{2026, 12, "ORD2026-0012"},
		{2026, 1234, "ORD2026-1234"},
		{2027, 10000, "ORD2027-10000"},
	}
	for _, tc := range cases {
		if got := FormatOrderID(tc.year, tc.serial); got != tc.want {
			t.Fatalf("FormatOrderID(%d, %d) = %q, want %q", tc.year, tc.serial, got, tc.want)
		}
	}
}
