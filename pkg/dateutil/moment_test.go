package dateutil

import (
	"testing"
	"time"
)

func TestFormatMoment(t *testing.T) {
	ts := time.Date(2024, time.January, 5, 14, 7, 3, 45*int(time.Millisecond), time.FixedZone("", 3*3600))

	tests := []struct {
		pattern string
		want    string
	}{
		{"YYYY-MM-DD", "2024-01-05"},
		{"YY/M/D", "24/1/5"},
		{"DD.MM.YYYY HH:mm:ss", "05.01.2024 14:07:03"},
		{"MMMM Do, YYYY", "January 5th, 2024"},
		{"ddd, MMM D", "Fri, Jan 5"},
		{"dddd", "Friday"},
		{"dd d", "Fr 5"},
		{"h:mm A", "2:07 PM"},
		{"hh a", "02 pm"},
		{"k kk", "14 14"},
		{"DDD DDDD", "5 005"},
		{"Q", "1"},
		{"GGGG-[W]WW", "2024-W01"},
		{"SSS", "045"},
		{"Z", "+03:00"},
		{"ZZ", "+0300"},
		{"[Today is] dddd", "Today is Friday"},
		{"[12", "[12"},
		{"#1 / 2", "#1 / 2"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := FormatMoment(ts, tt.pattern); got != tt.want {
				t.Errorf("FormatMoment(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestFormatMoment_Midnight(t *testing.T) {
	midnight := time.Date(2024, time.March, 1, 0, 5, 0, 0, time.UTC)

	if got := FormatMoment(midnight, "h A"); got != "12 AM" {
		t.Errorf("h A = %q, want 12 AM", got)
	}
	if got := FormatMoment(midnight, "k"); got != "24" {
		t.Errorf("k = %q, want 24", got)
	}
}

func TestFormatMoment_Unix(t *testing.T) {
	ts := time.Unix(1700000000, 123*int64(time.Millisecond))

	if got := FormatMoment(ts, "X"); got != "1700000000" {
		t.Errorf("X = %q", got)
	}
	if got := FormatMoment(ts, "x"); got != "1700000000123" {
		t.Errorf("x = %q", got)
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1:   "1st",
		2:   "2nd",
		3:   "3rd",
		4:   "4th",
		11:  "11th",
		12:  "12th",
		13:  "13th",
		21:  "21st",
		22:  "22nd",
		101: "101st",
		111: "111th",
	}

	for n, want := range tests {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
