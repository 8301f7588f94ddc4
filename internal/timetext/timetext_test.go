package timetext

import "testing"

func TestParseISO(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT1H30M", 90},
		{"P1D", 1440},
		{"PT45M", 45},
		{"PT2H", 120},
		{"PT90S", 2}, // rounded up from 1.5
		{"P1DT1H1M", 1501},
		{"garbage", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := ParseISO(c.in); got != c.want {
			t.Errorf("ParseISO(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMinutes(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{30, 30},
		{float64(15), 15},
		{"PT1H", 60},
		{"1.5 hours", 90},
		{"2 hrs", 120},
		{"45 minutes", 45},
		{"10 mins", 10},
		{"25", 25},
		{"overnight", 0},
		{nil, 0},
	}
	for _, c := range cases {
		if got := Minutes(c.in); got != c.want {
			t.Errorf("Minutes(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMinutes_HourBeforeMinute(t *testing.T) {
	// Both patterns appear; the hour match is tried first and wins.
	if got := Minutes("1 hour 30 minutes"); got != 60 {
		t.Errorf("Minutes = %d, want 60 (first match wins)", got)
	}
}
