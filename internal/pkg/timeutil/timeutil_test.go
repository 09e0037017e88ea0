package timeutil

import (
	"testing"
	"time"
)

func TestMinutesBetween(t *testing.T) {
	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"eight hours", base, base.Add(8 * time.Hour), 480},
		{"zero", base, base, 0},
		{"clamped when reversed", base.Add(time.Hour), base, 0},
		{"partial minute floors", base, base.Add(90 * time.Second), 1},
	}
	for _, c := range cases {
		got := MinutesBetween(c.a, c.b)
		if got != c.want {
			t.Errorf("%s: MinutesBetween = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestPreviousDay(t *testing.T) {
	// Monday 2024-03-18 -> Sunday 2024-03-17. The reconciliation rule is a
	// flat -1 day, so Sundays are not skipped.
	monday := time.Date(2024, 3, 18, 10, 30, 0, 0, time.UTC)
	got := PreviousDay(monday)
	want := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("PreviousDay = %v, want %v", got, want)
	}
	if !IsSunday(got) {
		t.Errorf("expected %v to be a Sunday", got)
	}
}

func TestMonthBounds(t *testing.T) {
	d := time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)
	from, to := MonthBounds(d)
	if from != time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("from = %v", from)
	}
	if to != time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("to = %v", to)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("22:00")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if h != 22 || m != 0 {
		t.Errorf("ParseClock = %d:%d, want 22:00", h, m)
	}

	if _, _, err := ParseClock("25:00"); err == nil {
		t.Error("ParseClock(25:00) should fail")
	}
	if _, _, err := ParseClock("9am"); err == nil {
		t.Error("ParseClock(9am) should fail")
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	got, err := At(date, "09:15")
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	want := time.Date(2024, 3, 15, 9, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("At = %v, want %v", got, want)
	}
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)
	c := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	if !SameMonth(a, b) {
		t.Error("same month expected")
	}
	if SameMonth(a, c) {
		t.Error("different years should not match")
	}
}
