package remind

import (
	"testing"
	"time"
)

func TestParseWhenCompactUnits(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	cases := map[string]time.Duration{
		"10s": 10 * time.Second,
		"5m":  5 * time.Minute,
		"2h":  2 * time.Hour,
		"1d":  24 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseWhen(in, now, time.UTC, 9)
		if err != nil {
			t.Fatalf("ParseWhen(%q): %v", in, err)
		}
		if got.Sub(now) != want {
			t.Errorf("ParseWhen(%q) = %v, want offset %v", in, got, want)
		}
	}
}

func TestParseWhenNaturalUnits(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	got, err := ParseWhen("5 minutes", now, time.UTC, 9)
	if err != nil {
		t.Fatalf("ParseWhen: %v", err)
	}
	if got.Sub(now) != 5*time.Minute {
		t.Errorf("got offset %v, want 5m", got.Sub(now))
	}
}

func TestParseWhenNamedDayPartOfDay(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC) // a Friday
	got, err := ParseWhen("tomorrow morning", now, time.UTC, 9)
	if err != nil {
		t.Fatalf("ParseWhen: %v", err)
	}
	want := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseWhenNamedDayNoTimeDefaultsConfiguredHour(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	got, err := ParseWhen("tomorrow", now, time.UTC, 9)
	if err != nil {
		t.Fatalf("ParseWhen: %v", err)
	}
	want := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseWhenClockTime(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	got, err := ParseWhen("at 14:30", now, time.UTC, 9)
	if err != nil {
		t.Fatalf("ParseWhen: %v", err)
	}
	want := time.Date(2026, 7, 31, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseWhenClockTimeRollsToNextDayIfPast(t *testing.T) {
	now := time.Date(2026, 7, 31, 20, 0, 0, 0, time.UTC)
	got, err := ParseWhen("9am", now, time.UTC, 9)
	if err != nil {
		t.Fatalf("ParseWhen: %v", err)
	}
	want := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseWhenPMClock(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	got, err := ParseWhen("9pm", now, time.UTC, 9)
	if err != nil {
		t.Fatalf("ParseWhen: %v", err)
	}
	want := time.Date(2026, 7, 31, 21, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseWhenNextWeekday(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC) // Friday
	got, err := ParseWhen("next monday afternoon", now, time.UTC, 9)
	if err != nil {
		t.Fatalf("ParseWhen: %v", err)
	}
	want := time.Date(2026, 8, 3, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseWhenRejectsGarbage(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	if _, err := ParseWhen("whenever works I guess", now, time.UTC, 9); err == nil {
		t.Fatal("expected an error for an unrecognized expression")
	}
}
