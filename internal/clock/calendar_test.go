package clock

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestStartOfDay(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)

	tests := []struct {
		name string
		y    int
		m    time.Month
		d    int
		want time.Time
	}{
		{"plain day", 2026, 3, 10, time.Date(2026, 3, 10, 0, 0, 0, 0, msk)},
		{"day overflow", 2026, 2, 29, time.Date(2026, 3, 1, 0, 0, 0, 0, msk)},
		{"day underflow", 2026, 3, 0, time.Date(2026, 2, 28, 0, 0, 0, 0, msk)},
		{"year overflow", 2026, 12, 32, time.Date(2027, 1, 1, 0, 0, 0, 0, msk)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfDay(tt.y, tt.m, tt.d, msk); !got.Equal(tt.want) {
				t.Errorf("StartOfDay(%d, %d, %d) = %v, want %v", tt.y, tt.m, tt.d, got, tt.want)
			}
		})
	}
}

func TestStartOfDay_MidnightGap(t *testing.T) {
	havana, err := time.LoadLocation("America/Havana")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// Daylight saving starts at 00:00 on 2026-03-08: clocks go to 01:00.
	got := StartOfDay(2026, 3, 8, havana)
	want := time.Date(2026, 3, 8, 5, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
	if y, m, d := got.Date(); y != 2026 || m != 3 || d != 8 {
		t.Errorf("StartOfDay is on %d-%02d-%02d, want 2026-03-08", y, m, d)
	}
	if got.Location() != havana {
		t.Errorf("Location = %v, want %v", got.Location(), havana)
	}
	// One nanosecond earlier is still the 7th.
	if d := got.Add(-time.Nanosecond).Day(); d != 7 {
		t.Errorf("instant before start is on day %d, want 7", d)
	}

	// The day before is an ordinary day.
	prev := StartOfDay(2026, 3, 7, havana)
	if !prev.Equal(time.Date(2026, 3, 7, 5, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfDay(2026-03-07) = %v", prev)
	}
}

func TestStartOfDay_FallBackAtMidnight(t *testing.T) {
	havana, err := time.LoadLocation("America/Havana")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// Daylight saving ends at 01:00 CDT on 2026-11-01; midnight exists once.
	got := StartOfDay(2026, 11, 1, havana)
	if !got.Equal(time.Date(2026, 11, 1, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfDay = %v", got)
	}
}
