package parser

import (
	"fmt"
	"testing"
	"time"
)

func TestExtractDateTime_OpenHouseBlocks(t *testing.T) {
	now := time.Date(2026, time.June, 1, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name     string
		text     string
		wantDate string
		wantTime string
	}{
		{
			name:     "labeled block across lines",
			text:     "Open house\nSat, Jun 21\n12:00 PM - 2:00 PM",
			wantDate: "2026-06-21",
			wantTime: "12:00 PM - 2:00 PM",
		},
		{
			name:     "labeled block with colon",
			text:     "Open House: Saturday, June 21, 2026 1:00 PM - 3:00 PM",
			wantDate: "2026-06-21",
			wantTime: "1:00 PM - 3:00 PM",
		},
		{
			name:     "bare adjacent pair",
			text:     "Sun, Aug 9 11:00 AM - 1:00 PM",
			wantDate: "2026-08-09",
			wantTime: "11:00 AM - 1:00 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, timeRange := extractDateTime(Segment(tt.text), now)
			if date != tt.wantDate {
				t.Errorf("date = %q; want %q", date, tt.wantDate)
			}
			if timeRange != tt.wantTime {
				t.Errorf("time = %q; want %q", timeRange, tt.wantTime)
			}
		})
	}
}

func TestExtractDateTime_WeekdayFallbackWindow(t *testing.T) {
	now := time.Date(2026, time.June, 1, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name     string
		text     string
		wantDate string
	}{
		{"upcoming weekday accepted", "Join us\nSat, Jun 21", "2026-06-21"},
		// January has already passed relative to "now"; a plain weekday
		// phrase is not trusted for a past date.
		{"past weekday rejected", "Open house was\nSun, Jan 5", ""},
		{"construction year ignored", "beautiful home built in 1991", ""},
		{"old dated line rejected", "sold Mar 3, 1991", ""},
		{"explicit year accepted by fallback", "available June 21, 2027", "2027-06-21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, _ := extractDateTime(Segment(tt.text), now)
			if date != tt.wantDate {
				t.Errorf("date = %q; want %q", date, tt.wantDate)
			}
		})
	}
}

func TestExtractDateTime_NumericFallback(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		text     string
		wantDate string
	}{
		{"slash format", "showing on 6/21/2026", "2026-06-21"},
		{"two digit year", "showing on 6/21/26", "2026-06-21"},
		{"iso format", "listed 2026-06-21 for showings", "2026-06-21"},
		{"year outside band rejected", "archived 6/21/2031", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, _ := extractDateTime(Segment(tt.text), now)
			if date != tt.wantDate {
				t.Errorf("date = %q; want %q", date, tt.wantDate)
			}
		})
	}
}

func TestExtractDateTime_FallbackTimeRange(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local)

	_, timeRange := extractDateTime(Segment("Open house: 1:00 PM to 3:00 PM"), now)
	if timeRange != "1:00 PM to 3:00 PM" {
		t.Errorf("time = %q; want %q", timeRange, "1:00 PM to 3:00 PM")
	}
}

// Day 1 of month 1 must never shift into December of the prior year, no
// matter the host timezone.
func TestLocalISODate_NoTimezoneDrift(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2026, time.January, 1},
		{2026, time.December, 31},
		{2024, time.February, 29},
		{2026, time.June, 21},
	}

	for _, tt := range tests {
		got := LocalISODate(time.Date(tt.year, tt.month, tt.day, 0, 0, 0, 0, time.Local))
		want := fmt.Sprintf("%04d-%02d-%02d", tt.year, int(tt.month), tt.day)
		if got != want {
			t.Errorf("LocalISODate(%d-%d-%d) = %q; want %q", tt.year, tt.month, tt.day, got, want)
		}
	}
}

func TestNormalizeOpenHouseDate(t *testing.T) {
	year := time.Now().Year()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Saturday, June 21", fmt.Sprintf("%04d-06-21", year), true},
		{"Sat., Jun 21", fmt.Sprintf("%04d-06-21", year), true},
		{"sometime next week", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeOpenHouseDate(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("NormalizeOpenHouseDate(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
