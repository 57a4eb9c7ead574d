package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "four digit year", format: "YYYY", want: "2006"},
		{name: "two digit year", format: "YY", want: "06"},
		{name: "full month name", format: "MMMM", want: "January"},
		{name: "short month name", format: "MMM", want: "Jan"},
		{name: "padded month", format: "MM", want: "01"},
		{name: "month", format: "M", want: "1"},
		{name: "padded day", format: "DD", want: "02"},
		{name: "day", format: "D", want: "2"},
		{name: "weekday", format: "dddd", want: "Monday"},
		{name: "short weekday", format: "ddd", want: "Mon"},
		{name: "clock", format: "HH:mm:ss", want: "15:04:05"},
		{name: "twelve hour clock", format: "hh:mm A", want: "03:04 PM"},
		{name: "iso date", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "long date", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "literal separators", format: "(YYYY/MM/DD)", want: "(2006/01/02)"},
		{name: "unescaped token in text", format: "Date: YYYY", want: "2ate: 2006"},
		{name: "bracket escape", format: "[Date]: YYYY", want: "Date: 2006"},
		{name: "escaped tokens", format: "[YYYY]-MM", want: "YYYY-01"},
		{name: "empty brackets", format: "YYYY[]MM", want: "200601"},
		{name: "first closing bracket wins", format: "[a[b]c", want: "a[bc"},
		{name: "only literals", format: "---", want: "---"},
		{name: "unclosed bracket", format: "[Date YYYY", wantErr: ErrInvalidDateFormat},
		{name: "empty format", format: "", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("-", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
		{name: "at max length", format: strings.Repeat("-", MaxDateFormatLength), want: strings.Repeat("-", MaxDateFormatLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "custom format", format: "DD/MM/YYYY", want: "15/03/2024"},
		{name: "iso preset", format: "iso", want: "2024-03-15"},
		{name: "european preset", format: "european", want: "15/03/2024"},
		{name: "us preset", format: "us", want: "03/15/2024"},
		{name: "long preset", format: "long", want: "March 15, 2024"},
		{name: "datetime preset", format: "datetime", want: "2024-03-15 14:30"},
		{name: "preset is case insensitive", format: "ISO", want: "2024-03-15"},
		{name: "weekday", format: "dddd", want: "Friday"},
		{name: "empty format", format: "", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Format(fixed, tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Format(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}
