package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestAlignFromTo(t *testing.T) {
	from := time.Date(2024, 10, 17, 13, 45, 0, 0, time.UTC)
	to := time.Date(2024, 12, 2, 9, 5, 0, 0, time.UTC)

	f, tt := AlignFromTo(from, to, "monthly")
	if f.Day() != 1 || tt.Day() != 1 {
		t.Fatalf("monthly align: %v %v", f, tt)
	}

	f, tt = AlignFromTo(from, to, "daily")
	if f.Hour() != 0 || tt.Hour() != 0 || f.Day() != 17 {
		t.Fatalf("daily align: %v %v", f, tt)
	}
}
