package dailykey

import (
	"regexp"
	"testing"
	"time"
)

var hex32 = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestKeyKnownValue(t *testing.T) {
	day := time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC)
	const want = "f867f4b1ba30bf4bbed342c32b89110c" // md5("2024-01-01")

	got := Key(day)
	if !hex32.MatchString(got) {
		t.Fatalf("Key = %q, not 32 lowercase hex chars", got)
	}
	if got != want {
		t.Fatalf("Key = %q, want %q", got, want)
	}
}

func TestKeyStableWithinDay(t *testing.T) {
	morning := time.Date(2025, 3, 9, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC)
	if Key(morning) != Key(night) {
		t.Fatal("key changed within one UTC date")
	}
}

func TestKeyChangesAtMidnight(t *testing.T) {
	before := time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC)
	after := before.Add(2 * time.Second)
	if Key(before) == Key(after) {
		t.Fatal("key did not change across UTC midnight")
	}
}

func TestKeyUsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 2025-03-10 05:00 local is still 2025-03-09 in UTC.
	local := time.Date(2025, 3, 10, 5, 0, 0, 0, loc)
	utc := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	if Key(local) != Key(utc) {
		t.Fatal("key not derived from the UTC date")
	}
}

func TestSourceFollowsClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	src := NewSource(func() time.Time { return now })

	first := src.Key()
	if first != Key(now) || src.Key() != first {
		t.Fatal("source key does not match Key for the same date")
	}
	if src.Window() != "2025-06-01" {
		t.Fatalf("Window = %q", src.Window())
	}
	if got := src.UntilRollover(); got != 12*time.Hour {
		t.Fatalf("UntilRollover = %v, want 12h", got)
	}

	now = now.Add(24 * time.Hour)
	if src.Key() == first {
		t.Fatal("source key did not roll over with the clock")
	}
}
