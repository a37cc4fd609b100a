package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-29")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2026-08-29" {
		t.Errorf("String() = %q, want 2026-08-29", d.String())
	}

	if _, err := ParseDate("29/08/2026"); err == nil {
		t.Error("expected error for non ISO input")
	}
	if _, err := ParseDate("2026-08-29T10:00:00Z"); err == nil {
		t.Error("expected error for datetime input, dates carry no time component")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.February, 7)

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2026-02-07"` {
		t.Errorf("marshal = %s, want \"2026-02-07\"", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.String() != d.String() {
		t.Errorf("round trip changed date: %s -> %s", d, back)
	}
}

func TestDateOf_StripsTimeComponent(t *testing.T) {
	stamp := time.Date(2026, time.August, 29, 23, 59, 58, 0, time.FixedZone("CEST", 2*3600))
	d := DateOf(stamp)
	if d.String() != "2026-08-29" {
		t.Errorf("DateOf = %s, want 2026-08-29", d)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2026, time.January, 1)
	b := NewDate(2026, time.December, 31)
	if !a.Before(b) || b.Before(a) {
		t.Error("ordering broken")
	}
	if !b.After(a) {
		t.Error("After broken")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2026, time.May, 5, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2026-05-05" {
		t.Errorf("scan time = %s, want 2026-05-05", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Error("scan nil should zero the date")
	}
}
