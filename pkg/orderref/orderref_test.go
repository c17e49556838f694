package orderref_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/ticketflow/pkg/orderref"
)

func TestGenerator_Format(t *testing.T) {
	t.Parallel()

	// 23:30 в UTC-5 — уже следующий день по UTC
	loc := time.FixedZone("EST", -5*60*60)
	g := orderref.NewGeneratorWithClock(func() time.Time {
		return time.Date(2026, time.March, 14, 23, 30, 0, 0, loc)
	})

	ref := g.New(42)
	if !strings.HasPrefix(ref, "TKT-20260315-42-") {
		t.Fatalf("unexpected prefix: %s", ref)
	}
	if !orderref.Valid(ref) {
		t.Fatalf("generated reference %q does not match pattern", ref)
	}
}

func TestGenerator_Unique(t *testing.T) {
	t.Parallel()

	g := orderref.NewGenerator()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		ref := g.New(7)
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference %s", ref)
		}
		seen[ref] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	for ref, want := range map[string]bool{
		"TKT-20260315-42-1a2b3c4d": true,
		"TKT-20260315-42-1A2B3C4D": false,
		"TKT-2026031-42-1a2b3c4d":  false,
		"TKT-20260315--1a2b3c4d":   false,
		"ORD-20260315-42-1a2b3c4d": false,
		"":                         false,
	} {
		if got := orderref.Valid(ref); got != want {
			t.Fatalf("Valid(%q)=%v, want %v", ref, got, want)
		}
	}
}
